package model

// TemplateID uniquely identifies a game template
type TemplateID string

// ScoringType decides which end of the totals wins
type ScoringType string

const (
	ScoringNormal  ScoringType = "normal"  // Highest total wins
	ScoringReverse ScoringType = "reverse" // Lowest total wins
)

// Valid returns true for the known scoring types
func (s ScoringType) Valid() bool {
	return s == ScoringNormal || s == ScoringReverse
}

// Template is a reusable game definition
type Template struct {
	ID          TemplateID  `json:"id"`
	Name        string      `json:"name"`
	ScoringType ScoringType `json:"scoringType"`
}

// DefaultTemplate is seeded into an empty template registry
func DefaultTemplate() Template {
	return Template{
		ID:          "1",
		Name:        "Default Game",
		ScoringType: ScoringNormal,
	}
}
