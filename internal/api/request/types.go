package request

// PlayerRequest is the request body for creating or renaming a player
type PlayerRequest struct {
	Name string `json:"name"`
}

// TemplateRequest is the request body for creating or updating a template
type TemplateRequest struct {
	Name        string `json:"name"`
	ScoringType string `json:"scoringType"`
}

// StartSessionRequest is the request body for starting a game
type StartSessionRequest struct {
	TemplateID string   `json:"templateId"`
	PlayerIDs  []string `json:"playerIds"`
}

// UpdateScoreRequest is the request body for entering a score.
// A null or blank value clears the slot.
type UpdateScoreRequest struct {
	Value *string `json:"value"`
}
