package model

// SessionEventType names a change to the active game
type SessionEventType string

const (
	EventSessionSnapshot  SessionEventType = "session.snapshot"
	EventSessionStarted   SessionEventType = "session.started"
	EventScoreUpdated     SessionEventType = "session.score_updated"
	EventSessionFinished  SessionEventType = "session.finished"
	EventSessionCancelled SessionEventType = "session.cancelled"
)

// SessionEvent is pushed to live subscribers after each session mutation.
// Game is nil for cancellation and for a snapshot taken with no game running.
type SessionEvent struct {
	Type   SessionEventType `json:"type"`
	Game   *Game            `json:"game,omitempty"`
	Totals []float64        `json:"totals"`
}
