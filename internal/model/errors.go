package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrNameRequired   = errors.New("name is required")

	// Template errors
	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidScoringType = errors.New("invalid scoring type")

	// Session errors
	ErrNoActiveGame          = errors.New("no active game")
	ErrInsufficientPlayers   = errors.New("insufficient players to start game")
	ErrInvalidScore          = errors.New("invalid score")
	ErrRoundOutOfRange       = errors.New("round index out of range")
	ErrPlayerIndexOutOfRange = errors.New("player index out of range")
)
