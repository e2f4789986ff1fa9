package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scorepad/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeNameRequired          = "NAME_REQUIRED"
	CodeInvalidScoringType    = "INVALID_SCORING_TYPE"
	CodeInvalidScore          = "INVALID_SCORE"
	CodeRoundOutOfRange       = "ROUND_OUT_OF_RANGE"
	CodePlayerIndexOutOfRange = "PLAYER_INDEX_OUT_OF_RANGE"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeTemplateNotFound      = "TEMPLATE_NOT_FOUND"
	CodeNoActiveGame          = "NO_ACTIVE_GAME"
	CodeInsufficientPlayers   = "INSUFFICIENT_PLAYERS"
	CodeNotFound              = "NOT_FOUND"
	CodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTemplateNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTemplateNotFound, "Template not found"}}
	case errors.Is(err, model.ErrNoActiveGame):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveGame, "No game in progress"}}
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{CodeNameRequired, "Name is required"}}
	case errors.Is(err, model.ErrInvalidScoringType):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScoringType, "Scoring type must be normal or reverse"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Score must be a number"}}
	case errors.Is(err, model.ErrRoundOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeRoundOutOfRange, "Round index out of range"}}
	case errors.Is(err, model.ErrPlayerIndexOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodePlayerIndexOutOfRange, "Player index out of range"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, "At least one player is required"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates an error for a known route with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
