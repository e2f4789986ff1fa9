package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/scorepad/internal/api/apierr"
)

// maxBodyBytes bounds request bodies; the largest legitimate one is a start request with a long roster
const maxBodyBytes = 64 << 10

// WriteError maps err to its API status and code
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// decode reads exactly one JSON object into dst, rejecting unknown fields
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewInvalidRequestError("request body too large")
		}
		return NewInvalidRequestError("invalid request body")
	}
	return nil
}
