package response

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// JSON encodes data before touching the header so an encoding failure still produces a clean 500
func JSON(w http.ResponseWriter, status int, data any) {
	var body bytes.Buffer
	if data != nil {
		if err := json.NewEncoder(&body).Encode(data); err != nil {
			http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`, http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body.Bytes())
}

// NoContent writes a 204 with no body
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
