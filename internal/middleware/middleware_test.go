package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingRecordsStatusAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/players/x", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"size":7`)
}

func TestRecoveryInvokesHandler(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	var recovered any

	h := Recovery(logger, func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusTeapot)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "boom", recovered)
}

func TestResponseWriterExposesUnderlyingWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &ResponseWriter{ResponseWriter: rr, status: http.StatusOK}

	assert.Same(t, rr, rw.Unwrap())

	// httptest.ResponseRecorder cannot be hijacked
	_, _, err := rw.Hijack()
	assert.Error(t, err)
	assert.Equal(t, http.StatusOK, rw.Status())
}
