package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(recorder, req, http.StatusCreated, map[string]string{"hindi": "नमस्ते"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "नमस्ते", body["hindi"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))

	RespondWithError(recorder, req, http.StatusNotFound, "Word not found")

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Word not found", resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestErrorResponseOmitsStatusCode(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(ErrorResponse{Error: "boom", Code: 500, TraceID: "abc"})
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "500")
	assert.NotContains(t, string(payload), "Code")
}

func TestRespondWithErrorAndLogNeverEchoesInternalError(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	internal := errors.New("pq: connection refused host=10.0.0.7 port=5432")
	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, "Internal server error", internal)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	body := recorder.Body.String()
	assert.Contains(t, body, "Internal server error")
	assert.NotContains(t, body, "10.0.0.7")
	assert.NotContains(t, body, "connection refused")
}

func TestRespondWithErrorAndLogNilError(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, "fixed-trace"))

	RespondWithErrorAndLog(recorder, req, http.StatusBadRequest, "Invalid request", nil)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "Invalid request", resp.Error)
	assert.Equal(t, "fixed-trace", resp.TraceID)
}
