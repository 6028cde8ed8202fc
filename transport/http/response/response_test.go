package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"atoll/shared/failure"
	"atoll/transport/http/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestWithJSON(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithJSON(recorder, http.StatusOK, map[string]int{"nights": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"data": map[string]any{"nights": float64(3)}}, decode(t, recorder))
}

func TestWithCreated(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.WithCreated(recorder, "Booking created successfully", "b-1")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "b-1", decode(t, recorder)["id"])
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequestFromString("check-out date must be after check-in date"), code: http.StatusBadRequest, message: "check-out date must be after check-in date"},
		{name: "not found", err: failure.NotFound("property not found"), code: http.StatusNotFound, message: "property not found"},
		{name: "conflict", err: failure.Conflict("slug already exists"), code: http.StatusConflict, message: "slug already exists"},
		{name: "unexpected error", err: errors.New("failed to get bookings: connection refused"), code: http.StatusInternalServerError, message: "failed to get bookings: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			response.WithError(recorder, tt.err)

			assert.Equal(t, tt.code, recorder.Code)
			assert.Equal(t, tt.message, decode(t, recorder)["error"])
		})
	}
}

func TestDefaultResponses(t *testing.T) {
	recorder := httptest.NewRecorder()
	response.WithRequestLimitExceeded(recorder)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)

	recorder = httptest.NewRecorder()
	response.WithPreparingShutdown(recorder)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}
