package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"showtime-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("show 9 %w", usecase.ErrNotFound), status: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("email taken: %w", usecase.ErrConflict), status: http.StatusConflict},
		{name: "invalid", err: fmt.Errorf("%w: bad time", usecase.ErrInvalidArgument), status: http.StatusBadRequest},
		{name: "unauthenticated", err: fmt.Errorf("%w: expired", usecase.ErrUnauthenticated), status: http.StatusUnauthorized},
		{name: "forbidden", err: fmt.Errorf("x: %w", usecase.ErrForbidden), status: http.StatusForbidden},
		{name: "internal", err: errors.New("connection reset"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandleServiceError_SeatUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	err := fmt.Errorf("book: %w", &usecase.SeatUnavailableError{ShowID: 3, SeatNumbers: []string{"A2", "A3"}})

	handleServiceError(rec, zap.NewNop(), err, "book ticket")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Status bool `json:"status"`
		Errors struct {
			Seats []string `json:"seats"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, []string{"A2", "A3"}, body.Errors.Seats)
}

func TestHandleServiceError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), errors.New("pq: password authentication failed"), "list")
	assert.NotContains(t, rec.Body.String(), "password")
}
