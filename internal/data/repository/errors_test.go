package repository

import (
	"errors"
	"fmt"
	"testing"

	"showtime-booking/internal/data/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{code: "23505", want: ErrDuplicate},
		{code: "23503", want: ErrNotFound},
		{code: "40001", want: ErrRetryable},
		{code: "40P01", want: ErrRetryable},
		{code: "55P03", want: ErrRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := mapPgError(fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code}))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, mapPgError(other))

	syntax := &pgconn.PgError{Code: "42601"}
	assert.Equal(t, error(syntax), mapPgError(syntax))
}

func TestTicketBook_NoSeats(t *testing.T) {
	// rejected before any statement runs, so no connection is needed
	repo := &ticketRepository{}
	err := repo.Book(t.Context(), &entity.Ticket{ShowID: 1, SeatIDs: []int64{}})
	assert.ErrorIs(t, err, ErrNoSeats)
}
