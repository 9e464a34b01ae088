package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
	// ErrRetryable marks a transaction aborted by serialization failure, deadlock or lock timeout
	ErrRetryable = errors.New("transaction conflict")
	ErrNoSeats   = errors.New("no seats to claim")
)

const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// SeatClaimError reports why seats of a show could not be claimed.
// Missing holds seat ids without a show_seats row, Booked the seat numbers already taken.
type SeatClaimError struct {
	ShowID  int64
	Missing []int64
	Booked  []string
}

func (e *SeatClaimError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("seats %v not associated", e.Missing))
	}
	if len(e.Booked) > 0 {
		parts = append(parts, fmt.Sprintf("seats %s already booked", strings.Join(e.Booked, ", ")))
	}
	return fmt.Sprintf("claim show %d: %s", e.ShowID, strings.Join(parts, "; "))
}

// mapPgError translates driver errors into repository sentinels.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrNotFound, pgErr.ConstraintName)
	case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w: %s", ErrRetryable, pgErr.Message)
	default:
		return err
	}
}
