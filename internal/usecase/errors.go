package usecase

import (
	"errors"
	"fmt"
	"strings"

	"showtime-booking/pkg/utils"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrSeatUnavailable = errors.New("seat unavailable")
)

// SeatUnavailableError names every seat that was already booked.
// It matches both ErrSeatUnavailable and ErrConflict.
type SeatUnavailableError struct {
	ShowID      int64
	SeatNumbers []string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seats already booked for show %d: %s", e.ShowID, strings.Join(e.SeatNumbers, ", "))
}

func (e *SeatUnavailableError) Is(target error) bool {
	return target == ErrSeatUnavailable || target == ErrConflict
}

func validationFailed(errs map[string]string) error {
	return fmt.Errorf("%w: validation failed: %s", ErrInvalidArgument, utils.FormatValidationErrors(errs))
}
