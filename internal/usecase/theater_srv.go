package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

// seatsPerRow is the width of a generated seat grid
const seatsPerRow = 5

type TheaterService interface {
	AddTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error)
	AddTheaterSeats(ctx context.Context, req *request.TheaterSeatRequest) ([]response.SeatResponse, error)
	GetTheater(ctx context.Context, theaterID int64) (*response.TheaterResponse, error)
	ListTheaters(ctx context.Context) ([]response.TheaterResponse, error)
}

type theaterService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewTheaterService(
	repo *repository.Repository,
	now func() time.Time,
	log *zap.Logger,
) TheaterService {
	return &theaterService{
		repo: repo,
		now:  now,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) AddTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add theater validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	now := s.now()
	seats := seatsFromRequest(req.Seats, now)

	grid := GenerateSeatGrid(req.ClassicSeatCount, req.PremiumSeatCount, now)
	seats = append(seats, grid...)

	if err := checkDuplicateSeatNumbers(seats); err != nil {
		return nil, err
	}

	theater := &entity.Theater{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		Address: req.Address,
	}

	if err := s.repo.Theater.Create(ctx, theater, seats); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: duplicate seat number", ErrInvalidArgument)
		}
		s.log.Error("Failed to create theater", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create theater: %w", err)
	}

	s.log.Info("Theater created",
		zap.Int64("theater_id", theater.ID),
		zap.String("name", theater.Name),
		zap.Int("seats", len(seats)),
	)

	resp := response.TheaterToResponse(theater, seats)
	return &resp, nil
}

func (s *theaterService) AddTheaterSeats(ctx context.Context, req *request.TheaterSeatRequest) ([]response.SeatResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add theater seats validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	theater, err := s.repo.Theater.FindByID(ctx, req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %d %w", req.TheaterID, ErrNotFound)
	}

	seats := seatsFromRequest(req.Seats, s.now())
	if err := checkDuplicateSeatNumbers(seats); err != nil {
		return nil, err
	}
	for _, seat := range seats {
		seat.TheaterID = theater.ID
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("seat number already exists in theater %d: %w", theater.ID, ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("theater %d %w", theater.ID, ErrNotFound)
		}
		s.log.Error("Failed to add theater seats", zap.Error(err), zap.Int64("theater_id", theater.ID))
		return nil, fmt.Errorf("add theater seats: %w", err)
	}

	s.log.Info("Theater seats added",
		zap.Int64("theater_id", theater.ID),
		zap.Int("count", len(seats)),
	)

	return response.SeatsToResponse(seats), nil
}

func (s *theaterService) GetTheater(ctx context.Context, theaterID int64) (*response.TheaterResponse, error) {
	theater, err := s.repo.Theater.FindByID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %d %w", theaterID, ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByTheaterID(ctx, theaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater seats: %w", err)
	}

	resp := response.TheaterToResponse(theater, seats)
	return &resp, nil
}

func (s *theaterService) ListTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list theaters", zap.Error(err))
		return nil, fmt.Errorf("list theaters: %w", err)
	}

	result := make([]response.TheaterResponse, len(theaters))
	for i, t := range theaters {
		result[i] = response.TheaterToResponse(t, nil)
	}
	return result, nil
}

// GenerateSeatGrid lays out classic seats first, then premium, five per row.
// Rows are lettered from A; the premium block starts on a fresh row.
func GenerateSeatGrid(classic, premium int, now time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, classic+premium)
	row := 0

	fill := func(count int, seatType entity.SeatType) {
		for i := 0; i < count; i++ {
			if i > 0 && i%seatsPerRow == 0 {
				row++
			}
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{CreatedAt: now},
				SeatNumber: fmt.Sprintf("%s%d", rowLabel(row), i%seatsPerRow+1),
				SeatType:   seatType,
			})
		}
		if count > 0 {
			row++
		}
	}

	fill(classic, entity.SeatTypeClassic)
	fill(premium, entity.SeatTypePremium)
	return seats
}

// rowLabel maps 0 -> A, 25 -> Z, 26 -> AA.
func rowLabel(row int) string {
	label := ""
	for row >= 0 {
		label = string(rune('A'+row%26)) + label
		row = row/26 - 1
	}
	return label
}

func seatsFromRequest(reqs []request.SeatRequest, now time.Time) []*entity.Seat {
	seats := make([]*entity.Seat, 0, len(reqs))
	for _, r := range reqs {
		seats = append(seats, &entity.Seat{
			BaseSimple: entity.BaseSimple{CreatedAt: now},
			SeatNumber: strings.ToUpper(strings.TrimSpace(r.SeatNumber)),
			SeatType:   entity.SeatType(r.SeatType),
		})
	}
	return seats
}

func checkDuplicateSeatNumbers(seats []*entity.Seat) error {
	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if seen[seat.SeatNumber] {
			return fmt.Errorf("%w: duplicate seat number %s", ErrInvalidArgument, seat.SeatNumber)
		}
		seen[seat.SeatNumber] = true
	}
	return nil
}
