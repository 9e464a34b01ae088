package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/cache"
	"showtime-booking/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type ShowService interface {
	AddShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error)
	GetShow(ctx context.Context, showID int64) (*response.ShowResponse, error)
	ListShows(ctx context.Context) ([]response.ShowResponse, error)
	ListShowsByMovie(ctx context.Context, movieID int64) ([]response.ShowResponse, error)
	AssociateSeats(ctx context.Context, req *request.ShowSeatRequest) (*response.AssociateSeatsResponse, error)
	ListShowSeats(ctx context.Context, showID int64) ([]response.ShowSeatResponse, error)
}

type showService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewShowService(
	repo *repository.Repository,
	c cache.Cache,
	now func() time.Time,
	log *zap.Logger,
) ShowService {
	return &showService{
		repo:  repo,
		cache: c,
		now:   now,
		log:   log.With(zap.String("service", "show")),
	}
}

var showTimeLayouts = []string{"15:04", "15:04:05"}

// NormalizeShowTime accepts 24-hour HH:mm or HH:mm:ss and returns HH:mm:ss.
func NormalizeShowTime(value string) (string, error) {
	for _, layout := range showTimeLayouts {
		// two-digit fields only, time.Parse alone would take "9:30"
		if len(value) != len(layout) {
			continue
		}
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04:05"), nil
		}
	}

	return "", fmt.Errorf("%w: invalid time format, expected HH:mm or HH:mm:ss (24-hour), got: %s", ErrInvalidArgument, value)
}

func (s *showService) AddShow(ctx context.Context, req *request.ShowRequest) (*response.ShowResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add show validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	startTime, err := NormalizeShowTime(req.ShowStartTime)
	if err != nil {
		s.log.Warn("Invalid show start time", zap.String("show_start_time", req.ShowStartTime))
		return nil, err
	}

	showDate, err := time.Parse("2006-01-02", req.ShowDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid show date %q", ErrInvalidArgument, req.ShowDate)
	}

	movie, err := s.repo.Movie.FindByID(ctx, req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d %w", req.MovieID, ErrNotFound)
	}

	theater, err := s.repo.Theater.FindByID(ctx, req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("check theater: %w", err)
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %d %w", req.TheaterID, ErrNotFound)
	}

	now := s.now()
	show := &entity.Show{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movie.ID,
		TheaterID: theater.ID,
		ShowDate:  showDate,
		StartTime: startTime,
	}

	if err := s.repo.Show.Create(ctx, show); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// movie or theater removed after the checks above
			return nil, fmt.Errorf("movie %d or theater %d %w", req.MovieID, req.TheaterID, ErrNotFound)
		}
		s.log.Error("Failed to create show", zap.Error(err))
		return nil, fmt.Errorf("create show: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.KeyShows, cache.KeyShowsByMovie(show.MovieID))

	s.log.Info("Show created",
		zap.Int64("show_id", show.ID),
		zap.Int64("movie_id", show.MovieID),
		zap.Int64("theater_id", show.TheaterID),
		zap.String("start_time", show.StartTime),
	)

	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) GetShow(ctx context.Context, showID int64) (*response.ShowResponse, error) {
	show, err := s.findShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	resp := response.ShowToResponse(show)
	return &resp, nil
}

func (s *showService) ListShows(ctx context.Context) ([]response.ShowResponse, error) {
	return s.cachedShows(ctx, cache.KeyShows, func() ([]*entity.Show, error) {
		return s.repo.Show.FindAll(ctx)
	})
}

// ListShowsByMovie returns an empty list for an unknown movie.
func (s *showService) ListShowsByMovie(ctx context.Context, movieID int64) ([]response.ShowResponse, error) {
	return s.cachedShows(ctx, cache.KeyShowsByMovie(movieID), func() ([]*entity.Show, error) {
		return s.repo.Show.FindByMovieID(ctx, movieID)
	})
}

func (s *showService) cachedShows(ctx context.Context, key string, load func() ([]*entity.Show, error)) ([]response.ShowResponse, error) {
	var cached []response.ShowResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	shows, err := load()
	if err != nil {
		s.log.Error("Failed to list shows", zap.Error(err), zap.String("key", key))
		return nil, fmt.Errorf("list shows: %w", err)
	}

	result := response.ShowsToResponse(shows)
	_ = s.cache.Set(ctx, key, result)
	return result, nil
}

func (s *showService) AssociateSeats(ctx context.Context, req *request.ShowSeatRequest) (*response.AssociateSeatsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Associate seats validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	show, err := s.findShow(ctx, req.ShowID)
	if err != nil {
		return nil, err
	}

	theaterSeats, err := s.repo.Seat.FindByTheaterID(ctx, show.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("find theater seats: %w", err)
	}
	seatByID := lo.KeyBy(theaterSeats, func(seat *entity.Seat) int64 { return seat.ID })

	var targets []*entity.Seat
	if len(req.SeatIDs) == 0 {
		if len(theaterSeats) == 0 {
			return nil, fmt.Errorf("%w: theater %d has no seats", ErrInvalidArgument, show.TheaterID)
		}
		targets = theaterSeats
	} else {
		ids := lo.Uniq(req.SeatIDs)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		missing := lo.Filter(ids, func(id int64, _ int) bool {
			_, ok := seatByID[id]
			return !ok
		})
		if len(missing) > 0 {
			return nil, fmt.Errorf("seats %v of theater %d %w", missing, show.TheaterID, ErrNotFound)
		}
		targets = lo.Map(ids, func(id int64, _ int) *entity.Seat { return seatByID[id] })
	}

	existing, err := s.repo.ShowSeat.FindByShowID(ctx, show.ID)
	if err != nil {
		return nil, fmt.Errorf("find show seats: %w", err)
	}
	associated := lo.Associate(existing, func(ss *entity.ShowSeat) (int64, bool) { return ss.SeatID, true })

	var already []string
	for _, seat := range targets {
		if associated[seat.ID] {
			already = append(already, seat.SeatNumber)
		}
	}
	if len(already) > 0 {
		return nil, fmt.Errorf("seats %s already associated with show %d: %w", strings.Join(already, ", "), show.ID, ErrConflict)
	}

	now := s.now()
	showSeats := make([]*entity.ShowSeat, len(targets))
	for i, seat := range targets {
		price := req.PriceForClassicSeats
		if seat.SeatType == entity.SeatTypePremium {
			price = req.PriceForPremiumSeats
		}
		showSeats[i] = &entity.ShowSeat{
			Base: entity.Base{
				CreatedAt: now,
				UpdatedAt: now,
			},
			ShowID:      show.ID,
			SeatID:      seat.ID,
			IsAvailable: true,
			Price:       price,
		}
	}

	if err := s.repo.ShowSeat.CreateBatch(ctx, showSeats); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("seats already associated with show %d: %w", show.ID, ErrConflict)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("show %d or its seats %w", show.ID, ErrNotFound)
		}
		s.log.Error("Failed to associate seats", zap.Error(err), zap.Int64("show_id", show.ID))
		return nil, fmt.Errorf("associate seats: %w", err)
	}

	s.log.Info("Seats associated with show",
		zap.Int64("show_id", show.ID),
		zap.Int("count", len(showSeats)),
	)

	return &response.AssociateSeatsResponse{ShowID: show.ID, Count: len(showSeats)}, nil
}

// ListShowSeats always reads the store; availability is never cached.
func (s *showService) ListShowSeats(ctx context.Context, showID int64) ([]response.ShowSeatResponse, error) {
	if _, err := s.findShow(ctx, showID); err != nil {
		return nil, err
	}

	showSeats, err := s.repo.ShowSeat.FindByShowID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("list show seats: %w", err)
	}

	return response.ShowSeatsToResponse(showSeats), nil
}

func (s *showService) findShow(ctx context.Context, showID int64) (*entity.Show, error) {
	show, err := s.repo.Show.FindByID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("find show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %d %w", showID, ErrNotFound)
	}
	return show, nil
}
