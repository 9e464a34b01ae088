package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/cache"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	GetMovie(ctx context.Context, movieID int64) (*response.MovieResponse, error)
	ListMovies(ctx context.Context) ([]response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID int64) error
}

type movieService struct {
	repo  *repository.Repository
	cache cache.Cache
	now   func() time.Time
	log   *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	c cache.Cache,
	now func() time.Time,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		cache: c,
		now:   now,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add movie validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid release date %q", ErrInvalidArgument, req.ReleaseDate)
	}

	now := s.now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieName:   req.MovieName,
		Duration:    req.Duration,
		Rating:      req.Rating,
		ReleaseDate: releaseDate,
		Genre:       entity.Genre(req.Genre),
		Language:    entity.Language(req.Language),
		PosterURL:   req.PosterURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("movie %q already exists: %w", req.MovieName, ErrConflict)
		}
		s.log.Error("Failed to create movie", zap.Error(err), zap.String("movie_name", req.MovieName))
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("movie_name", movie.MovieName),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID int64) (*response.MovieResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d %w", movieID, ErrNotFound)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) ListMovies(ctx context.Context) ([]response.MovieResponse, error) {
	var cached []response.MovieResponse
	if err := s.cache.Get(ctx, cache.KeyMovies, &cached); err == nil {
		return cached, nil
	}

	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list movies", zap.Error(err))
		return nil, fmt.Errorf("list movies: %w", err)
	}

	result := response.MoviesToResponse(movies)
	_ = s.cache.Set(ctx, cache.KeyMovies, result)

	s.log.Debug("Movies listed", zap.Int("count", len(result)))
	return result, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID int64) error {
	shows, err := s.repo.Show.FindByMovieID(ctx, movieID)
	if err != nil {
		return fmt.Errorf("find shows of movie: %w", err)
	}

	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie %d %w", movieID, ErrNotFound)
		}
		s.log.Error("Failed to delete movie", zap.Error(err), zap.Int64("movie_id", movieID))
		return fmt.Errorf("delete movie: %w", err)
	}

	_ = s.cache.Delete(ctx, cache.KeyShowsByMovie(movieID))
	s.invalidate(ctx)

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", movieID),
		zap.Int("show_count", len(shows)),
	)
	return nil
}

func (s *movieService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, cache.KeyMovies, cache.KeyShows)
}
