package memory

import (
	"context"
	"fmt"
	"sort"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"

	"go.uber.org/zap"
)

type movieRepo struct{ s *Store }

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, m := range r.s.movies {
		if m.MovieName == movie.MovieName {
			return fmt.Errorf("failed to create movie: %w", repository.ErrDuplicate)
		}
	}

	movie.ID = r.s.nextID("movies")
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *movieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		cp := *m
		movies = append(movies, &cp)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (r *movieRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return fmt.Errorf("movie %d: %w", id, repository.ErrNotFound)
	}
	delete(r.s.movies, id)

	for showID, show := range r.s.shows {
		if show.MovieID == id {
			r.s.deleteShowLocked(showID)
		}
	}

	r.s.log.Info("Movie deleted with its shows", zap.Int64("movie_id", id))
	return nil
}

// deleteShowLocked cascades to show seats and tickets; mu must be held for writing.
func (s *Store) deleteShowLocked(showID int64) {
	delete(s.shows, showID)
	for key := range s.showSeats {
		if key.showID == showID {
			delete(s.showSeats, key)
		}
	}

	s.ticketMu.Lock()
	for id, t := range s.tickets {
		if t.ShowID == showID {
			delete(s.tickets, id)
		}
	}
	s.ticketMu.Unlock()
}

type showRepo struct{ s *Store }

func (r *showRepo) Create(_ context.Context, show *entity.Show) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[show.MovieID]; !ok {
		return fmt.Errorf("create show: movie %d: %w", show.MovieID, repository.ErrNotFound)
	}
	if _, ok := r.s.theaters[show.TheaterID]; !ok {
		return fmt.Errorf("create show: theater %d: %w", show.TheaterID, repository.ErrNotFound)
	}

	show.ID = r.s.nextID("shows")
	cp := *show
	r.s.shows[show.ID] = &cp
	return nil
}

func (r *showRepo) FindByID(_ context.Context, id int64) (*entity.Show, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	show, ok := r.s.shows[id]
	if !ok {
		return nil, nil
	}
	cp := *show
	return &cp, nil
}

func (r *showRepo) FindAll(_ context.Context) ([]*entity.Show, error) {
	return r.filter(func(*entity.Show) bool { return true }), nil
}

func (r *showRepo) FindByMovieID(_ context.Context, movieID int64) ([]*entity.Show, error) {
	return r.filter(func(show *entity.Show) bool { return show.MovieID == movieID }), nil
}

func (r *showRepo) filter(keep func(*entity.Show) bool) []*entity.Show {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	shows := make([]*entity.Show, 0)
	for _, show := range r.s.shows {
		if keep(show) {
			cp := *show
			shows = append(shows, &cp)
		}
	}

	// same order as the SQL: date, start time, id
	sort.Slice(shows, func(i, j int) bool {
		a, b := shows[i], shows[j]
		if !a.ShowDate.Equal(b.ShowDate) {
			return a.ShowDate.Before(b.ShowDate)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})
	return shows
}
