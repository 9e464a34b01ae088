package repository

import (
	"context"
	"errors"
	"fmt"

	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowRepository interface {
	Create(ctx context.Context, show *entity.Show) error
	FindByID(ctx context.Context, id int64) (*entity.Show, error)
	FindAll(ctx context.Context) ([]*entity.Show, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Show, error)
}

type showRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowRepository(db database.PgxIface, log *zap.Logger) ShowRepository {
	return &showRepository{
		db:  db,
		log: log.With(zap.String("repository", "show")),
	}
}

const showColumns = `id, movie_id, theater_id, show_date, to_char(start_time, 'HH24:MI:SS'), created_at, updated_at`

func (r *showRepository) Create(ctx context.Context, show *entity.Show) error {
	query := `
		INSERT INTO shows (movie_id, theater_id, show_date, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4::text::time, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		show.MovieID,
		show.TheaterID,
		show.ShowDate,
		show.StartTime,
		show.CreatedAt,
		show.UpdatedAt,
	).Scan(&show.ID)

	if err != nil {
		r.log.Error("Failed to create show",
			zap.Error(err),
			zap.Int64("movie_id", show.MovieID),
			zap.Int64("theater_id", show.TheaterID),
		)
		return fmt.Errorf("create show: %w", mapPgError(err))
	}

	return nil
}

func (r *showRepository) FindByID(ctx context.Context, id int64) (*entity.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE id = $1`

	show, err := scanShow(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show by ID", zap.Error(err), zap.Int64("show_id", id))
		return nil, fmt.Errorf("find show by ID %d: %w", id, err)
	}

	return show, nil
}

func (r *showRepository) FindAll(ctx context.Context) ([]*entity.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows ORDER BY show_date, start_time, id`
	return r.queryShows(ctx, query)
}

func (r *showRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Show, error) {
	query := `SELECT ` + showColumns + ` FROM shows WHERE movie_id = $1 ORDER BY show_date, start_time, id`
	return r.queryShows(ctx, query, movieID)
}

func (r *showRepository) queryShows(ctx context.Context, query string, args ...any) ([]*entity.Show, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query shows", zap.Error(err))
		return nil, fmt.Errorf("query shows: %w", err)
	}
	defer rows.Close()

	shows := make([]*entity.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			r.log.Error("Failed to scan show row", zap.Error(err))
			return nil, fmt.Errorf("scan show: %w", err)
		}
		shows = append(shows, show)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}

	return shows, nil
}

func scanShow(row pgx.Row) (*entity.Show, error) {
	var show entity.Show
	err := row.Scan(
		&show.ID,
		&show.MovieID,
		&show.TheaterID,
		&show.ShowDate,
		&show.StartTime,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &show, nil
}
