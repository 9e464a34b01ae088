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

type TheaterRepository interface {
	// Create stores the theater and its seats in one transaction
	Create(ctx context.Context, theater *entity.Theater, seats []*entity.Seat) error
	FindByID(ctx context.Context, id int64) (*entity.Theater, error)
	FindAll(ctx context.Context) ([]*entity.Theater, error)
}

type theaterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheaterRepository(db database.PgxIface, log *zap.Logger) TheaterRepository {
	return &theaterRepository{
		db:  db,
		log: log.With(zap.String("repository", "theater")),
	}
}

func (r *theaterRepository) Create(ctx context.Context, theater *entity.Theater, seats []*entity.Seat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO theaters (name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, theater.Name, theater.Address, theater.CreatedAt, theater.UpdatedAt).Scan(&theater.ID)
	if err != nil {
		r.log.Error("Failed to create theater", zap.Error(err), zap.String("name", theater.Name))
		return fmt.Errorf("create theater: %w", mapPgError(err))
	}

	for _, seat := range seats {
		seat.TheaterID = theater.ID
	}

	if err := insertSeats(ctx, tx, seats); err != nil {
		r.log.Error("Failed to create theater seats",
			zap.Error(err),
			zap.Int64("theater_id", theater.ID),
			zap.Int("count", len(seats)),
		)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit theater: %w", err)
	}

	return nil
}

func (r *theaterRepository) FindByID(ctx context.Context, id int64) (*entity.Theater, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM theaters WHERE id = $1`

	var theater entity.Theater
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Address,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by ID", zap.Error(err), zap.Int64("theater_id", id))
		return nil, fmt.Errorf("find theater %d: %w", id, err)
	}

	return &theater, nil
}

func (r *theaterRepository) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address, created_at, updated_at FROM theaters ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to find theaters", zap.Error(err))
		return nil, fmt.Errorf("find theaters: %w", err)
	}
	defer rows.Close()

	theaters := make([]*entity.Theater, 0)
	for rows.Next() {
		var theater entity.Theater
		if err := rows.Scan(
			&theater.ID,
			&theater.Name,
			&theater.Address,
			&theater.CreatedAt,
			&theater.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan theater: %w", err)
		}
		theaters = append(theaters, &theater)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate theaters: %w", err)
	}

	return theaters, nil
}
