package repository

import (
	"context"
	"fmt"
	"strings"

	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Seat, error)
	FindByNumbers(ctx context.Context, theaterID int64, numbers []string) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertSeats(ctx, tx, seats); err != nil {
		r.log.Warn("Failed to create batch seats", zap.Error(err), zap.Int("count", len(seats)))
		return err
	}

	return tx.Commit(ctx)
}

// insertSeats builds one multi-row INSERT and fills generated ids back in.
func insertSeats(ctx context.Context, tx pgx.Tx, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO seats (theater_id, seat_number, seat_type, created_at) VALUES `)
	args := make([]any, 0, len(seats)*4)

	for i, seat := range seats {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, seat.TheaterID, seat.SeatNumber, seat.SeatType, seat.CreatedAt)
	}
	query.WriteString(" RETURNING id, theater_id, seat_number")

	rows, err := tx.Query(ctx, query.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to create batch seats: %w", mapPgError(err))
	}
	defer rows.Close()

	type seatKey struct {
		theaterID int64
		number    string
	}
	byKey := make(map[seatKey]*entity.Seat, len(seats))
	for _, seat := range seats {
		byKey[seatKey{seat.TheaterID, seat.SeatNumber}] = seat
	}

	for rows.Next() {
		var (
			id  int64
			key seatKey
		)
		if err := rows.Scan(&id, &key.theaterID, &key.number); err != nil {
			return fmt.Errorf("scan seat id: %w", err)
		}
		if seat, ok := byKey[key]; ok {
			seat.ID = id
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to create batch seats: %w", mapPgError(err))
	}

	return nil
}

func (r *seatRepository) FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Seat, error) {
	query := `
		SELECT id, theater_id, seat_number, seat_type, created_at
		FROM seats
		WHERE theater_id = $1
		ORDER BY id
	`
	return r.querySeats(ctx, query, theaterID)
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Seat, error) {
	query := `
		SELECT id, theater_id, seat_number, seat_type, created_at
		FROM seats
		WHERE id = ANY($1)
		ORDER BY id
	`
	return r.querySeats(ctx, query, ids)
}

func (r *seatRepository) FindByNumbers(ctx context.Context, theaterID int64, numbers []string) ([]*entity.Seat, error) {
	query := `
		SELECT id, theater_id, seat_number, seat_type, created_at
		FROM seats
		WHERE theater_id = $1 AND seat_number = ANY($2)
		ORDER BY id
	`
	return r.querySeats(ctx, query, theaterID, numbers)
}

func (r *seatRepository) querySeats(ctx context.Context, query string, args ...any) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seats", zap.Error(err))
		return nil, fmt.Errorf("failed to query seats: %w", err)
	}
	defer rows.Close()

	seats := make([]*entity.Seat, 0)
	for rows.Next() {
		var seat entity.Seat
		if err := rows.Scan(
			&seat.ID,
			&seat.TheaterID,
			&seat.SeatNumber,
			&seat.SeatType,
			&seat.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, &seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seats: %w", err)
	}

	return seats, nil
}
