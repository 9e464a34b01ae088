package repository

import (
	"context"
	"fmt"
	"strings"

	"showtime-booking/internal/data/entity"
	"showtime-booking/pkg/database"

	"go.uber.org/zap"
)

type ShowSeatRepository interface {
	// CreateBatch associates seats with a show atomically; an existing pair yields ErrDuplicate
	CreateBatch(ctx context.Context, showSeats []*entity.ShowSeat) error
	FindByShowID(ctx context.Context, showID int64) ([]*entity.ShowSeat, error)
}

type showSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowSeatRepository(db database.PgxIface, log *zap.Logger) ShowSeatRepository {
	return &showSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "show_seat")),
	}
}

func (r *showSeatRepository) CreateBatch(ctx context.Context, showSeats []*entity.ShowSeat) error {
	if len(showSeats) == 0 {
		return nil
	}

	var query strings.Builder
	query.WriteString(`
		INSERT INTO show_seats (show_id, seat_id, is_available, price, version, created_at, updated_at)
		VALUES `)
	args := make([]any, 0, len(showSeats)*7)

	for i, ss := range showSeats {
		if i > 0 {
			query.WriteString(", ")
		}
		n := i * 7
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)
		args = append(args, ss.ShowID, ss.SeatID, ss.IsAvailable, ss.Price, ss.Version, ss.CreatedAt, ss.UpdatedAt)
	}

	// single statement, so the batch is all-or-nothing
	if _, err := r.db.Exec(ctx, query.String(), args...); err != nil {
		err = mapPgError(err)
		r.log.Warn("Failed to associate seats",
			zap.Error(err),
			zap.Int64("show_id", showSeats[0].ShowID),
			zap.Int("count", len(showSeats)),
		)
		return fmt.Errorf("associate seats to show %d: %w", showSeats[0].ShowID, err)
	}

	return nil
}

func (r *showSeatRepository) FindByShowID(ctx context.Context, showID int64) ([]*entity.ShowSeat, error) {
	query := `
		SELECT ss.id, ss.show_id, ss.seat_id, ss.is_available, ss.price, ss.version,
		       ss.created_at, ss.updated_at, s.seat_number, s.seat_type
		FROM show_seats ss
		JOIN seats s ON s.id = ss.seat_id
		WHERE ss.show_id = $1
		ORDER BY ss.seat_id
	`

	rows, err := r.db.Query(ctx, query, showID)
	if err != nil {
		r.log.Error("Failed to find show seats", zap.Error(err), zap.Int64("show_id", showID))
		return nil, fmt.Errorf("find seats of show %d: %w", showID, err)
	}
	defer rows.Close()

	showSeats := make([]*entity.ShowSeat, 0)
	for rows.Next() {
		var ss entity.ShowSeat
		if err := rows.Scan(
			&ss.ID,
			&ss.ShowID,
			&ss.SeatID,
			&ss.IsAvailable,
			&ss.Price,
			&ss.Version,
			&ss.CreatedAt,
			&ss.UpdatedAt,
			&ss.SeatNumber,
			&ss.SeatType,
		); err != nil {
			return nil, fmt.Errorf("scan show seat: %w", err)
		}
		showSeats = append(showSeats, &ss)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate show seats: %w", err)
	}

	return showSeats, nil
}
