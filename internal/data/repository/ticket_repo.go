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

type TicketRepository interface {
	// Book claims ticket.SeatIDs for ticket.ShowID and stores the ticket, all in one transaction.
	// SeatIDs must be sorted ascending. Fills ID, SeatNumbers and TotalPrice on success.
	Book(ctx context.Context, ticket *entity.Ticket) error
	// FindByUserID returns tickets most recent first
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Book(ctx context.Context, ticket *entity.Ticket) error {
	if len(ticket.SeatIDs) == 0 {
		return fmt.Errorf("book show %d: %w", ticket.ShowID, ErrNoSeats)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	locked, err := lockShowSeats(ctx, tx, ticket.ShowID, ticket.SeatIDs)
	if err != nil {
		return err
	}

	claimErr := &SeatClaimError{ShowID: ticket.ShowID}
	for _, seatID := range ticket.SeatIDs {
		ss, ok := locked[seatID]
		switch {
		case !ok:
			claimErr.Missing = append(claimErr.Missing, seatID)
		case !ss.IsAvailable:
			claimErr.Booked = append(claimErr.Booked, ss.SeatNumber)
		}
	}
	if len(claimErr.Missing) > 0 || len(claimErr.Booked) > 0 {
		return claimErr
	}

	result, err := tx.Exec(ctx, `
		UPDATE show_seats
		SET is_available = FALSE, version = version + 1, updated_at = NOW()
		WHERE show_id = $1 AND seat_id = ANY($2) AND is_available
	`, ticket.ShowID, ticket.SeatIDs)
	if err != nil {
		return fmt.Errorf("claim seats: %w", mapPgError(err))
	}
	if result.RowsAffected() != int64(len(ticket.SeatIDs)) {
		// cannot happen while the rows stay locked
		return fmt.Errorf("claim seats: updated %d of %d rows: %w", result.RowsAffected(), len(ticket.SeatIDs), ErrRetryable)
	}

	ticket.TotalPrice = 0
	ticket.SeatNumbers = make([]string, 0, len(ticket.SeatIDs))
	for _, seatID := range ticket.SeatIDs {
		ss := locked[seatID]
		ticket.TotalPrice += ss.Price
		ticket.SeatNumbers = append(ticket.SeatNumbers, ss.SeatNumber)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO tickets (ticket_code, user_id, show_id, total_price, booked_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, ticket.TicketCode, ticket.UserID, ticket.ShowID, ticket.TotalPrice, ticket.BookedAt).Scan(&ticket.ID)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", mapPgError(err))
	}

	var query strings.Builder
	query.WriteString(`INSERT INTO ticket_seats (ticket_id, seat_id) VALUES `)
	args := make([]any, 0, len(ticket.SeatIDs)*2)
	for i, seatID := range ticket.SeatIDs {
		if i > 0 {
			query.WriteString(", ")
		}
		fmt.Fprintf(&query, "($%d, $%d)", i*2+1, i*2+2)
		args = append(args, ticket.ID, seatID)
	}
	if _, err := tx.Exec(ctx, query.String(), args...); err != nil {
		return fmt.Errorf("insert ticket seats: %w", mapPgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking: %w", mapPgError(err))
	}

	r.log.Debug("Seats claimed",
		zap.Int64("ticket_id", ticket.ID),
		zap.Int64("show_id", ticket.ShowID),
		zap.Strings("seats", ticket.SeatNumbers),
	)

	return nil
}

// lockShowSeats takes row locks on the requested show seats in ascending seat id order.
func lockShowSeats(ctx context.Context, tx pgx.Tx, showID int64, seatIDs []int64) (map[int64]*entity.ShowSeat, error) {
	rows, err := tx.Query(ctx, `
		SELECT ss.id, ss.seat_id, ss.is_available, ss.price, ss.version, s.seat_number
		FROM show_seats ss
		JOIN seats s ON s.id = ss.seat_id
		WHERE ss.show_id = $1 AND ss.seat_id = ANY($2)
		ORDER BY ss.seat_id
		FOR UPDATE OF ss
	`, showID, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("lock show seats: %w", mapPgError(err))
	}
	defer rows.Close()

	locked := make(map[int64]*entity.ShowSeat, len(seatIDs))
	for rows.Next() {
		ss := &entity.ShowSeat{ShowID: showID}
		if err := rows.Scan(&ss.ID, &ss.SeatID, &ss.IsAvailable, &ss.Price, &ss.Version, &ss.SeatNumber); err != nil {
			return nil, fmt.Errorf("scan locked seat: %w", err)
		}
		locked[ss.SeatID] = ss
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lock show seats: %w", mapPgError(err))
	}

	return locked, nil
}

func (r *ticketRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Ticket, error) {
	query := `
		SELECT t.id, t.ticket_code, t.user_id, t.show_id, t.total_price, t.booked_at,
		       COALESCE(array_agg(s.id ORDER BY s.id) FILTER (WHERE s.id IS NOT NULL), '{}'),
		       COALESCE(array_agg(s.seat_number ORDER BY s.id) FILTER (WHERE s.id IS NOT NULL), '{}')
		FROM tickets t
		LEFT JOIN ticket_seats ts ON ts.ticket_id = t.id
		LEFT JOIN seats s ON s.id = ts.seat_id
		WHERE t.user_id = $1
		GROUP BY t.id
		ORDER BY t.booked_at DESC, t.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find user tickets", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find tickets of user %d: %w", userID, err)
	}
	defer rows.Close()

	tickets := make([]*entity.Ticket, 0)
	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(
			&t.ID,
			&t.TicketCode,
			&t.UserID,
			&t.ShowID,
			&t.TotalPrice,
			&t.BookedAt,
			&t.SeatIDs,
			&t.SeatNumbers,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}
