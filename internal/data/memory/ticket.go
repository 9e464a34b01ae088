package memory

import (
	"context"
	"fmt"
	"sort"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"

	"go.uber.org/zap"
)

type ticketRepo struct{ s *Store }

func (r *ticketRepo) Book(ctx context.Context, ticket *entity.Ticket) error {
	if len(ticket.SeatIDs) == 0 {
		return fmt.Errorf("book show %d: %w", ticket.ShowID, repository.ErrNoSeats)
	}
	for i := 1; i < len(ticket.SeatIDs); i++ {
		if ticket.SeatIDs[i] <= ticket.SeatIDs[i-1] {
			return fmt.Errorf("book show %d: seat ids must be unique and ascending", ticket.ShowID)
		}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	claimErr := &repository.SeatClaimError{ShowID: ticket.ShowID}
	rows := make([]*showSeatRow, 0, len(ticket.SeatIDs))
	for _, seatID := range ticket.SeatIDs {
		row, ok := r.s.showSeats[showSeatKey{ticket.ShowID, seatID}]
		if !ok {
			claimErr.Missing = append(claimErr.Missing, seatID)
			continue
		}
		rows = append(rows, row)
	}
	if len(claimErr.Missing) > 0 {
		return claimErr
	}

	// ascending seat id, same as the SQL lock order
	for _, row := range rows {
		row.mu.Lock()
	}
	defer func() {
		for i := len(rows) - 1; i >= 0; i-- {
			rows[i].mu.Unlock()
		}
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("book show %d: %w", ticket.ShowID, err)
	}

	for _, row := range rows {
		if !row.data.IsAvailable {
			claimErr.Booked = append(claimErr.Booked, r.s.seats[row.data.SeatID].SeatNumber)
		}
	}
	if len(claimErr.Booked) > 0 {
		return claimErr
	}

	ticket.TotalPrice = 0
	ticket.SeatNumbers = make([]string, 0, len(rows))
	for _, row := range rows {
		row.data.IsAvailable = false
		row.data.Version++
		row.data.UpdatedAt = ticket.BookedAt
		ticket.TotalPrice += row.data.Price
		ticket.SeatNumbers = append(ticket.SeatNumbers, r.s.seats[row.data.SeatID].SeatNumber)
	}

	r.s.ticketMu.Lock()
	r.s.lastTicketID++
	ticket.ID = r.s.lastTicketID
	cp := *ticket
	cp.SeatIDs = append([]int64(nil), ticket.SeatIDs...)
	cp.SeatNumbers = append([]string(nil), ticket.SeatNumbers...)
	r.s.tickets[ticket.ID] = &cp
	r.s.ticketMu.Unlock()

	r.s.log.Debug("Seats claimed",
		zap.Int64("ticket_id", ticket.ID),
		zap.Int64("show_id", ticket.ShowID),
		zap.Strings("seats", ticket.SeatNumbers),
	)
	return nil
}

func (r *ticketRepo) FindByUserID(_ context.Context, userID int64) ([]*entity.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	r.s.ticketMu.Lock()
	defer r.s.ticketMu.Unlock()

	tickets := make([]*entity.Ticket, 0)
	for _, t := range r.s.tickets {
		if t.UserID != userID {
			continue
		}
		cp := *t
		cp.SeatIDs = append([]int64(nil), t.SeatIDs...)
		cp.SeatNumbers = append([]string(nil), t.SeatNumbers...)
		tickets = append(tickets, &cp)
	}

	sort.Slice(tickets, func(i, j int) bool {
		if !tickets[i].BookedAt.Equal(tickets[j].BookedAt) {
			return tickets[i].BookedAt.After(tickets[j].BookedAt)
		}
		return tickets[i].ID > tickets[j].ID
	})
	return tickets, nil
}
