package entity

import (
	"time"
)

type Ticket struct {
	ID          int64     `db:"id"`
	TicketCode  string    `db:"ticket_code"`
	UserID      int64     `db:"user_id"`
	ShowID      int64     `db:"show_id"`
	TotalPrice  float64   `db:"total_price"`
	BookedAt    time.Time `db:"booked_at"`
	SeatIDs     []int64   `db:"-"`
	SeatNumbers []string  `db:"-"`
}
