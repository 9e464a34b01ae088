package queue

import "time"

// TicketBookedEvent is published once per committed booking.
type TicketBookedEvent struct {
	TicketID    int64     `json:"ticket_id"`
	TicketCode  string    `json:"ticket_code"`
	UserID      int64     `json:"user_id"`
	ShowID      int64     `json:"show_id"`
	SeatNumbers []string  `json:"seat_numbers"`
	TotalPrice  float64   `json:"total_price"`
	BookedAt    time.Time `json:"booked_at"`
}
