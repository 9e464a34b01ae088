package response

import (
	"time"

	"showtime-booking/internal/data/entity"
)

type TicketResponse struct {
	TicketID    int64     `json:"ticket_id"`
	TicketCode  string    `json:"ticket_code"`
	UserID      int64     `json:"user_id"`
	ShowID      int64     `json:"show_id"`
	MovieName   string    `json:"movie_name"`
	TheaterName string    `json:"theater_name"`
	Address     string    `json:"address"`
	ShowDate    string    `json:"show_date"`
	ShowTime    string    `json:"show_time"`
	SeatIDs     []int64   `json:"seat_ids"`
	BookedSeats []string  `json:"booked_seats"`
	TotalPrice  float64   `json:"total_price"`
	BookedAt    time.Time `json:"booked_at"`
}

// TicketToResponse joins a ticket with its show, movie and theater.
// Any of the joined records may be nil.
func TicketToResponse(t *entity.Ticket, show *entity.Show, movie *entity.Movie, theater *entity.Theater) TicketResponse {
	resp := TicketResponse{
		TicketID:    t.ID,
		TicketCode:  t.TicketCode,
		UserID:      t.UserID,
		ShowID:      t.ShowID,
		SeatIDs:     t.SeatIDs,
		BookedSeats: t.SeatNumbers,
		TotalPrice:  t.TotalPrice,
		BookedAt:    t.BookedAt,
	}
	if show != nil {
		resp.ShowDate = show.ShowDate.Format("2006-01-02")
		resp.ShowTime = show.StartTime
	}
	if movie != nil {
		resp.MovieName = movie.MovieName
	}
	if theater != nil {
		resp.TheaterName = theater.Name
		resp.Address = theater.Address
	}
	return resp
}
