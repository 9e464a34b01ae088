package entity

// ShowSeat is one seat's availability for one show.
// IsAvailable only ever goes from true to false.
type ShowSeat struct {
	Base
	ShowID      int64   `db:"show_id"`
	SeatID      int64   `db:"seat_id"`
	IsAvailable bool    `db:"is_available"`
	Price       float64 `db:"price"`
	Version     int     `db:"version"`

	// joined from seats, not a column of show_seats
	SeatNumber string   `db:"-"`
	SeatType   SeatType `db:"-"`
}
