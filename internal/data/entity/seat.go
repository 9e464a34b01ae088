package entity

type SeatType string

const (
	SeatTypeClassic SeatType = "CLASSIC"
	SeatTypePremium SeatType = "PREMIUM"
)

type Seat struct {
	BaseSimple
	TheaterID  int64    `db:"theater_id"`
	SeatNumber string   `db:"seat_number"` // A1, A2, B1, etc.
	SeatType   SeatType `db:"seat_type"`
}
