package request

type SeatRequest struct {
	SeatNumber string `json:"seat_number" validate:"required,max=10"`
	SeatType   string `json:"seat_type" validate:"required,oneof=CLASSIC PREMIUM"`
}

// TheaterRequest creates a theater with explicit seats, a generated grid, or both.
type TheaterRequest struct {
	Name             string        `json:"name" validate:"required,max=255"`
	Address          string        `json:"address" validate:"required"`
	Seats            []SeatRequest `json:"seats,omitempty" validate:"omitempty,dive"`
	ClassicSeatCount int           `json:"classic_seat_count" validate:"gte=0,lte=1000"`
	PremiumSeatCount int           `json:"premium_seat_count" validate:"gte=0,lte=1000"`
}

type TheaterSeatRequest struct {
	TheaterID int64         `json:"theater_id" validate:"required,gt=0"`
	Seats     []SeatRequest `json:"seats" validate:"required,min=1,dive"`
}
