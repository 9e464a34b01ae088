package request

type ShowRequest struct {
	ShowStartTime string `json:"show_start_time" validate:"required"`
	ShowDate      string `json:"show_date" validate:"required,datetime=2006-01-02"`
	TheaterID     int64  `json:"theater_id" validate:"required,gt=0"`
	MovieID       int64  `json:"movie_id" validate:"required,gt=0"`
}

// ShowSeatRequest associates theater seats with a show.
// Empty SeatIDs means every seat of the show's theater.
type ShowSeatRequest struct {
	ShowID               int64   `json:"show_id" validate:"required,gt=0"`
	SeatIDs              []int64 `json:"seat_ids,omitempty" validate:"omitempty,dive,gt=0"`
	PriceForClassicSeats float64 `json:"price_for_classic_seats" validate:"gte=0"`
	PriceForPremiumSeats float64 `json:"price_for_premium_seats" validate:"gte=0"`
}
