package response

import (
	"showtime-booking/internal/data/entity"
)

type ShowResponse struct {
	ID        int64  `json:"id"`
	MovieID   int64  `json:"movie_id"`
	TheaterID int64  `json:"theater_id"`
	ShowDate  string `json:"show_date"`
	StartTime string `json:"start_time"`
}

type ShowSeatResponse struct {
	SeatID      int64   `json:"seat_id"`
	SeatNumber  string  `json:"seat_number"`
	SeatType    string  `json:"seat_type"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"is_available"`
}

type AssociateSeatsResponse struct {
	ShowID int64 `json:"show_id"`
	Count  int   `json:"count"`
}

func ShowToResponse(show *entity.Show) ShowResponse {
	return ShowResponse{
		ID:        show.ID,
		MovieID:   show.MovieID,
		TheaterID: show.TheaterID,
		ShowDate:  show.ShowDate.Format("2006-01-02"),
		StartTime: show.StartTime,
	}
}

func ShowsToResponse(shows []*entity.Show) []ShowResponse {
	result := make([]ShowResponse, len(shows))
	for i, s := range shows {
		result[i] = ShowToResponse(s)
	}
	return result
}

func ShowSeatsToResponse(showSeats []*entity.ShowSeat) []ShowSeatResponse {
	result := make([]ShowSeatResponse, len(showSeats))
	for i, ss := range showSeats {
		result[i] = ShowSeatResponse{
			SeatID:      ss.SeatID,
			SeatNumber:  ss.SeatNumber,
			SeatType:    string(ss.SeatType),
			Price:       ss.Price,
			IsAvailable: ss.IsAvailable,
		}
	}
	return result
}
