package response

import (
	"showtime-booking/internal/data/entity"
)

type SeatResponse struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seat_number"`
	SeatType   string `json:"seat_type"`
}

type TheaterResponse struct {
	ID      int64          `json:"id"`
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Seats   []SeatResponse `json:"seats,omitempty"`
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	result := make([]SeatResponse, len(seats))
	for i, s := range seats {
		result[i] = SeatResponse{
			ID:         s.ID,
			SeatNumber: s.SeatNumber,
			SeatType:   string(s.SeatType),
		}
	}
	return result
}

func TheaterToResponse(theater *entity.Theater, seats []*entity.Seat) TheaterResponse {
	resp := TheaterResponse{
		ID:      theater.ID,
		Name:    theater.Name,
		Address: theater.Address,
	}
	if len(seats) > 0 {
		resp.Seats = SeatsToResponse(seats)
	}
	return resp
}
