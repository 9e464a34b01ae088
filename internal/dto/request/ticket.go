package request

// TicketRequest books seats by id or by seat number, never both empty.
type TicketRequest struct {
	ShowID      int64    `json:"show_id" validate:"required,gt=0"`
	SeatIDs     []int64  `json:"seat_ids,omitempty" validate:"required_without=SeatNumbers,dive,gt=0"`
	SeatNumbers []string `json:"seat_numbers,omitempty" validate:"required_without=SeatIDs,dive,required"`
}
