package adaptor

import (
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// BookTicket handles POST /ticket/book (protected)
func (h *TicketHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	// user id selalu dari token, bukan dari body
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req request.TicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ticket, err := h.service.BookTicket(r.Context(), principal, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book ticket")
		return
	}

	utils.ResponseCreated(w, "Ticket booked successfully", ticket)
}

// GetUserTickets handles GET /ticket/user/{userId} (protected)
func (h *TicketHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOrUnauthorized(w, r)
	if !ok {
		return
	}

	userID, ok := parseIDParam(w, r, "userId")
	if !ok {
		return
	}

	tickets, err := h.service.GetUserTickets(r.Context(), principal, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}
