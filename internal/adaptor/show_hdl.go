package adaptor

import (
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// AddShow handles POST /show/addNew (admin)
func (h *ShowHandler) AddShow(w http.ResponseWriter, r *http.Request) {
	var req request.ShowRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	show, err := h.service.AddShow(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create show")
		return
	}

	utils.ResponseCreated(w, "Show created successfully", show)
}

// AssociateSeats handles POST /show/associateSeats (admin)
func (h *ShowHandler) AssociateSeats(w http.ResponseWriter, r *http.Request) {
	var req request.ShowSeatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.service.AssociateSeats(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "associate seats")
		return
	}

	utils.ResponseCreated(w, "Seats associated successfully", result)
}

// GetShows handles GET /show/all
func (h *ShowHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.service.ListShows(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShowsByMovie handles GET /show/movie/{movieId}
func (h *ShowHandler) GetShowsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseIDParam(w, r, "movieId")
	if !ok {
		return
	}

	shows, err := h.service.ListShowsByMovie(r.Context(), movieID)
	if err != nil {
		handleServiceError(w, h.log, err, "get shows by movie")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShowByID handles GET /show/{id}
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	showID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	show, err := h.service.GetShow(r.Context(), showID)
	if err != nil {
		handleServiceError(w, h.log, err, "get show by ID")
		return
	}

	utils.ResponseSuccess(w, "Show retrieved successfully", show)
}

// GetShowSeats handles GET /show/{id}/seats
func (h *ShowHandler) GetShowSeats(w http.ResponseWriter, r *http.Request) {
	showID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	seats, err := h.service.ListShowSeats(r.Context(), showID)
	if err != nil {
		handleServiceError(w, h.log, err, "get show seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}
