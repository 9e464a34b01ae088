package adaptor

import (
	"net/http"

	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type TheaterHandler struct {
	service usecase.TheaterService
	log     *zap.Logger
}

func NewTheaterHandler(service usecase.TheaterService, log *zap.Logger) *TheaterHandler {
	return &TheaterHandler{
		service: service,
		log:     log.With(zap.String("handler", "theater")),
	}
}

// AddTheater handles POST /theater/addNew (admin)
func (h *TheaterHandler) AddTheater(w http.ResponseWriter, r *http.Request) {
	var req request.TheaterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	theater, err := h.service.AddTheater(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create theater")
		return
	}

	utils.ResponseCreated(w, "Theater created successfully", theater)
}

// AddTheaterSeats handles POST /theater/addTheaterSeat (admin)
func (h *TheaterHandler) AddTheaterSeats(w http.ResponseWriter, r *http.Request) {
	var req request.TheaterSeatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seats, err := h.service.AddTheaterSeats(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add theater seats")
		return
	}

	utils.ResponseCreated(w, "Seats added successfully", seats)
}

// GetTheaters handles GET /theater/all
func (h *TheaterHandler) GetTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.ListTheaters(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheaterByID handles GET /theater/{id}
func (h *TheaterHandler) GetTheaterByID(w http.ResponseWriter, r *http.Request) {
	theaterID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	theater, err := h.service.GetTheater(r.Context(), theaterID)
	if err != nil {
		handleServiceError(w, h.log, err, "get theater by ID")
		return
	}

	utils.ResponseSuccess(w, "Theater retrieved successfully", theater)
}
