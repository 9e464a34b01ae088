package adaptor

import (
	"showtime-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	User    *UserHandler
	Movie   *MovieHandler
	Show    *ShowHandler
	Theater *TheaterHandler
	Ticket  *TicketHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		User:    NewUserHandler(service.User, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Show:    NewShowHandler(service.Show, log),
		Theater: NewTheaterHandler(service.Theater, log),
		Ticket:  NewTicketHandler(service.Ticket, log),
	}
}
