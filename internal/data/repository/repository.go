package repository

import (
	"showtime-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Movie    MovieRepository
	Show     ShowRepository
	Theater  TheaterRepository
	Seat     SeatRepository
	ShowSeat ShowSeatRepository
	Ticket   TicketRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Show:     NewShowRepository(db, log),
		Theater:  NewTheaterRepository(db, log),
		Seat:     NewSeatRepository(db, log),
		ShowSeat: NewShowSeatRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
	}
}
