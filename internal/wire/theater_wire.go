package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTheater(r chi.Router, theaterHandler *adaptor.TheaterHandler, g guards) {
	r.Route("/theater", func(r chi.Router) {
		r.Get("/all", theaterHandler.GetTheaters)
		r.Get("/{id}", theaterHandler.GetTheaterByID)

		r.With(g.auth, g.admin).Post("/addNew", theaterHandler.AddTheater)
		r.With(g.auth, g.admin).Post("/addTheaterSeat", theaterHandler.AddTheaterSeats)
	})
}
