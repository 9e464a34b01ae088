package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShow(r chi.Router, showHandler *adaptor.ShowHandler, g guards) {
	r.Route("/show", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/all", showHandler.GetShows)
		r.Get("/movie/{movieId}", showHandler.GetShowsByMovie)
		r.Get("/{id}", showHandler.GetShowByID)
		r.Get("/{id}/seats", showHandler.GetShowSeats)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)
			r.Use(g.admin)

			r.Post("/addNew", showHandler.AddShow)
			r.Post("/associateSeats", showHandler.AssociateSeats)
		})
	})
}
