package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, g guards) {
	r.Route("/movie", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/all", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.auth)  // Must be authenticated
			r.Use(g.admin) // Must be admin

			r.Post("/addNew", movieHandler.AddMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
