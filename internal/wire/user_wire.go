package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures registration, token and profile routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	r.Route("/user", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Post("/addNew", userHandler.AddUser)
		r.With(g.tokenLimit).Post("/getToken", userHandler.GetToken)

		// ==================== PROTECTED ROUTES ====================
		r.With(g.auth).Get("/profile", userHandler.Profile)
	})
}
