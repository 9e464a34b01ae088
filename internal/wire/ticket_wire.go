package wire

import (
	"showtime-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler, g guards) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Route("/ticket", func(r chi.Router) {
		r.Use(g.auth)

		// POST /ticket/book - user id comes from the token
		r.Post("/book", ticketHandler.BookTicket)

		// GET /ticket/user/{userId} - own tickets, or any user's for admin
		r.Get("/user/{userId}", ticketHandler.GetUserTickets)
	})
}
