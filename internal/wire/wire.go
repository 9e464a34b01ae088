// internal/wire/wire.go
package wire

import (
	"net/http"

	"showtime-booking/internal/adaptor"
	"showtime-booking/internal/usecase"
	"showtime-booking/pkg/middleware"
	"showtime-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// guards are built once and shared by the root and /api route trees
type guards struct {
	auth       func(http.Handler) http.Handler
	admin      func(http.Handler) http.Handler
	tokenLimit func(http.Handler) http.Handler
}

// Wiring menginisialisasi semua dependencies
func Wiring(deps usecase.Deps) *App {
	// Initialize services dan handlers
	service := usecase.NewService(deps)
	handler := adaptor.NewHandler(service, deps.Log)

	// Setup router
	router := setupRouter(handler, service, deps.Config, deps.Log)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	g := guards{
		auth:  middleware.JWTAuth(service.User, logger),
		admin: middleware.Admin(logger),
		tokenLimit: middleware.RateLimit(
			middleware.NewIPRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst),
			logger,
		),
	}

	// Apply routes, both at the root and under /api
	registerRoutes(r, handler, g)
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, handler, g)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]string{"app": config.App.Name})
	})

	return r
}

func registerRoutes(r chi.Router, handler *adaptor.Handler, g guards) {
	wireUser(r, handler.User, g)
	wireMovie(r, handler.Movie, g)
	wireShow(r, handler.Show, g)
	wireTheater(r, handler.Theater, g)
	wireTicket(r, handler.Ticket, g)
}
