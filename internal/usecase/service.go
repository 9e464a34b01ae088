package usecase

import (
	"time"

	"showtime-booking/internal/data/repository"
	"showtime-booking/pkg/cache"
	"showtime-booking/pkg/queue"
	"showtime-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	User    UserService
	Movie   MovieService
	Show    ShowService
	Theater TheaterService
	Ticket  TicketService
}

// Deps groups the infrastructure shared by the services.
type Deps struct {
	Repo      *repository.Repository
	Cache     cache.Cache
	Publisher queue.Publisher
	Config    *utils.Config
	Log       *zap.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

func NewService(d Deps) *Service {
	if d.Cache == nil {
		d.Cache = cache.NewNoopCache()
	}
	if d.Publisher == nil {
		d.Publisher = queue.NewNoopPublisher()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return &Service{
		User:    NewUserService(d.Repo, d.Config.JWT, d.Now, d.Log),
		Movie:   NewMovieService(d.Repo, d.Cache, d.Now, d.Log),
		Show:    NewShowService(d.Repo, d.Cache, d.Now, d.Log),
		Theater: NewTheaterService(d.Repo, d.Now, d.Log),
		Ticket:  NewTicketService(d.Repo, d.Publisher, d.Config.Booking, d.Now, d.Log),
	}
}
