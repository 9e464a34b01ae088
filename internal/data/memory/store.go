// Package memory keeps every record in process memory behind the repository
// interfaces. It is used for local runs without Postgres and in tests.
package memory

import (
	"sync"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"

	"go.uber.org/zap"
)

type showSeatKey struct {
	showID int64
	seatID int64
}

// showSeatRow carries its own lock so claims on disjoint seats run in parallel.
type showSeatRow struct {
	mu   sync.Mutex
	data entity.ShowSeat
}

// Store holds all tables.
//
// Lock order: mu, then showSeatRow.mu in ascending seat id, then ticketMu.
// Claims hold mu for reading; anything that adds rows or needs a consistent
// view of seat availability holds mu for writing.
type Store struct {
	mu sync.RWMutex

	lastID map[string]int64

	users     map[int64]*entity.User
	movies    map[int64]*entity.Movie
	shows     map[int64]*entity.Show
	theaters  map[int64]*entity.Theater
	seats     map[int64]*entity.Seat
	showSeats map[showSeatKey]*showSeatRow

	ticketMu     sync.Mutex
	tickets      map[int64]*entity.Ticket
	lastTicketID int64

	log *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{
		lastID:    make(map[string]int64),
		users:     make(map[int64]*entity.User),
		movies:    make(map[int64]*entity.Movie),
		shows:     make(map[int64]*entity.Show),
		theaters:  make(map[int64]*entity.Theater),
		seats:     make(map[int64]*entity.Seat),
		showSeats: make(map[showSeatKey]*showSeatRow),
		tickets:   make(map[int64]*entity.Ticket),
		log:       log.With(zap.String("repository", "memory")),
	}
}

// NewRepository wires a fresh Store behind every repository interface.
func NewRepository(log *zap.Logger) *repository.Repository {
	s := NewStore(log)
	return s.Repository()
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:     &userRepo{s},
		Movie:    &movieRepo{s},
		Show:     &showRepo{s},
		Theater:  &theaterRepo{s},
		Seat:     &seatRepo{s},
		ShowSeat: &showSeatRepo{s},
		Ticket:   &ticketRepo{s},
	}
}

// nextID must be called with mu held for writing.
func (s *Store) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}
