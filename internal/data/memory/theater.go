package memory

import (
	"context"
	"fmt"
	"sort"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
)

type theaterRepo struct{ s *Store }

func (r *theaterRepo) Create(_ context.Context, theater *entity.Theater, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if seen[seat.SeatNumber] {
			return fmt.Errorf("failed to create batch seats: %s: %w", seat.SeatNumber, repository.ErrDuplicate)
		}
		seen[seat.SeatNumber] = true
	}

	theater.ID = r.s.nextID("theaters")
	cp := *theater
	r.s.theaters[theater.ID] = &cp

	for _, seat := range seats {
		seat.TheaterID = theater.ID
		r.s.insertSeatLocked(seat)
	}
	return nil
}

func (r *theaterRepo) FindByID(_ context.Context, id int64) (*entity.Theater, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.theaters[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *theaterRepo) FindAll(_ context.Context) ([]*entity.Theater, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	theaters := make([]*entity.Theater, 0, len(r.s.theaters))
	for _, t := range r.s.theaters {
		cp := *t
		theaters = append(theaters, &cp)
	}
	sort.Slice(theaters, func(i, j int) bool { return theaters[i].ID < theaters[j].ID })
	return theaters, nil
}

func (s *Store) insertSeatLocked(seat *entity.Seat) {
	seat.ID = s.nextID("seats")
	cp := *seat
	s.seats[seat.ID] = &cp
}

type seatRepo struct{ s *Store }

func (r *seatRepo) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	type key struct {
		theaterID int64
		number    string
	}
	taken := make(map[key]bool)
	for _, seat := range r.s.seats {
		taken[key{seat.TheaterID, seat.SeatNumber}] = true
	}

	for _, seat := range seats {
		if _, ok := r.s.theaters[seat.TheaterID]; !ok {
			return fmt.Errorf("failed to create batch seats: theater %d: %w", seat.TheaterID, repository.ErrNotFound)
		}
		k := key{seat.TheaterID, seat.SeatNumber}
		if taken[k] {
			return fmt.Errorf("failed to create batch seats: %s: %w", seat.SeatNumber, repository.ErrDuplicate)
		}
		taken[k] = true
	}

	for _, seat := range seats {
		r.s.insertSeatLocked(seat)
	}
	return nil
}

func (r *seatRepo) FindByTheaterID(_ context.Context, theaterID int64) ([]*entity.Seat, error) {
	return r.filter(func(seat *entity.Seat) bool { return seat.TheaterID == theaterID }), nil
}

func (r *seatRepo) FindByIDs(_ context.Context, ids []int64) ([]*entity.Seat, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(seat *entity.Seat) bool { return want[seat.ID] }), nil
}

func (r *seatRepo) FindByNumbers(_ context.Context, theaterID int64, numbers []string) ([]*entity.Seat, error) {
	want := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	return r.filter(func(seat *entity.Seat) bool {
		return seat.TheaterID == theaterID && want[seat.SeatNumber]
	}), nil
}

func (r *seatRepo) filter(keep func(*entity.Seat) bool) []*entity.Seat {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seats := make([]*entity.Seat, 0)
	for _, seat := range r.s.seats {
		if keep(seat) {
			cp := *seat
			seats = append(seats, &cp)
		}
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	return seats
}

type showSeatRepo struct{ s *Store }

func (r *showSeatRepo) CreateBatch(_ context.Context, showSeats []*entity.ShowSeat) error {
	if len(showSeats) == 0 {
		return nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// validate everything first so a failed batch leaves nothing behind
	batch := make(map[showSeatKey]bool, len(showSeats))
	for _, ss := range showSeats {
		if _, ok := r.s.shows[ss.ShowID]; !ok {
			return fmt.Errorf("associate seats to show %d: %w", ss.ShowID, repository.ErrNotFound)
		}
		if _, ok := r.s.seats[ss.SeatID]; !ok {
			return fmt.Errorf("associate seats to show %d: seat %d: %w", ss.ShowID, ss.SeatID, repository.ErrNotFound)
		}
		key := showSeatKey{ss.ShowID, ss.SeatID}
		if _, exists := r.s.showSeats[key]; exists || batch[key] {
			return fmt.Errorf("associate seats to show %d: seat %d: %w", ss.ShowID, ss.SeatID, repository.ErrDuplicate)
		}
		batch[key] = true
	}

	for _, ss := range showSeats {
		ss.ID = r.s.nextID("show_seats")
		row := &showSeatRow{data: *ss}
		r.s.showSeats[showSeatKey{ss.ShowID, ss.SeatID}] = row
	}
	return nil
}

func (r *showSeatRepo) FindByShowID(_ context.Context, showID int64) ([]*entity.ShowSeat, error) {
	// write lock: no claim is in flight while we read availability
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*entity.ShowSeat, 0)
	for key, row := range r.s.showSeats {
		if key.showID != showID {
			continue
		}
		cp := row.data
		if seat, ok := r.s.seats[key.seatID]; ok {
			cp.SeatNumber = seat.SeatNumber
			cp.SeatType = seat.SeatType
		}
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SeatID < result[j].SeatID })
	return result, nil
}
