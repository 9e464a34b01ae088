package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/pkg/queue"
	"showtime-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookTicket_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Inception")
	user := f.registerUser(t, "budi@example.com")

	ticket, err := f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"a1", "B2"},
	})
	require.NoError(t, err)

	assert.Equal(t, user.UserID, ticket.UserID)
	assert.Equal(t, "Inception", ticket.MovieName)
	assert.Equal(t, "Galaxy Inception", ticket.TheaterName)
	assert.Equal(t, "Jl. Sudirman 1", ticket.Address)
	assert.Equal(t, "2026-03-20", ticket.ShowDate)
	assert.Equal(t, "19:30:00", ticket.ShowTime)
	assert.Equal(t, []string{"A1", "B2"}, ticket.BookedSeats)
	assert.Equal(t, 250.0, ticket.TotalPrice)
	assert.Regexp(t, `^TKT-20260314-[0-9A-F]{8}$`, ticket.TicketCode)

	seats, err := f.svc.Show.ListShowSeats(ctx, seed.showID)
	require.NoError(t, err)
	for _, s := range seats {
		booked := s.SeatNumber == "A1" || s.SeatNumber == "B2"
		assert.Equal(t, !booked, s.IsAvailable, s.SeatNumber)
	}

	f.pub.AssertCalled(t, "PublishTicketBooked", mock.Anything, mock.MatchedBy(func(ev queue.TicketBookedEvent) bool {
		return ev.TicketID == ticket.TicketID && ev.TotalPrice == 250 && len(ev.SeatNumbers) == 2
	}))
}

func TestBookTicket_AlreadyBooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Dune")
	first := f.registerUser(t, "first@example.com")
	second := f.registerUser(t, "second@example.com")

	_, err := f.svc.Ticket.BookTicket(ctx, first, &request.TicketRequest{
		ShowID:  seed.showID,
		SeatIDs: []int64{seed.seats["A2"]},
	})
	require.NoError(t, err)

	_, err = f.svc.Ticket.BookTicket(ctx, second, &request.TicketRequest{
		ShowID:  seed.showID,
		SeatIDs: []int64{seed.seats["A1"], seed.seats["A2"], seed.seats["A3"]},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.ErrorIs(t, err, ErrConflict)

	var unavailable *SeatUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{"A2"}, unavailable.SeatNumbers)

	// nothing of the failed request was claimed
	seats, err := f.svc.Show.ListShowSeats(ctx, seed.showID)
	require.NoError(t, err)
	for _, s := range seats {
		assert.Equal(t, s.SeatNumber != "A2", s.IsAvailable, s.SeatNumber)
	}
}

func TestBookTicket_ConcurrentOverlap(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := newFixture(t)
		seed := f.seedShow(t, fmt.Sprintf("Overlap %d", round))
		alice := f.registerUser(t, "alice@example.com")
		bob := f.registerUser(t, "bob@example.com")

		requests := []struct {
			principal utils.Principal
			seats     []string
		}{
			{alice, []string{"A1", "A2"}},
			{bob, []string{"A2", "A3"}},
		}

		var wg sync.WaitGroup
		errs := make([]error, len(requests))
		start := make(chan struct{})
		for i := range requests {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				_, errs[i] = f.svc.Ticket.BookTicket(context.Background(), requests[i].principal, &request.TicketRequest{
					ShowID:      seed.showID,
					SeatNumbers: requests[i].seats,
				})
			}(i)
		}
		close(start)
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
				continue
			}
			var unavailable *SeatUnavailableError
			require.True(t, errors.As(err, &unavailable), "unexpected error: %v", err)
			assert.Equal(t, []string{"A2"}, unavailable.SeatNumbers)
		}
		require.Equal(t, 1, winners, "round %d", round)

		seats, err := f.svc.Show.ListShowSeats(context.Background(), seed.showID)
		require.NoError(t, err)
		booked := 0
		for _, s := range seats {
			if !s.IsAvailable {
				booked++
			}
		}
		assert.Equal(t, 2, booked)
	}
}

func TestBookTicket_ConcurrentSameSeat(t *testing.T) {
	f := newFixture(t)
	seed := f.seedShow(t, "Rush")

	const buyers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < buyers; i++ {
		p := f.registerUser(t, fmt.Sprintf("buyer%d@example.com", i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Ticket.BookTicket(context.Background(), p, &request.TicketRequest{
				ShowID:  seed.showID,
				SeatIDs: []int64{seed.seats["B5"]},
			})
			if err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, ErrSeatUnavailable)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}

func TestBookTicket_SeatNotAssociated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Heat")
	user := f.registerUser(t, "heat@example.com")

	added, err := f.svc.Theater.AddTheaterSeats(ctx, &request.TheaterSeatRequest{
		TheaterID: seed.theaterID,
		Seats:     []request.SeatRequest{{SeatNumber: "C1", SeatType: "CLASSIC"}},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)

	_, err = f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:  seed.showID,
		SeatIDs: []int64{seed.seats["A1"], added[0].ID},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// A1 stays free after the failed request
	ticket, err := f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:  seed.showID,
		SeatIDs: []int64{seed.seats["A1"]},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1"}, ticket.BookedSeats)
}

func TestBookTicket_UnknownShowAndSeatNumber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Alien")
	user := f.registerUser(t, "alien@example.com")

	_, err := f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:  999,
		SeatIDs: []int64{seed.seats["A1"]},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"Z9"},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{ShowID: seed.showID})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBookTicket_DuplicateSeatsInRequest(t *testing.T) {
	f := newFixture(t)
	seed := f.seedShow(t, "Twins")
	user := f.registerUser(t, "twins@example.com")

	ticket, err := f.svc.Ticket.BookTicket(context.Background(), user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatIDs:     []int64{seed.seats["A4"], seed.seats["A4"]},
		SeatNumbers: []string{"A4"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A4"}, ticket.BookedSeats)
	assert.Equal(t, 100.0, ticket.TotalPrice)
}

func TestGetUserTickets_MostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Memento")
	user := f.registerUser(t, "memento@example.com")

	for _, seat := range []string{"A1", "A2", "A3"} {
		_, err := f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
			ShowID:      seed.showID,
			SeatNumbers: []string{seat},
		})
		require.NoError(t, err)
		f.clock.Advance(time.Minute)
	}

	tickets, err := f.svc.Ticket.GetUserTickets(ctx, user, user.UserID)
	require.NoError(t, err)
	require.Len(t, tickets, 3)

	assert.Equal(t, []string{"A3"}, tickets[0].BookedSeats)
	assert.Equal(t, []string{"A2"}, tickets[1].BookedSeats)
	assert.Equal(t, []string{"A1"}, tickets[2].BookedSeats)
	assert.Equal(t, "Memento", tickets[0].MovieName)
}

func TestGetUserTickets_Access(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.registerUser(t, "owner@example.com")
	other := f.registerUser(t, "other@example.com")

	_, err := f.svc.Ticket.GetUserTickets(ctx, other, owner.UserID)
	assert.ErrorIs(t, err, ErrForbidden)

	tickets, err := f.svc.Ticket.GetUserTickets(ctx, owner, owner.UserID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	admin := other
	admin.Role = "ROLE_ADMIN"
	_, err = f.svc.Ticket.GetUserTickets(ctx, admin, owner.UserID)
	assert.NoError(t, err)
}

func TestBookTicket_EmptySeatList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Empty Row")
	user := f.registerUser(t, "empty@example.com")

	tests := []struct {
		name string
		req  *request.TicketRequest
	}{
		{name: "empty seat ids", req: &request.TicketRequest{ShowID: seed.showID, SeatIDs: []int64{}}},
		{name: "empty seat numbers", req: &request.TicketRequest{ShowID: seed.showID, SeatNumbers: []string{}}},
		{name: "both empty", req: &request.TicketRequest{ShowID: seed.showID, SeatIDs: []int64{}, SeatNumbers: []string{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticket, err := f.svc.Ticket.BookTicket(ctx, user, tt.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, ticket)
		})
	}

	tickets, err := f.svc.Ticket.GetUserTickets(ctx, user, user.UserID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	f.pub.AssertNotCalled(t, "PublishTicketBooked", mock.Anything, mock.Anything)
}

// flakyTicketRepo fails Book with err until failures run out, then delegates.
type flakyTicketRepo struct {
	repository.TicketRepository
	err      error
	failures int32
	calls    atomic.Int32
	onFail   func()
}

func (r *flakyTicketRepo) Book(ctx context.Context, ticket *entity.Ticket) error {
	n := r.calls.Add(1)
	if r.failures < 0 || n <= r.failures {
		if r.onFail != nil {
			r.onFail()
		}
		return fmt.Errorf("book show %d: %w", ticket.ShowID, r.err)
	}
	return r.TicketRepository.Book(ctx, ticket)
}

func TestBookTicket_RetriesExhausted(t *testing.T) {
	f := newFixture(t)
	seed := f.seedShow(t, "Gridlock")
	user := f.registerUser(t, "gridlock@example.com")

	flaky := &flakyTicketRepo{TicketRepository: f.repo.Ticket, err: repository.ErrRetryable, failures: -1}
	f.repo.Ticket = flaky

	_, err := f.svc.Ticket.BookTicket(context.Background(), user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"A1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSeatUnavailable)

	var unavailable *SeatUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{"A1"}, unavailable.SeatNumbers)
	assert.Equal(t, int32(3), flaky.calls.Load())
	f.pub.AssertNotCalled(t, "PublishTicketBooked", mock.Anything, mock.Anything)
}

func TestBookTicket_RetrySucceeds(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "serialization conflict", err: repository.ErrRetryable},
		{name: "ticket code collision", err: repository.ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seed := f.seedShow(t, "Second Try")
			user := f.registerUser(t, "retry@example.com")

			flaky := &flakyTicketRepo{TicketRepository: f.repo.Ticket, err: tt.err, failures: 2}
			f.repo.Ticket = flaky

			ticket, err := f.svc.Ticket.BookTicket(context.Background(), user, &request.TicketRequest{
				ShowID:      seed.showID,
				SeatNumbers: []string{"B1"},
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"B1"}, ticket.BookedSeats)
			assert.Equal(t, int32(3), flaky.calls.Load())
		})
	}
}

func TestBookTicket_RetryStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	seed := f.seedShow(t, "Walkout")
	user := f.registerUser(t, "walkout@example.com")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flaky := &flakyTicketRepo{TicketRepository: f.repo.Ticket, err: repository.ErrRetryable, failures: -1, onFail: cancel}
	f.repo.Ticket = flaky

	_, err := f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"A5"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrSeatUnavailable)
	assert.Equal(t, int32(1), flaky.calls.Load())
}

func TestBookTicket_NoRetryOnStoreFailure(t *testing.T) {
	f := newFixture(t)
	seed := f.seedShow(t, "Outage")
	user := f.registerUser(t, "outage@example.com")

	flaky := &flakyTicketRepo{TicketRepository: f.repo.Ticket, err: errors.New("connection refused"), failures: -1}
	f.repo.Ticket = flaky

	_, err := f.svc.Ticket.BookTicket(context.Background(), user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"A1"},
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSeatUnavailable)
	assert.Equal(t, int32(1), flaky.calls.Load())
}
