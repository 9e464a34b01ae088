package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"showtime-booking/internal/data/memory"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/pkg/cache"
	"showtime-booking/pkg/queue"
	"showtime-booking/pkg/utils"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// MockPublisher is a mock implementation of queue.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTicketBooked(ctx context.Context, event queue.TicketBookedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc   *Service
	repo  *repository.Repository
	clock *testClock
	pub   *MockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCache(t, nil)
}

func newFixtureWithCache(t *testing.T, c cache.Cache) *fixture {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
	pub := new(MockPublisher)
	pub.On("PublishTicketBooked", mock.Anything, mock.Anything).Return(nil).Maybe()

	repo := memory.NewRepository(zap.NewNop())
	config := &utils.Config{
		JWT:     utils.JWTConfig{Secret: testSecret, ExpiryMinutes: 30},
		Booking: utils.BookingConfig{MaxAttempts: 3},
	}

	svc := NewService(Deps{
		Repo:      repo,
		Cache:     c,
		Publisher: pub,
		Config:    config,
		Log:       zap.NewNop(),
		Now:       clock.Now,
	})

	return &fixture{svc: svc, repo: repo, clock: clock, pub: pub}
}

type seededShow struct {
	showID    int64
	movieID   int64
	theaterID int64
	// seat number -> seat id
	seats map[string]int64
}

// seedShow creates a movie and a theater with A1-A5 classic and B1-B5 premium
// seats, then a show with every seat associated.
func (f *fixture) seedShow(t *testing.T, movieName string) seededShow {
	t.Helper()
	ctx := context.Background()

	movie, err := f.svc.Movie.AddMovie(ctx, &request.MovieRequest{
		MovieName:   movieName,
		Duration:    120,
		Rating:      8.1,
		ReleaseDate: "2026-01-10",
		Genre:       "ACTION",
		Language:    "ENGLISH",
	})
	require.NoError(t, err)

	theater, err := f.svc.Theater.AddTheater(ctx, &request.TheaterRequest{
		Name:             "Galaxy " + movieName,
		Address:          "Jl. Sudirman 1",
		ClassicSeatCount: 5,
		PremiumSeatCount: 5,
	})
	require.NoError(t, err)

	show, err := f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "19:30",
		ShowDate:      "2026-03-20",
		TheaterID:     theater.ID,
		MovieID:       movie.ID,
	})
	require.NoError(t, err)

	assoc, err := f.svc.Show.AssociateSeats(ctx, &request.ShowSeatRequest{
		ShowID:               show.ID,
		PriceForClassicSeats: 100,
		PriceForPremiumSeats: 150,
	})
	require.NoError(t, err)
	require.Equal(t, 10, assoc.Count)

	seats := make(map[string]int64, len(theater.Seats))
	for _, s := range theater.Seats {
		seats[s.SeatNumber] = s.ID
	}

	return seededShow{showID: show.ID, movieID: movie.ID, theaterID: theater.ID, seats: seats}
}

// registerUser registers an account and returns its principal.
func (f *fixture) registerUser(t *testing.T, email string) utils.Principal {
	t.Helper()

	user, err := f.svc.User.Register(context.Background(), &request.UserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)

	return utils.Principal{UserID: user.ID, Email: user.Email, Role: string(user.Role)}
}

// stickyCache keeps every value it is given and ignores deletes.
type stickyCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newStickyCache() *stickyCache {
	return &stickyCache{values: make(map[string][]byte)}
}

func (c *stickyCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *stickyCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = raw
	return nil
}

func (c *stickyCache) Delete(context.Context, ...string) error { return nil }

func (c *stickyCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}
