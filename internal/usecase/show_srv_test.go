package usecase

import (
	"context"
	"testing"

	"showtime-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeShowTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:30", want: "09:30:00"},
		{in: "21:15:45", want: "21:15:45"},
		{in: "00:00", want: "00:00:00"},
		{in: "23:59:59", want: "23:59:59"},
		{in: "9:30", wantErr: true},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "7 PM", wantErr: true},
		{in: "19:30:0", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeShowTime(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidArgument)
				assert.Contains(t, err.Error(), "expected HH:mm or HH:mm:ss (24-hour), got: "+tt.in)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddShow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Oppenheimer")

	show, err := f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "14:05:30",
		ShowDate:      "2026-04-01",
		TheaterID:     seed.theaterID,
		MovieID:       seed.movieID,
	})
	require.NoError(t, err)
	assert.Equal(t, "14:05:30", show.StartTime)
	assert.Equal(t, "2026-04-01", show.ShowDate)

	_, err = f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "2pm",
		ShowDate:      "2026-04-01",
		TheaterID:     seed.theaterID,
		MovieID:       seed.movieID,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "14:00",
		ShowDate:      "2026-04-01",
		TheaterID:     seed.theaterID,
		MovieID:       999,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "14:00",
		ShowDate:      "2026-04-01",
		TheaterID:     999,
		MovieID:       seed.movieID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListShowsByMovie(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.seedShow(t, "First")
	second := f.seedShow(t, "Second")

	shows, err := f.svc.Show.ListShowsByMovie(ctx, first.movieID)
	require.NoError(t, err)
	require.Len(t, shows, 1)
	assert.Equal(t, first.showID, shows[0].ID)

	all, err := f.svc.Show.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := f.svc.Show.ListShowsByMovie(ctx, second.movieID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAssociateSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seed := f.seedShow(t, "Tenet")

	// every seat of the theater is already associated by seedShow
	_, err := f.svc.Show.AssociateSeats(ctx, &request.ShowSeatRequest{
		ShowID:  seed.showID,
		SeatIDs: []int64{seed.seats["A1"]},
	})
	assert.ErrorIs(t, err, ErrConflict)

	show, err := f.svc.Show.AddShow(ctx, &request.ShowRequest{
		ShowStartTime: "22:00",
		ShowDate:      "2026-03-21",
		TheaterID:     seed.theaterID,
		MovieID:       seed.movieID,
	})
	require.NoError(t, err)

	res, err := f.svc.Show.AssociateSeats(ctx, &request.ShowSeatRequest{
		ShowID:               show.ID,
		SeatIDs:              []int64{seed.seats["B1"], seed.seats["A1"], seed.seats["A1"]},
		PriceForClassicSeats: 80,
		PriceForPremiumSeats: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)

	seats, err := f.svc.Show.ListShowSeats(ctx, show.ID)
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, "A1", seats[0].SeatNumber)
	assert.Equal(t, 80.0, seats[0].Price)
	assert.Equal(t, "B1", seats[1].SeatNumber)
	assert.Equal(t, 120.0, seats[1].Price)
	assert.True(t, seats[0].IsAvailable)

	// seat of another theater
	other := f.seedShow(t, "Other")
	_, err = f.svc.Show.AssociateSeats(ctx, &request.ShowSeatRequest{
		ShowID:  show.ID,
		SeatIDs: []int64{other.seats["A5"]},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Show.AssociateSeats(ctx, &request.ShowSeatRequest{ShowID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListShowSeats_ReflectsBookingWithCache(t *testing.T) {
	c := newStickyCache()
	f := newFixtureWithCache(t, c)
	ctx := context.Background()
	seed := f.seedShow(t, "Tenet")
	user := f.registerUser(t, "tenet@example.com")

	before, err := f.svc.Show.ListShowSeats(ctx, seed.showID)
	require.NoError(t, err)
	for _, s := range before {
		assert.True(t, s.IsAvailable, s.SeatNumber)
	}

	_, err = f.svc.Ticket.BookTicket(ctx, user, &request.TicketRequest{
		ShowID:      seed.showID,
		SeatNumbers: []string{"A1"},
	})
	require.NoError(t, err)

	// even a cache that never forgets cannot serve the old seat map
	after, err := f.svc.Show.ListShowSeats(ctx, seed.showID)
	require.NoError(t, err)
	for _, s := range after {
		assert.Equal(t, s.SeatNumber != "A1", s.IsAvailable, s.SeatNumber)
	}

	for _, key := range c.Keys() {
		assert.NotContains(t, key, "seats")
	}

	// listings are still read through the cache
	_, err = f.svc.Show.ListShows(ctx)
	require.NoError(t, err)
	assert.Contains(t, c.Keys(), "catalog:shows")
}
