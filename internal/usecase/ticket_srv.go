package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"showtime-booking/internal/data/entity"
	"showtime-booking/internal/data/repository"
	"showtime-booking/internal/dto/request"
	"showtime-booking/internal/dto/response"
	"showtime-booking/pkg/queue"
	"showtime-booking/pkg/utils"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const bookingBackoff = 20 * time.Millisecond

type TicketService interface {
	// BookTicket claims every requested seat for the caller or none of them.
	BookTicket(ctx context.Context, principal utils.Principal, req *request.TicketRequest) (*response.TicketResponse, error)
	// GetUserTickets returns tickets most recent first.
	GetUserTickets(ctx context.Context, principal utils.Principal, userID int64) ([]response.TicketResponse, error)
}

type ticketService struct {
	repo        *repository.Repository
	publisher   queue.Publisher
	maxAttempts int
	now         func() time.Time
	log         *zap.Logger
}

func NewTicketService(
	repo *repository.Repository,
	publisher queue.Publisher,
	cfg utils.BookingConfig,
	now func() time.Time,
	log *zap.Logger,
) TicketService {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &ticketService{
		repo:        repo,
		publisher:   publisher,
		maxAttempts: maxAttempts,
		now:         now,
		log:         log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) BookTicket(ctx context.Context, principal utils.Principal, req *request.TicketRequest) (*response.TicketResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book ticket validation failed", zap.Any("errors", errs))
		return nil, validationFailed(errs)
	}
	if principal.UserID <= 0 {
		return nil, fmt.Errorf("%w: missing user", ErrUnauthenticated)
	}

	show, err := s.repo.Show.FindByID(ctx, req.ShowID)
	if err != nil {
		return nil, fmt.Errorf("find show: %w", err)
	}
	if show == nil {
		return nil, fmt.Errorf("show %d %w", req.ShowID, ErrNotFound)
	}

	seatIDs, err := s.resolveSeatIDs(ctx, show, req)
	if err != nil {
		return nil, err
	}
	if len(seatIDs) == 0 {
		s.log.Warn("Book ticket without seats", zap.Int64("show_id", show.ID))
		return nil, fmt.Errorf("%w: at least one seat is required", ErrInvalidArgument)
	}

	ticket, err := s.claim(ctx, principal.UserID, show.ID, seatIDs)
	if err != nil {
		return nil, err
	}

	s.log.Info("Ticket booked",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("ticket_code", ticket.TicketCode),
		zap.Int64("user_id", ticket.UserID),
		zap.Int64("show_id", ticket.ShowID),
		zap.Strings("seats", ticket.SeatNumbers),
		zap.Float64("total_price", ticket.TotalPrice),
	)

	event := queue.TicketBookedEvent{
		TicketID:    ticket.ID,
		TicketCode:  ticket.TicketCode,
		UserID:      ticket.UserID,
		ShowID:      ticket.ShowID,
		SeatNumbers: ticket.SeatNumbers,
		TotalPrice:  ticket.TotalPrice,
		BookedAt:    ticket.BookedAt,
	}
	if err := s.publisher.PublishTicketBooked(ctx, event); err != nil {
		// booking already committed
		s.log.Warn("Failed to publish ticket booked event", zap.Error(err), zap.Int64("ticket_id", ticket.ID))
	}

	movie, theater := s.lookupShowDetails(ctx, show)
	resp := response.TicketToResponse(ticket, show, movie, theater)
	return &resp, nil
}

// resolveSeatIDs merges seat ids and seat numbers into a sorted unique id list.
func (s *ticketService) resolveSeatIDs(ctx context.Context, show *entity.Show, req *request.TicketRequest) ([]int64, error) {
	ids := append([]int64(nil), req.SeatIDs...)

	if len(req.SeatNumbers) > 0 {
		numbers := lo.Uniq(lo.Map(req.SeatNumbers, func(n string, _ int) string {
			return strings.ToUpper(strings.TrimSpace(n))
		}))

		seats, err := s.repo.Seat.FindByNumbers(ctx, show.TheaterID, numbers)
		if err != nil {
			return nil, fmt.Errorf("find seats by number: %w", err)
		}

		found := lo.Associate(seats, func(seat *entity.Seat) (string, int64) { return seat.SeatNumber, seat.ID })
		missing := lo.Filter(numbers, func(n string, _ int) bool {
			_, ok := found[n]
			return !ok
		})
		if len(missing) > 0 {
			return nil, fmt.Errorf("seats %s of show %d %w", strings.Join(missing, ", "), show.ID, ErrNotFound)
		}

		ids = append(ids, lo.Values(found)...)
	}

	ids = lo.Uniq(ids)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// claim runs the repository booking, retrying transaction conflicts.
func (s *ticketService) claim(ctx context.Context, userID, showID int64, seatIDs []int64) (*entity.Ticket, error) {
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		now := s.now()
		ticket := &entity.Ticket{
			TicketCode: utils.GenerateTicketCode(now),
			UserID:     userID,
			ShowID:     showID,
			BookedAt:   now,
			SeatIDs:    seatIDs,
		}

		err := s.repo.Ticket.Book(ctx, ticket)
		if err == nil {
			return ticket, nil
		}

		var claimErr *repository.SeatClaimError
		if errors.As(err, &claimErr) {
			if len(claimErr.Missing) > 0 {
				return nil, fmt.Errorf("seats %v not associated with show %d %w", claimErr.Missing, showID, ErrNotFound)
			}
			s.log.Info("Seats already booked",
				zap.Int64("show_id", showID),
				zap.Strings("seats", claimErr.Booked),
			)
			return nil, &SeatUnavailableError{ShowID: showID, SeatNumbers: claimErr.Booked}
		}

		// ErrDuplicate here is a ticket code collision, a fresh code fixes it
		if !errors.Is(err, repository.ErrRetryable) && !errors.Is(err, repository.ErrDuplicate) {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("show %d or user %d %w", showID, userID, ErrNotFound)
			}
			s.log.Error("Failed to book ticket", zap.Error(err), zap.Int64("show_id", showID))
			return nil, fmt.Errorf("book ticket: %w", err)
		}

		lastErr = err
		s.log.Warn("Booking attempt conflicted",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("show_id", showID),
		)

		if attempt < s.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("book ticket: %w", ctx.Err())
			case <-time.After(time.Duration(attempt) * bookingBackoff):
			}
		}
	}

	s.log.Warn("Booking retries exhausted", zap.Error(lastErr), zap.Int64("show_id", showID))
	return nil, &SeatUnavailableError{ShowID: showID, SeatNumbers: s.seatNumbers(ctx, seatIDs)}
}

func (s *ticketService) seatNumbers(ctx context.Context, seatIDs []int64) []string {
	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil
	}
	return lo.Map(seats, func(seat *entity.Seat, _ int) string { return seat.SeatNumber })
}

func (s *ticketService) GetUserTickets(ctx context.Context, principal utils.Principal, userID int64) ([]response.TicketResponse, error) {
	if !principal.IsAdmin() && principal.UserID != userID {
		s.log.Warn("Ticket access denied",
			zap.Int64("principal_id", principal.UserID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("tickets of user %d: %w", userID, ErrForbidden)
	}

	tickets, err := s.repo.Ticket.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list tickets", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	shows := make(map[int64]*entity.Show)
	result := make([]response.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		show, ok := shows[t.ShowID]
		if !ok {
			show, err = s.repo.Show.FindByID(ctx, t.ShowID)
			if err != nil {
				return nil, fmt.Errorf("find show of ticket %d: %w", t.ID, err)
			}
			shows[t.ShowID] = show
		}

		var movie *entity.Movie
		var theater *entity.Theater
		if show != nil {
			movie, theater = s.lookupShowDetails(ctx, show)
		}
		result = append(result, response.TicketToResponse(t, show, movie, theater))
	}

	return result, nil
}

// lookupShowDetails loads the movie and theater of a show; failures leave them nil.
func (s *ticketService) lookupShowDetails(ctx context.Context, show *entity.Show) (*entity.Movie, *entity.Theater) {
	movie, err := s.repo.Movie.FindByID(ctx, show.MovieID)
	if err != nil {
		s.log.Warn("Failed to load movie of show", zap.Error(err), zap.Int64("show_id", show.ID))
	}
	theater, err := s.repo.Theater.FindByID(ctx, show.TheaterID)
	if err != nil {
		s.log.Warn("Failed to load theater of show", zap.Error(err), zap.Int64("show_id", show.ID))
	}
	return movie, theater
}
