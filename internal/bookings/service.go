package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brianstm/kevii-gym-booking-app/internal/availability"
	"github.com/brianstm/kevii-gym-booking-app/internal/durations"
	"github.com/brianstm/kevii-gym-booking-app/internal/notifications"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/internal/timegrid"
	"github.com/brianstm/kevii-gym-booking-app/pkg/cache"
	"github.com/brianstm/kevii-gym-booking-app/pkg/logger"
)

var (
	ErrSlotFull        = errors.New("slot is already fully booked")
	ErrOffGrid         = errors.New("slot is not on the booking grid")
	ErrInvalidDuration = errors.New("duration is not available for this slot")
	ErrDailyLimit      = errors.New("user already has a booking on this day")
	ErrBadInstant      = errors.New("invalid booking date")
)

const weekCountCacheKey = "keviigym:bookings:week_count:" // + monday date

// Service interface defines the contract for booking business logic
type Service interface {
	WeekCount(ctx context.Context, ref time.Time, startTime, endTime string) (*availability.Matrix, error)
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
}

type service struct {
	repo     Repository
	cache    cache.Service           // optional
	producer notifications.Producer  // optional
	rules    config.BookingConfig
	grid     *timegrid.Grid
	ttl      time.Duration
	logger   *logger.Logger
}

// NewService creates a new booking service instance. cacheSvc and producer
// may be nil; the service then skips caching and notifications.
func NewService(repo Repository, cacheSvc cache.Service, producer notifications.Producer, cfg *config.Config) (Service, error) {
	grid, err := timegrid.New(cfg.Booking.StartTime, cfg.Booking.EndTime, cfg.Booking.SlotInterval)
	if err != nil {
		return nil, fmt.Errorf("booking grid: %w", err)
	}
	return &service{
		repo:     repo,
		cache:    cacheSvc,
		producer: producer,
		rules:    cfg.Booking,
		grid:     grid,
		ttl:      cfg.Redis.WeekCountTTL,
		logger:   logger.GetDefault(),
	}, nil
}

// WeekCount builds the occupancy snapshot for the ISO week containing ref:
// for every date of the week and every grid slot, the number of confirmed
// bookings overlapping that slot. startTime/endTime narrow the grid window
// when non-empty; the default window is served from cache.
func (s *service) WeekCount(ctx context.Context, ref time.Time, startTime, endTime string) (*availability.Matrix, error) {
	grid := s.grid
	custom := startTime != "" && endTime != "" && (startTime != s.rules.StartTime || endTime != s.rules.EndTime)
	if custom {
		g, err := timegrid.New(startTime, endTime, s.rules.SlotInterval)
		if err != nil {
			return nil, err
		}
		grid = g
	}

	monday := timegrid.StartOfISOWeek(ref.UTC())

	if s.cache != nil && !custom {
		matrix := availability.NewMatrix()
		key := weekCountCacheKey + monday.Format(timegrid.DateLayout)
		err := s.cache.GetOrSet(ctx, key, s.ttl, func() (interface{}, error) {
			return s.buildWeekCount(ctx, monday, grid)
		}, matrix)
		if err == nil {
			return matrix, nil
		}
		// Cache trouble must not take the endpoint down.
		s.logger.WithError(err).Warn("week-count cache unavailable, serving from database")
	}

	return s.buildWeekCount(ctx, monday, grid)
}

func (s *service) buildWeekCount(ctx context.Context, monday time.Time, grid *timegrid.Grid) (*availability.Matrix, error) {
	from := monday
	to := monday.AddDate(0, 0, 7)

	booked, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	slots := grid.Slots()
	matrix := availability.NewMatrix()
	for day := 0; day < 7; day++ {
		date := monday.AddDate(0, 0, day)
		dateStr := date.Format(timegrid.DateLayout)
		for _, slot := range slots {
			t, err := time.Parse(timegrid.TimeLayout, slot)
			if err != nil {
				return nil, err
			}
			instant := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)

			count := 0
			for i := range booked {
				if booked[i].Covers(instant) {
					count++
				}
			}
			matrix.Set(dateStr, slot, count)
		}
	}
	return matrix, nil
}

// CreateBooking validates the write against the grid, the duration catalog,
// the per-user daily cap and the per-slot ceiling, then inserts it inside a
// capacity-checked transaction. On success the cached week snapshot is
// invalidated and a confirmation event is published.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*Booking, error) {
	startsAt, err := timegrid.ParseCombined(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadInstant, req.Date)
	}
	startsAt = startsAt.UTC()

	timeOfDay := startsAt.Format(timegrid.TimeLayout)
	if !s.grid.Contains(timeOfDay) {
		return nil, fmt.Errorf("%w: %s", ErrOffGrid, timeOfDay)
	}

	ok, err := durations.Allowed(req.Duration, timeOfDay, s.rules.EndTime, s.rules.Durations)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %g hours at %s", ErrInvalidDuration, req.Duration, timeOfDay)
	}

	dayStart := time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, time.UTC)
	hasBooking, err := s.repo.UserHasBookingBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if hasBooking {
		return nil, ErrDailyLimit
	}

	booking := &Booking{
		UserID:        userID,
		StartsAt:      startsAt,
		DurationHours: req.Duration,
		Status:        StatusConfirmed,
	}

	if err := s.repo.CreateWithCapacityCheck(ctx, booking, s.rules.MaxDailyBooking, s.rules.SlotInterval); err != nil {
		return nil, err
	}

	s.invalidateWeek(ctx, startsAt)
	s.publishConfirmation(ctx, booking)
	s.logger.LogBookingCreated(ctx, booking.ID.String(), userID.String(), booking.StartsAt, booking.DurationHours)

	return booking, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.GetUserBookings(ctx, userID, limit, offset)
}

func (s *service) invalidateWeek(ctx context.Context, startsAt time.Time) {
	if s.cache == nil {
		return
	}
	key := weekCountCacheKey + timegrid.StartOfISOWeek(startsAt).Format(timegrid.DateLayout)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.WithError(err).Warn("failed to invalidate week-count cache")
	}
}

func (s *service) publishConfirmation(ctx context.Context, booking *Booking) {
	if s.producer == nil {
		return
	}
	event := notifications.BookingConfirmedEvent{
		BookingID:     booking.ID.String(),
		UserID:        booking.UserID.String(),
		StartsAt:      booking.StartsAt,
		DurationHours: booking.DurationHours,
		CreatedAt:     booking.CreatedAt,
	}
	if err := s.producer.PublishBookingConfirmed(ctx, event); err != nil {
		// Notification delivery is best effort; the booking stands.
		s.logger.WithError(err).Warn("failed to publish booking confirmation")
	}
}
