package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brianstm/kevii-gym-booking-app/internal/notifications"
	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
)

type fakeRepo struct {
	bookings   []Booking
	hasBooking bool
	createErr  error
	created    *Booking
}

func (r *fakeRepo) ListBetween(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return r.bookings, nil
}

func (r *fakeRepo) UserHasBookingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (bool, error) {
	return r.hasBooking, nil
}

func (r *fakeRepo) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	return r.bookings, nil
}

func (r *fakeRepo) CreateWithCapacityCheck(ctx context.Context, booking *Booking, maxPerSlot int, slotInterval time.Duration) error {
	if r.createErr != nil {
		return r.createErr
	}
	booking.ID = uuid.New()
	r.created = booking
	return nil
}

type fakeProducer struct {
	events []notifications.BookingConfirmedEvent
}

func (p *fakeProducer) PublishBookingConfirmed(ctx context.Context, event notifications.BookingConfirmedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Booking: config.BookingConfig{
			MaxDailyBooking: 5,
			StartTime:       "06:00",
			EndTime:         "23:00",
			SlotInterval:    30 * time.Minute,
			Durations:       []float64{0.5, 1, 1.5, 2, 2.5, 3},
		},
		Redis: config.RedisConfig{WeekCountTTL: time.Minute},
	}
}

func newTestService(t *testing.T, repo Repository, producer notifications.Producer) Service {
	t.Helper()
	svc, err := NewService(repo, nil, producer, testConfig())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func mustBooking(t *testing.T, startsAt string, hours float64) Booking {
	t.Helper()
	instant, err := time.Parse("2006-01-02T15:04:05", startsAt)
	if err != nil {
		t.Fatalf("bad test instant %q: %v", startsAt, err)
	}
	return Booking{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		StartsAt:      instant.UTC(),
		DurationHours: hours,
		Status:        StatusConfirmed,
	}
}

func TestWeekCount_CountsOverlaps(t *testing.T) {
	repo := &fakeRepo{bookings: []Booking{
		// Two hours from 18:00 covers four half-hour slots.
		mustBooking(t, "2024-06-03T18:00:00", 2),
		mustBooking(t, "2024-06-03T18:30:00", 0.5),
	}}
	svc := newTestService(t, repo, nil)

	ref := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	matrix, err := svc.WeekCount(context.Background(), ref, "", "")
	if err != nil {
		t.Fatalf("WeekCount failed: %v", err)
	}

	dates := matrix.Dates()
	if len(dates) != 7 || dates[0] != "2024-06-03" || dates[6] != "2024-06-09" {
		t.Fatalf("dates = %v, want the full ISO week", dates)
	}
	if times := matrix.TimesFor("2024-06-03"); len(times) != 35 {
		t.Fatalf("expected 35 slots per day, got %d", len(times))
	}

	cases := []struct {
		timeStr string
		want    int
	}{
		{"17:30", 0},
		{"18:00", 1},
		{"18:30", 2}, // both bookings cover this slot
		{"19:00", 1},
		{"19:30", 1},
		{"20:00", 0}, // the 2 hour booking ends here
	}
	for _, tc := range cases {
		got, err := matrix.CountAt("2024-06-03", tc.timeStr)
		if err != nil {
			t.Fatalf("CountAt(%s) failed: %v", tc.timeStr, err)
		}
		if got != tc.want {
			t.Errorf("count at %s = %d, want %d", tc.timeStr, got, tc.want)
		}
	}
}

func TestWeekCount_CustomWindow(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, nil)

	ref := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	matrix, err := svc.WeekCount(context.Background(), ref, "08:00", "10:00")
	if err != nil {
		t.Fatalf("WeekCount failed: %v", err)
	}
	times := matrix.TimesFor("2024-06-03")
	if len(times) != 5 || times[0] != "08:00" || times[4] != "10:00" {
		t.Errorf("custom window slots = %v, want 08:00..10:00", times)
	}
}

func TestCreateBooking_Succeeds(t *testing.T) {
	repo := &fakeRepo{}
	producer := &fakeProducer{}
	svc := newTestService(t, repo, producer)

	userID := uuid.New()
	booking, err := svc.CreateBooking(context.Background(), userID, CreateBookingRequest{
		Date:     "2024-06-03T22:30:00",
		Duration: 0.5,
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	if repo.created == nil {
		t.Fatal("booking never reached the repository")
	}
	if booking.StartsAt.Format("15:04") != "22:30" {
		t.Errorf("starts at %v, want 22:30", booking.StartsAt)
	}
	if booking.Status != StatusConfirmed {
		t.Errorf("status = %q, want CONFIRMED", booking.Status)
	}
	if len(producer.events) != 1 {
		t.Fatalf("expected one confirmation event, got %d", len(producer.events))
	}
	if producer.events[0].UserID != userID.String() {
		t.Errorf("event user = %q, want %q", producer.events[0].UserID, userID)
	}
}

func TestCreateBooking_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     CreateBookingRequest
		repo    *fakeRepo
		wantErr error
	}{
		{
			name:    "garbage instant",
			req:     CreateBookingRequest{Date: "tomorrow at 6", Duration: 1},
			repo:    &fakeRepo{},
			wantErr: ErrBadInstant,
		},
		{
			name:    "off-grid time",
			req:     CreateBookingRequest{Date: "2024-06-03T05:30:00", Duration: 1},
			repo:    &fakeRepo{},
			wantErr: ErrOffGrid,
		},
		{
			name:    "off-interval time",
			req:     CreateBookingRequest{Date: "2024-06-03T06:15:00", Duration: 1},
			repo:    &fakeRepo{},
			wantErr: ErrOffGrid,
		},
		{
			name:    "duration overruns closing",
			req:     CreateBookingRequest{Date: "2024-06-03T22:30:00", Duration: 1},
			repo:    &fakeRepo{},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "duration not in catalog",
			req:     CreateBookingRequest{Date: "2024-06-03T06:00:00", Duration: 0.75},
			repo:    &fakeRepo{},
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "daily limit",
			req:     CreateBookingRequest{Date: "2024-06-03T06:00:00", Duration: 1},
			repo:    &fakeRepo{hasBooking: true},
			wantErr: ErrDailyLimit,
		},
		{
			name:    "slot full",
			req:     CreateBookingRequest{Date: "2024-06-03T06:00:00", Duration: 1},
			repo:    &fakeRepo{createErr: ErrSlotFull},
			wantErr: ErrSlotFull,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			producer := &fakeProducer{}
			svc := newTestService(t, tc.repo, producer)

			_, err := svc.CreateBooking(context.Background(), uuid.New(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if len(producer.events) != 0 {
				t.Error("rejected booking must not publish a confirmation")
			}
		})
	}
}
