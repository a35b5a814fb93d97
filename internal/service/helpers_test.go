package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/lock"
	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	organizer = model.Actor{ID: "organizer-1", Role: model.RoleOrganizer}
	stranger  = model.Actor{ID: "organizer-2", Role: model.RoleOrganizer}
	admin     = model.Actor{ID: "admin-1", Role: model.RoleAdmin}
)

type fixture struct {
	artists  *memory.ArtistRepository
	events   *memory.EventRepository
	bookings *memory.BookingRepository

	budget     *BudgetValidator
	eventSvc   *EventService
	bookingSvc *BookingService
	syncer     *SlotSynchronizer
	notifier   *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := zap.NewNop()
	f := &fixture{
		artists:  memory.NewArtistRepository(),
		events:   memory.NewEventRepository(),
		bookings: memory.NewBookingRepository(),
		notifier: newRecordingNotifier(),
	}

	f.budget = NewBudgetValidator(f.artists, logger)
	f.eventSvc = NewEventService(f.events, f.artists, f.budget, lock.NewLocal(), logger)
	f.syncer = NewSlotSynchronizer(f.events, f.bookings, f.eventSvc, logger)
	f.bookingSvc = NewBookingService(f.bookings, f.events, f.artists, f.syncer, f.notifier, time.Second, logger)
	f.eventSvc.SetBookingCreator(f.bookingSvc)

	return f
}

// addArtist создаёт активного артиста со стоимостью rate*hours
func (f *fixture) addArtist(t *testing.T, name string, rate, hours float64) *model.Artist {
	t.Helper()
	return f.addPricedArtist(t, name, model.Pricing{HourlyRate: rate, MinimumHours: hours})
}

func (f *fixture) addPricedArtist(t *testing.T, name string, pricing model.Pricing) *model.Artist {
	t.Helper()

	now := time.Now().UTC()
	artist := &model.Artist{
		ID:        uuid.New().String(),
		UserID:    "user-" + name,
		Name:      name,
		Status:    model.ArtistStatusActive,
		Pricing:   pricing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.artists.Create(context.Background(), artist))
	return artist
}

func (f *fixture) createEvent(t *testing.T, budget float64, slots ...SlotInput) *model.Event {
	t.Helper()

	event, err := f.eventSvc.CreateEvent(context.Background(), CreateEventInput{
		Title:       "Summer Fest",
		Venue:       "Main stage",
		Date:        time.Now().Add(30 * 24 * time.Hour),
		Budget:      budget,
		ArtistSlots: slots,
	}, organizer)
	require.NoError(t, err)
	return event
}

func (f *fixture) reloadEvent(t *testing.T, id string) *model.Event {
	t.Helper()

	event, err := f.events.GetByID(context.Background(), id)
	require.NoError(t, err)
	return event
}

func (f *fixture) eventBookings(t *testing.T, eventID string) []*model.Booking {
	t.Helper()

	bookings, err := f.bookings.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	return bookings
}

func artistActor(a *model.Artist) model.Actor {
	return model.Actor{ID: a.UserID, Role: model.RoleArtist}
}

func timeRange(startHour, endHour int) (*time.Time, *time.Time) {
	base := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)
	start := base.Add(time.Duration(startHour) * time.Hour)
	end := base.Add(time.Duration(endHour) * time.Hour)
	return &start, &end
}

// recordingNotifier собирает уведомления, отправленные из фоновых горутин
type recordingNotifier struct {
	mu      sync.Mutex
	created []*model.Booking
	changed []*model.Booking
	signal  chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{signal: make(chan struct{}, 64)}
}

func (n *recordingNotifier) NotifyBookingCreated(_ context.Context, b *model.Booking) {
	n.mu.Lock()
	n.created = append(n.created, b)
	n.mu.Unlock()
	n.signal <- struct{}{}
}

func (n *recordingNotifier) NotifyBookingStatusChanged(_ context.Context, b *model.Booking) {
	n.mu.Lock()
	n.changed = append(n.changed, b)
	n.mu.Unlock()
	n.signal <- struct{}{}
}

func (n *recordingNotifier) wait(t *testing.T, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-n.signal:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for notification %d", i+1)
		}
	}
}

type failingBookingCreator struct{}

func (failingBookingCreator) Create(context.Context, CreateBookingInput, model.Actor) (*model.Booking, error) {
	return nil, errors.New("booking store unavailable")
}
