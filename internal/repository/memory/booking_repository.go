package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]*model.Booking)}
}

func (r *BookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; ok {
		return fmt.Errorf("create booking %s: already exists", booking.ID)
	}
	booking.Version = 1
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, model.ErrBookingNotFound
	}
	return b.Clone(), nil
}

func (r *BookingRepository) List(_ context.Context) ([]*model.Booking, error) {
	return r.filter(func(*model.Booking) bool { return true }), nil
}

func (r *BookingRepository) ListByArtist(_ context.Context, artistID string) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool { return b.ArtistID == artistID }), nil
}

func (r *BookingRepository) ListByOrganizer(_ context.Context, organizerID string) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool { return b.OrganizerID == organizerID }), nil
}

func (r *BookingRepository) ListByEvent(_ context.Context, eventID string) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool { return b.EventID == eventID }), nil
}

func (r *BookingRepository) ListActiveByArtist(_ context.Context, artistID string) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool {
		return b.ArtistID == artistID && b.Status.IsActive()
	}), nil
}

func (r *BookingRepository) Update(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.bookings[booking.ID]
	if !ok {
		return model.ErrBookingNotFound
	}
	if stored.Version != booking.Version {
		return fmt.Errorf("booking %s: %w", booking.ID, model.ErrStaleWrite)
	}

	booking.Version++
	r.bookings[booking.ID] = booking.Clone()
	return nil
}

func (r *BookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return model.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *BookingRepository) filter(keep func(*model.Booking) bool) []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*model.Booking, 0)
	for _, b := range r.bookings {
		if keep(b) {
			res = append(res, b.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}
