package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

// EventRepository хранит мероприятия в памяти процесса.
// Запись проверяет Version так же, как хранилища в базе.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*model.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*model.Event)}
}

func (r *EventRepository) Create(_ context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.ID]; ok {
		return fmt.Errorf("create event %s: already exists", event.ID)
	}
	event.Version = 1
	r.events[event.ID] = event.Clone()
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*model.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, model.ErrEventNotFound
	}
	return e.Clone(), nil
}

func (r *EventRepository) List(_ context.Context) ([]*model.Event, error) {
	return r.filter(func(*model.Event) bool { return true }), nil
}

func (r *EventRepository) ListByOrganizer(_ context.Context, organizerID string) ([]*model.Event, error) {
	return r.filter(func(e *model.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (r *EventRepository) Update(_ context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[event.ID]
	if !ok {
		return model.ErrEventNotFound
	}
	if stored.Version != event.Version {
		return fmt.Errorf("event %s: %w", event.ID, model.ErrStaleWrite)
	}

	event.Version++
	r.events[event.ID] = event.Clone()
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return model.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *EventRepository) filter(keep func(*model.Event) bool) []*model.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*model.Event, 0)
	for _, e := range r.events {
		if keep(e) {
			res = append(res, e.Clone())
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Date.Before(res[j].Date) })
	return res
}
