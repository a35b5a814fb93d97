package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// eventLocker сериализует изменения одного мероприятия
type eventLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// bookingCreator создаёт бронирование при назначении артиста на слот
type bookingCreator interface {
	Create(ctx context.Context, input CreateBookingInput, actor model.Actor) (*model.Booking, error)
}

type SlotInput struct {
	Role     model.SlotRole
	ArtistID string
	Status   model.SlotStatus
}

type SlotUpdate struct {
	ArtistID *string
	Status   *model.SlotStatus
}

type CreateEventInput struct {
	Title        string
	Venue        string
	Description  string
	Requirements string
	Date         time.Time
	Budget       float64
	Status       model.EventStatus
	ArtistSlots  []SlotInput
}

type UpdateEventInput struct {
	Title        *string
	Venue        *string
	Description  *string
	Requirements *string
	Date         *time.Time
	Budget       *float64
}

type EventService struct {
	eventRepo EventRepository
	artists   ArtistRegistry
	budget    *BudgetValidator
	bookings  bookingCreator
	locker    eventLocker
	logger    *zap.Logger
}

func NewEventService(
	eventRepo EventRepository,
	artists ArtistRegistry,
	budget *BudgetValidator,
	locker eventLocker,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		artists:   artists,
		budget:    budget,
		locker:    locker,
		logger:    logger,
	}
}

// SetBookingCreator подключает создание бронирований.
// BookingService сам зависит от EventService через синхронизатор, поэтому связываем после создания.
func (s *EventService) SetBookingCreator(bookings bookingCreator) {
	s.bookings = bookings
}

// CreateEvent создаёт мероприятие. Артисты из начальных слотов проверяются по одному,
// бронирования для них не создаются.
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput, actor model.Actor) (*model.Event, error) {
	if actor.Role != model.RoleOrganizer && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only organizers can create events", model.ErrForbidden)
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrBadRequest)
	}
	if !input.Date.After(time.Now()) {
		return nil, fmt.Errorf("%w: event date must be in the future", model.ErrBadRequest)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must not be negative", model.ErrBadRequest)
	}

	status := input.Status
	if status == "" {
		status = model.EventStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid event status %q", model.ErrBadRequest, status)
	}

	now := time.Now().UTC()
	event := &model.Event{
		ID:           uuid.New().String(),
		OrganizerID:  actor.ID,
		Title:        input.Title,
		Venue:        input.Venue,
		Description:  input.Description,
		Requirements: input.Requirements,
		Date:         input.Date,
		Budget:       input.Budget,
		ArtistSlots:  []model.ArtistSlot{},
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for _, in := range input.ArtistSlots {
		slot, err := newSlot(in)
		if err != nil {
			return nil, err
		}

		if slot.HasArtist() {
			if _, err = s.checkAssignableArtist(ctx, event, slot.ArtistID, -1); err != nil {
				return nil, err
			}
			if err = s.budget.Validate(ctx, event, []string{slot.ArtistID}); err != nil {
				return nil, err
			}
		}

		event.ArtistSlots = append(event.ArtistSlots, slot)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("Event created",
		zap.String("event_id", event.ID),
		zap.String("organizer_id", event.OrganizerID),
		zap.Float64("budget", event.Budget),
		zap.Int("slots", len(event.ArtistSlots)),
	)

	return event, nil
}

// GetEvent получает мероприятие по ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.List(ctx)
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error) {
	return s.eventRepo.ListByOrganizer(ctx, organizerID)
}

// ResolveSlots загружает артистов слотов. Не найденные остаются неразрешёнными ссылками.
func (s *EventService) ResolveSlots(ctx context.Context, event *model.Event) ([]model.ResolvedSlot, error) {
	res := make([]model.ResolvedSlot, 0, len(event.ArtistSlots))

	for i, slot := range event.ArtistSlots {
		rs := model.ResolvedSlot{
			Index:  i,
			ID:     slot.ID,
			Role:   slot.Role,
			Status: slot.Status,
		}

		if slot.HasArtist() {
			artist, err := s.artists.FindByID(ctx, slot.ArtistID)
			switch {
			case err == nil:
				rs.Artist = model.Resolved(artist)
			case errors.Is(err, model.ErrNotFound):
				rs.Artist = model.Unresolved(slot.ArtistID)
			default:
				return nil, fmt.Errorf("resolve artist %s: %w", slot.ArtistID, err)
			}
		}

		res = append(res, rs)
	}

	return res, nil
}

// UpdateEvent обновляет поля мероприятия. Уменьшенный бюджет должен покрывать назначенных артистов.
func (s *EventService) UpdateEvent(ctx context.Context, id string, input UpdateEventInput, actor model.Actor) (*model.Event, error) {
	var result *model.Event

	err := s.withEventLock(ctx, id, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		if input.Date != nil && !input.Date.After(time.Now()) {
			return fmt.Errorf("%w: event date must be in the future", model.ErrBadRequest)
		}

		if input.Budget != nil {
			if *input.Budget < 0 {
				return fmt.Errorf("%w: budget must not be negative", model.ErrBadRequest)
			}
			if *input.Budget < event.Budget {
				probe := event.Clone()
				probe.Budget = *input.Budget
				if err = s.budget.Validate(ctx, probe, nil); err != nil {
					return fmt.Errorf("cannot reduce budget: %w", err)
				}
			}
			event.Budget = *input.Budget
		}

		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return fmt.Errorf("%w: title is required", model.ErrBadRequest)
			}
			event.Title = *input.Title
		}
		if input.Venue != nil {
			event.Venue = *input.Venue
		}
		if input.Description != nil {
			event.Description = *input.Description
		}
		if input.Requirements != nil {
			event.Requirements = *input.Requirements
		}
		if input.Date != nil {
			event.Date = *input.Date
		}

		if err = s.save(ctx, event); err != nil {
			return err
		}

		result = event
		return nil
	})

	return result, err
}

// UpdateEventStatus меняет статус мероприятия
func (s *EventService) UpdateEventStatus(ctx context.Context, id string, status model.EventStatus, actor model.Actor) (*model.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid event status %q", model.ErrBadRequest, status)
	}

	var result *model.Event

	err := s.withEventLock(ctx, id, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		event.Status = status
		if err = s.save(ctx, event); err != nil {
			return err
		}

		result = event
		return nil
	})

	return result, err
}

// RemoveEvent удаляет мероприятие. Опубликованное мероприятие организатор может только отменить.
func (s *EventService) RemoveEvent(ctx context.Context, id string, actor model.Actor) (*model.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	if !event.IsOwnedBy(actor) {
		return nil, fmt.Errorf("%w: you can only delete your own events", model.ErrForbidden)
	}

	if !actor.IsAdmin() && event.Status == model.EventStatusPublished {
		return s.UpdateEventStatus(ctx, id, model.EventStatusCancelled, actor)
	}

	err = s.withEventLock(ctx, id, func(ctx context.Context) error {
		return s.eventRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.logger.Info("Event deleted",
		zap.String("event_id", id),
		zap.String("deleted_by", actor.ID),
	)

	return event, nil
}

func (s *EventService) withEventLock(ctx context.Context, eventID string, fn func(ctx context.Context) error) error {
	unlock, err := s.locker.Lock(ctx, "event:"+eventID)
	if err != nil {
		return fmt.Errorf("lock event %s: %w", eventID, err)
	}
	defer unlock()

	return fn(ctx)
}

func (s *EventService) save(ctx context.Context, event *model.Event) error {
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}
