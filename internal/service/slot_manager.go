package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddSlot добавляет слот в лайнап. Если назначен артист, создаётся запрос на бронирование;
// при ошибке создания бронирования слот удаляется обратно.
func (s *EventService) AddSlot(ctx context.Context, eventID string, input SlotInput, actor model.Actor) (*model.Event, error) {
	var result *model.Event

	err := s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		slot, err := newSlot(input)
		if err != nil {
			return err
		}

		if slot.HasArtist() {
			if _, err = s.checkAssignableArtist(ctx, event, slot.ArtistID, -1); err != nil {
				return err
			}
			if err = s.budget.Validate(ctx, event, []string{slot.ArtistID}); err != nil {
				return err
			}
		}

		event.ArtistSlots = append(event.ArtistSlots, slot)
		if err = s.save(ctx, event); err != nil {
			return err
		}

		if slot.HasArtist() {
			booking, err := s.requestBooking(ctx, event, slot, actor)
			if err != nil {
				return s.rollbackAddedSlot(ctx, event, slot.ID, err)
			}
			s.markSlotSynced(ctx, event, slot.ID, booking)
		}

		s.logger.Info("Artist slot added",
			zap.String("event_id", event.ID),
			zap.String("slot_id", slot.ID),
			zap.String("role", string(slot.Role)),
			zap.String("artist_id", slot.ArtistID),
		)

		result = event
		return nil
	})

	return result, err
}

// AddSlots добавляет несколько слотов одной записью.
// В отличие от AddSlot бронирования для назначенных артистов не создаются.
func (s *EventService) AddSlots(ctx context.Context, eventID string, inputs []SlotInput, actor model.Actor) (*model.Event, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no artist slots provided", model.ErrBadRequest)
	}

	var result *model.Event

	err := s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		slots := make([]model.ArtistSlot, 0, len(inputs))
		var artistIDs []string
		seen := make(map[string]struct{}, len(inputs))

		for _, in := range inputs {
			slot, err := newSlot(in)
			if err != nil {
				return err
			}
			slots = append(slots, slot)

			if !slot.HasArtist() {
				continue
			}
			if _, dup := seen[slot.ArtistID]; dup {
				return fmt.Errorf("%w: duplicate artists found in the provided slots", model.ErrBadRequest)
			}
			seen[slot.ArtistID] = struct{}{}
			artistIDs = append(artistIDs, slot.ArtistID)
		}

		for _, id := range artistIDs {
			if event.SlotIndexByArtist(id) >= 0 {
				return fmt.Errorf("%w: artist %s is already assigned to this event", model.ErrBadRequest, id)
			}
		}

		for _, id := range artistIDs {
			if _, err = s.checkAssignableArtist(ctx, event, id, -1); err != nil {
				return err
			}
		}

		if err = s.budget.Validate(ctx, event, artistIDs); err != nil {
			return err
		}

		event.ArtistSlots = append(event.ArtistSlots, slots...)
		if err = s.save(ctx, event); err != nil {
			return err
		}

		s.logger.Info("Artist slots added",
			zap.String("event_id", event.ID),
			zap.Int("count", len(slots)),
		)

		result = event
		return nil
	})

	return result, err
}

// UpdateSlot меняет артиста и/или статус слота по позиции.
// Новый артист получает запрос на бронирование; при ошибке артист слота возвращается прежний.
func (s *EventService) UpdateSlot(ctx context.Context, eventID string, index int, update SlotUpdate, actor model.Actor) (*model.Event, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid slot status %q", model.ErrBadRequest, *update.Status)
	}

	var result *model.Event

	err := s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		if index < 0 || index >= len(event.ArtistSlots) {
			return fmt.Errorf("artist slot at index %d: %w", index, model.ErrSlotNotFound)
		}

		previous := event.ArtistSlots[index]
		slot := &event.ArtistSlots[index]
		changed := false

		if update.ArtistID != nil && *update.ArtistID != "" {
			artistID := *update.ArtistID
			if _, err = s.checkAssignableArtist(ctx, event, artistID, index); err != nil {
				return err
			}
			if err = s.budget.Validate(ctx, event, []string{artistID}, index); err != nil {
				return err
			}

			changed = artistID != previous.ArtistID
			slot.ArtistID = artistID
			if changed && update.Status == nil {
				slot.Status = model.SlotStatusPending
			}
		}

		if update.Status != nil {
			slot.Status = *update.Status
		}

		if err = s.save(ctx, event); err != nil {
			return err
		}

		if changed {
			booking, err := s.requestBooking(ctx, event, event.ArtistSlots[index], actor)
			if err != nil {
				return s.revertSlotArtist(ctx, event, previous, update.Status == nil, err)
			}
			s.markSlotSynced(ctx, event, previous.ID, booking)
		}

		result = event
		return nil
	})

	return result, err
}

// RemoveSlot удаляет слот; позиции следующих слотов сдвигаются на один
func (s *EventService) RemoveSlot(ctx context.Context, eventID string, index int, actor model.Actor) (*model.Event, error) {
	var result *model.Event

	err := s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		if !event.IsOwnedBy(actor) {
			return fmt.Errorf("%w: you can only update your own events", model.ErrForbidden)
		}

		if index < 0 || index >= len(event.ArtistSlots) {
			return fmt.Errorf("artist slot at index %d: %w", index, model.ErrSlotNotFound)
		}

		removed := event.ArtistSlots[index]
		event.ArtistSlots = append(event.ArtistSlots[:index], event.ArtistSlots[index+1:]...)
		if err = s.save(ctx, event); err != nil {
			return err
		}

		s.logger.Info("Artist slot removed",
			zap.String("event_id", event.ID),
			zap.String("slot_id", removed.ID),
			zap.Int("index", index),
		)

		result = event
		return nil
	})

	return result, err
}

// UpdateSlotStatusOnly меняет только статус слота по позиции. Вызывается не пользователем,
// поэтому авторизация и бюджет не проверяются.
func (s *EventService) UpdateSlotStatusOnly(ctx context.Context, eventID string, index int, status model.SlotStatus) (*model.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid slot status %q", model.ErrBadRequest, status)
	}

	return s.modifySlot(ctx, eventID, slotAt(index), func(slot *model.ArtistSlot) bool {
		slot.Status = status
		return true
	})
}

// UpdateSlotStatusByID - то же по стабильному ID слота, позиция определяется под блокировкой
func (s *EventService) UpdateSlotStatusByID(ctx context.Context, eventID, slotID string, status model.SlotStatus) (*model.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid slot status %q", model.ErrBadRequest, status)
	}

	return s.modifySlot(ctx, eventID, slotWithID(slotID), func(slot *model.ArtistSlot) bool {
		slot.Status = status
		return true
	})
}

// ApplyBookingToSlot переносит состояние бронирования на слот и запоминает его.
// Если слот уже учёл это состояние, ничего не пишет: статус, выставленный организатором позже, сохраняется.
// changed сообщает, изменился ли статус слота.
func (s *EventService) ApplyBookingToSlot(ctx context.Context, eventID, slotID string, booking *model.Booking) (changed bool, err error) {
	status := SlotStatusFor(booking.Status)

	_, err = s.modifySlot(ctx, eventID, slotWithID(slotID), func(slot *model.ArtistSlot) bool {
		if slot.Reflects(booking) {
			return false
		}
		changed = slot.Status != status
		slot.Status = status
		slot.MarkSynced(booking)
		return true
	})

	return changed, err
}

func slotAt(index int) func(event *model.Event) (int, error) {
	return func(event *model.Event) (int, error) {
		if index < 0 || index >= len(event.ArtistSlots) {
			return -1, fmt.Errorf("artist slot at index %d: %w", index, model.ErrSlotNotFound)
		}
		return index, nil
	}
}

func slotWithID(slotID string) func(event *model.Event) (int, error) {
	return func(event *model.Event) (int, error) {
		idx := event.SlotIndexByID(slotID)
		if idx < 0 {
			return -1, fmt.Errorf("artist slot %s: %w", slotID, model.ErrSlotNotFound)
		}
		return idx, nil
	}
}

// modifySlot применяет apply к слоту под блокировкой мероприятия.
// Если apply вернул false, запись не выполняется.
func (s *EventService) modifySlot(
	ctx context.Context,
	eventID string,
	locate func(event *model.Event) (int, error),
	apply func(slot *model.ArtistSlot) bool,
) (*model.Event, error) {
	var result *model.Event

	err := s.withEventLock(ctx, eventID, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}

		idx, err := locate(event)
		if err != nil {
			return err
		}

		if apply(&event.ArtistSlots[idx]) {
			if err = s.save(ctx, event); err != nil {
				return err
			}
		}

		result = event
		return nil
	})

	return result, err
}

// checkAssignableArtist проверяет, что артист существует, активен и ещё не занят в другом слоте
func (s *EventService) checkAssignableArtist(ctx context.Context, event *model.Event, artistID string, exceptIndex int) (*model.Artist, error) {
	artist, err := s.artists.FindByID(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("check artist: %w", err)
	}

	if !artist.IsActive() {
		return nil, fmt.Errorf("%w: artist %s is not active", model.ErrBadRequest, artistID)
	}

	for i, slot := range event.ArtistSlots {
		if i != exceptIndex && slot.ArtistID == artistID {
			return nil, fmt.Errorf("%w: artist %s is already assigned to this event", model.ErrBadRequest, artistID)
		}
	}

	return artist, nil
}

func (s *EventService) requestBooking(ctx context.Context, event *model.Event, slot model.ArtistSlot, actor model.Actor) (*model.Booking, error) {
	if s.bookings == nil {
		return nil, errors.New("booking creator is not configured")
	}

	booking, err := s.bookings.Create(ctx, CreateBookingInput{
		ArtistID: slot.ArtistID,
		EventID:  event.ID,
		Role:     slot.Role,
		Status:   model.BookingStatusRequested,
		Notes:    fmt.Sprintf("Booking request for %s role in event: %s", slot.Role, event.Title),
	}, actor)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return booking, nil
}

// markSlotSynced отмечает, что слот уже отражает только что созданное бронирование.
// Бронирование к этому моменту создано, поэтому ошибка записи только логируется.
func (s *EventService) markSlotSynced(ctx context.Context, event *model.Event, slotID string, booking *model.Booking) {
	idx := event.SlotIndexByID(slotID)
	if idx < 0 {
		return
	}

	event.ArtistSlots[idx].MarkSynced(booking)
	if err := s.save(ctx, event); err != nil {
		s.logger.Warn("Failed to mark slot as synced",
			zap.String("event_id", event.ID),
			zap.String("slot_id", slotID),
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
}

// rollbackAddedSlot убирает слот, для которого не удалось создать бронирование
func (s *EventService) rollbackAddedSlot(ctx context.Context, event *model.Event, slotID string, cause error) error {
	idx := event.SlotIndexByID(slotID)
	if idx < 0 {
		return cause
	}

	event.ArtistSlots = append(event.ArtistSlots[:idx], event.ArtistSlots[idx+1:]...)
	if err := s.save(ctx, event); err != nil {
		s.logger.Error("Failed to roll back artist slot",
			zap.String("event_id", event.ID),
			zap.String("slot_id", slotID),
			zap.Error(err))
		return errors.Join(cause, fmt.Errorf("roll back slot: %w", err))
	}

	s.logger.Warn("Artist slot rolled back",
		zap.String("event_id", event.ID),
		zap.String("slot_id", slotID),
		zap.Error(cause))

	return cause
}

// revertSlotArtist возвращает слоту прежнего артиста после неудачного бронирования
func (s *EventService) revertSlotArtist(ctx context.Context, event *model.Event, previous model.ArtistSlot, revertStatus bool, cause error) error {
	idx := event.SlotIndexByID(previous.ID)
	if idx < 0 {
		return cause
	}

	event.ArtistSlots[idx].ArtistID = previous.ArtistID
	if revertStatus {
		event.ArtistSlots[idx].Status = previous.Status
	}

	if err := s.save(ctx, event); err != nil {
		s.logger.Error("Failed to revert artist slot",
			zap.String("event_id", event.ID),
			zap.String("slot_id", previous.ID),
			zap.Error(err))
		return errors.Join(cause, fmt.Errorf("revert slot: %w", err))
	}

	return cause
}

func newSlot(in SlotInput) (model.ArtistSlot, error) {
	if !in.Role.Valid() {
		return model.ArtistSlot{}, fmt.Errorf("%w: invalid slot role %q", model.ErrBadRequest, in.Role)
	}

	status := in.Status
	if status == "" {
		status = model.SlotStatusUnfilled
		if in.ArtistID != "" {
			status = model.SlotStatusPending
		}
	}
	if !status.Valid() {
		return model.ArtistSlot{}, fmt.Errorf("%w: invalid slot status %q", model.ErrBadRequest, status)
	}

	return model.ArtistSlot{
		ID:       uuid.New().String(),
		Role:     in.Role,
		ArtistID: in.ArtistID,
		Status:   status,
	}, nil
}
