package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"go.uber.org/zap"
)

// slotStatusUpdater переносит состояние бронирования на слот, без авторизации и проверки бюджета
type slotStatusUpdater interface {
	ApplyBookingToSlot(ctx context.Context, eventID, slotID string, booking *model.Booking) (bool, error)
}

// SlotSynchronizer отражает статус бронирования на слоте мероприятия
type SlotSynchronizer struct {
	eventRepo   EventRepository
	bookingRepo BookingRepository
	slots       slotStatusUpdater
	logger      *zap.Logger
}

func NewSlotSynchronizer(
	eventRepo EventRepository,
	bookingRepo BookingRepository,
	slots slotStatusUpdater,
	logger *zap.Logger,
) *SlotSynchronizer {
	return &SlotSynchronizer{
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		slots:       slots,
		logger:      logger,
	}
}

// SyncBooking находит слот артиста бронирования и выставляет ему соответствующий статус.
// Если слота нет (его могли удалить), ничего не делает.
func (s *SlotSynchronizer) SyncBooking(ctx context.Context, booking *model.Booking) error {
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	idx := event.SlotIndexByArtist(booking.ArtistID)
	if idx < 0 {
		return nil
	}

	slot := event.ArtistSlots[idx]
	if slot.Reflects(booking) {
		return nil
	}

	if _, err = s.slots.ApplyBookingToSlot(ctx, event.ID, slot.ID, booking); err != nil {
		// слот удалили между чтением и записью
		if errors.Is(err, model.ErrSlotNotFound) {
			return nil
		}
		return fmt.Errorf("update slot status: %w", err)
	}

	s.logger.Debug("Slot status synced",
		zap.String("event_id", event.ID),
		zap.String("slot_id", slot.ID),
		zap.String("booking_id", booking.ID),
		zap.String("slot_status", string(SlotStatusFor(booking.Status))))

	return nil
}

// Reconcile переносит на слоты изменения бронирований, которые слоты ещё не учли
// (например, после сбоя синхронизации). Статусы, выставленные организатором вручную, не трогаются.
// Возвращает число слотов, у которых изменился статус.
func (s *SlotSynchronizer) Reconcile(ctx context.Context) (int, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}

	fixed := 0
	for _, event := range events {
		if ctx.Err() != nil {
			return fixed, ctx.Err()
		}

		n, err := s.reconcileEvent(ctx, event)
		if err != nil {
			s.logger.Warn("Failed to reconcile event slots",
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
		fixed += n
	}

	return fixed, nil
}

func (s *SlotSynchronizer) reconcileEvent(ctx context.Context, event *model.Event) (int, error) {
	bookings, err := s.bookingRepo.ListByEvent(ctx, event.ID)
	if err != nil {
		return 0, fmt.Errorf("list event bookings: %w", err)
	}

	// последнее изменённое бронирование по каждому артисту
	latest := make(map[string]*model.Booking, len(bookings))
	for _, b := range bookings {
		if cur, ok := latest[b.ArtistID]; !ok || b.UpdatedAt.After(cur.UpdatedAt) {
			latest[b.ArtistID] = b
		}
	}

	fixed := 0
	for _, slot := range event.ArtistSlots {
		if !slot.HasArtist() {
			continue
		}
		b, ok := latest[slot.ArtistID]
		if !ok {
			continue
		}

		if slot.Reflects(b) {
			continue
		}

		changed, err := s.slots.ApplyBookingToSlot(ctx, event.ID, slot.ID, b)
		if err != nil {
			if errors.Is(err, model.ErrSlotNotFound) {
				continue
			}
			return fixed, fmt.Errorf("update slot %s: %w", slot.ID, err)
		}
		if changed {
			fixed++
		}
	}

	return fixed, nil
}
