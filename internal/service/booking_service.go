package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultSyncTimeout   = 5 * time.Second
	defaultNotifyTimeout = 10 * time.Second
)

// slotSyncer переносит статус бронирования на слот мероприятия
type slotSyncer interface {
	SyncBooking(ctx context.Context, booking *model.Booking) error
}

type CreateBookingInput struct {
	ArtistID  string
	EventID   string
	Role      model.SlotRole
	StartTime *time.Time
	EndTime   *time.Time
	Payment   *model.Payment
	Notes     string
	Status    model.BookingStatus // пусто - requested
}

type UpdateStatusInput struct {
	Status model.BookingStatus
	Notes  string
}

type UpdateBookingInput struct {
	StartTime *time.Time
	EndTime   *time.Time
	Payment   *model.Payment
	Notes     *string
}

type BookingService struct {
	bookingRepo   BookingRepository
	eventRepo     EventRepository
	artists       ArtistRegistry
	syncer        slotSyncer
	notifier      BookingNotifier
	syncTimeout   time.Duration
	notifyTimeout time.Duration
	syncFailures  atomic.Int64
	logger        *zap.Logger
}

func NewBookingService(
	bookingRepo BookingRepository,
	eventRepo EventRepository,
	artists ArtistRegistry,
	syncer slotSyncer,
	notifier BookingNotifier,
	syncTimeout time.Duration,
	logger *zap.Logger,
) *BookingService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if syncTimeout <= 0 {
		syncTimeout = defaultSyncTimeout
	}

	return &BookingService{
		bookingRepo:   bookingRepo,
		eventRepo:     eventRepo,
		artists:       artists,
		syncer:        syncer,
		notifier:      notifier,
		syncTimeout:   syncTimeout,
		notifyTimeout: defaultNotifyTimeout,
		logger:        logger,
	}
}

// Create создаёт бронирование артиста на мероприятие
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput, actor model.Actor) (*model.Booking, error) {
	artist, err := s.artists.FindByID(ctx, input.ArtistID)
	if err != nil {
		return nil, fmt.Errorf("check artist: %w", err)
	}

	if !artist.IsActive() {
		return nil, fmt.Errorf("%w: artist %s is not active", model.ErrBadRequest, artist.ID)
	}

	event, err := s.eventRepo.GetByID(ctx, input.EventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}

	if !event.IsOwnedBy(actor) {
		return nil, fmt.Errorf("%w: you can only create bookings for your own events", model.ErrForbidden)
	}

	status := input.Status
	if status == "" {
		status = model.BookingStatusRequested
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid booking status %q", model.ErrBadRequest, status)
	}

	if input.Role != "" && !input.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid slot role %q", model.ErrBadRequest, input.Role)
	}

	if err = s.checkDateConflicts(ctx, artist.ID, input.StartTime, input.EndTime, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &model.Booking{
		ID:          uuid.New().String(),
		ArtistID:    artist.ID,
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		Role:        input.Role,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Payment:     input.Payment,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	booking.RecordStatus(status, actor.ID, now)

	if err = s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("artist_id", booking.ArtistID),
		zap.String("event_id", booking.EventID),
		zap.String("status", string(booking.Status)),
	)

	s.notify(ctx, booking, s.notifier.NotifyBookingCreated)

	return booking, nil
}

// GetByID получает бронирование по ID
func (s *BookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]*model.Booking, error) {
	return s.bookingRepo.List(ctx)
}

func (s *BookingService) ListByArtist(ctx context.Context, artistID string) ([]*model.Booking, error) {
	return s.bookingRepo.ListByArtist(ctx, artistID)
}

func (s *BookingService) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Booking, error) {
	return s.bookingRepo.ListByOrganizer(ctx, organizerID)
}

// ListMine возвращает бронирования артиста или организатора, от имени которого пришёл запрос
func (s *BookingService) ListMine(ctx context.Context, actor model.Actor) ([]*model.Booking, error) {
	if actor.Role == model.RoleArtist {
		artist, err := s.artists.FindByUserID(ctx, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("find artist profile: %w", err)
		}
		return s.bookingRepo.ListByArtist(ctx, artist.ID)
	}

	return s.bookingRepo.ListByOrganizer(ctx, actor.ID)
}

// UpdateStatus переводит бронирование в новый статус и синхронизирует слот мероприятия
func (s *BookingService) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput, actor model.Actor) (*model.Booking, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid booking status %q", model.ErrBadRequest, input.Status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	isOrganizer, isArtist, err := s.participants(ctx, booking, actor)
	if err != nil {
		return nil, err
	}

	if err = authorizeStatusChange(input.Status, actor, isOrganizer, isArtist); err != nil {
		return nil, err
	}

	if err = validateTransition(booking.Status, input.Status, actor); err != nil {
		return nil, err
	}

	previous := booking.Status
	now := time.Now().UTC()
	booking.RecordStatus(input.Status, actor.ID, now)
	booking.UpdatedAt = now

	if input.Notes != "" {
		if booking.Notes == "" {
			booking.Notes = input.Notes
		} else {
			booking.Notes += "\n" + input.Notes
		}
	}

	if input.Status == model.BookingStatusPaid && booking.Payment != nil {
		paidAt := now
		booking.Payment.IsPaid = true
		booking.Payment.PaidDate = &paidAt
	}

	if err = s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.logger.Info("Booking status changed",
		zap.String("booking_id", booking.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(booking.Status)),
		zap.String("changed_by", actor.ID),
	)

	s.syncSlot(ctx, booking)

	s.notify(ctx, booking, s.notifier.NotifyBookingStatusChanged)

	return booking, nil
}

// Update меняет время, оплату и заметки бронирования
func (s *BookingService) Update(ctx context.Context, id string, input UpdateBookingInput, actor model.Actor) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if !actor.IsAdmin() {
		isOrganizer, isArtist, err := s.participants(ctx, booking, actor)
		if err != nil {
			return nil, err
		}
		if !isOrganizer && !isArtist {
			return nil, fmt.Errorf("%w: you can only update your own bookings", model.ErrForbidden)
		}
		if booking.Status == model.BookingStatusCompleted || booking.Status == model.BookingStatusCancelled {
			return nil, fmt.Errorf("%w: cannot update completed or cancelled bookings", model.ErrForbidden)
		}
	}

	if input.StartTime != nil || input.EndTime != nil {
		start, end := booking.StartTime, booking.EndTime
		if input.StartTime != nil {
			start = input.StartTime
		}
		if input.EndTime != nil {
			end = input.EndTime
		}

		if err = s.checkDateConflicts(ctx, booking.ArtistID, start, end, booking.ID); err != nil {
			return nil, err
		}

		booking.StartTime, booking.EndTime = start, end
	}

	if input.Payment != nil {
		booking.Payment = input.Payment
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}
	booking.UpdatedAt = time.Now().UTC()

	if err = s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	return booking, nil
}

// Remove удаляет бронирование. Участники могут удалить только ещё не принятое
// бронирование, иначе оно отменяется через смену статуса.
func (s *BookingService) Remove(ctx context.Context, id string, actor model.Actor) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if !actor.IsAdmin() {
		isOrganizer, isArtist, err := s.participants(ctx, booking, actor)
		if err != nil {
			return nil, err
		}
		if !isOrganizer && !isArtist {
			return nil, fmt.Errorf("%w: you can only cancel your own bookings", model.ErrForbidden)
		}

		if booking.Status != model.BookingStatusRequested && booking.Status != model.BookingStatusInReview {
			return s.UpdateStatus(ctx, id, UpdateStatusInput{Status: model.BookingStatusCancelled}, actor)
		}
	}

	if err = s.bookingRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking deleted",
		zap.String("booking_id", id),
		zap.String("deleted_by", actor.ID),
	)

	return booking, nil
}

// SyncFailures - сколько раз синхронизация слота завершилась ошибкой
func (s *BookingService) SyncFailures() int64 {
	return s.syncFailures.Load()
}

// participants определяет, является ли пользователь организатором или артистом бронирования
func (s *BookingService) participants(ctx context.Context, booking *model.Booking, actor model.Actor) (isOrganizer, isArtist bool, err error) {
	if actor.IsAdmin() {
		return false, false, nil
	}

	isOrganizer = booking.OrganizerID == actor.ID

	artist, err := s.artists.FindByID(ctx, booking.ArtistID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return isOrganizer, false, nil
		}
		return false, false, fmt.Errorf("get booking artist: %w", err)
	}

	return isOrganizer, artist.UserID == actor.ID, nil
}

// checkDateConflicts ищет пересекающиеся [start, end) активные бронирования артиста
func (s *BookingService) checkDateConflicts(ctx context.Context, artistID string, start, end *time.Time, excludeID string) error {
	if start == nil || end == nil {
		return nil
	}

	if !start.Before(*end) {
		return fmt.Errorf("%w: start time must be before end time", model.ErrBadRequest)
	}

	active, err := s.bookingRepo.ListActiveByArtist(ctx, artistID)
	if err != nil {
		return fmt.Errorf("list artist bookings: %w", err)
	}

	var conflicting []string
	for _, b := range active {
		if b.ID == excludeID {
			continue
		}
		if b.Overlaps(*start, *end) {
			conflicting = append(conflicting, b.ID)
		}
	}

	if len(conflicting) > 0 {
		return &model.ConflictError{ArtistID: artistID, BookingIDs: conflicting}
	}

	return nil
}

// notify отправляет уведомление в фоне. Запрос к этому моменту может завершиться,
// поэтому отмена не наследуется, а время отправки ограничено notifyTimeout.
func (s *BookingService) notify(ctx context.Context, booking *model.Booking, send func(ctx context.Context, booking *model.Booking)) {
	b := booking.Clone()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)

	go func() {
		defer cancel()
		send(ctx, b)
	}()
}

// syncSlot синхронизирует слот с ограничением по времени.
// Ошибка только логируется и учитывается в SyncFailures.
func (s *BookingService) syncSlot(ctx context.Context, booking *model.Booking) {
	if s.syncer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.syncTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.syncFailures.Add(1)
			s.logger.Error("Slot sync panicked",
				zap.String("booking_id", booking.ID),
				zap.Any("panic", r))
		}
	}()

	if err := s.syncer.SyncBooking(ctx, booking); err != nil {
		s.syncFailures.Add(1)
		s.logger.Warn("Failed to sync event artist slot status",
			zap.String("booking_id", booking.ID),
			zap.String("event_id", booking.EventID),
			zap.String("status", string(booking.Status)),
			zap.Error(err))
	}
}
