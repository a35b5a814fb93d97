package service

import (
	"context"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

// ArtistRegistry - внешний реестр артистов, только чтение
type ArtistRegistry interface {
	FindByID(ctx context.Context, id string) (*model.Artist, error)
	FindByUserID(ctx context.Context, userID string) (*model.Artist, error)
}

type ArtistRepository interface {
	ArtistRegistry
	List(ctx context.Context) ([]*model.Artist, error)
	Create(ctx context.Context, artist *model.Artist) error
	Update(ctx context.Context, artist *model.Artist) error
}

// UserDirectory - справочник пользователей и их ролей
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// EventRepository хранит мероприятия как документы.
// Update - атомарная запись с проверкой Version, при расхождении model.ErrStaleWrite.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	ListByArtist(ctx context.Context, artistID string) ([]*model.Booking, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Booking, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.Booking, error)
	// ListActiveByArtist возвращает бронирования артиста в статусах model.ActiveBookingStatuses
	ListActiveByArtist(ctx context.Context, artistID string) ([]*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
}

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *model.Booking)
	NotifyBookingStatusChanged(ctx context.Context, booking *model.Booking)
}

// NopNotifier не отправляет уведомлений
type NopNotifier struct{}

func (NopNotifier) NotifyBookingCreated(context.Context, *model.Booking)       {}
func (NopNotifier) NotifyBookingStatusChanged(context.Context, *model.Booking) {}
