package service

import (
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
)

// allowedTransitions - переходы статусов бронирования для не-администраторов
var allowedTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusRequested: {model.BookingStatusInReview, model.BookingStatusRejected, model.BookingStatusCancelled},
	model.BookingStatusInReview:  {model.BookingStatusAccepted, model.BookingStatusRejected, model.BookingStatusCancelled},
	model.BookingStatusAccepted:  {model.BookingStatusPaid, model.BookingStatusCancelled},
	model.BookingStatusPaid:      {model.BookingStatusCompleted, model.BookingStatusCancelled},
	model.BookingStatusRejected:  {},
	model.BookingStatusCompleted: {},
	model.BookingStatusCancelled: {},
}

// AllowedTransitions возвращает допустимые статусы из from для обычного пользователя
func AllowedTransitions(from model.BookingStatus) []model.BookingStatus {
	return append([]model.BookingStatus(nil), allowedTransitions[from]...)
}

// validateTransition проверяет переход from -> to.
//
// Администратор может перевести бронирование в любой статус, в том числе
// перепрыгнуть через этапы (requested -> paid) или вернуть назад (paid -> requested).
// Единственное ограничение - выйти из completed и cancelled нельзя никому.
// rejected для администратора не финален.
func validateTransition(from, to model.BookingStatus, actor model.Actor) error {
	if actor.IsAdmin() {
		if from == model.BookingStatusCompleted || from == model.BookingStatusCancelled {
			return &model.TransitionError{From: from, To: to}
		}
		return nil
	}

	for _, s := range allowedTransitions[from] {
		if s == to {
			return nil
		}
	}

	return &model.TransitionError{From: from, To: to, Allowed: AllowedTransitions(from)}
}

// authorizeStatusChange проверяет, может ли участник бронирования выставить статус
func authorizeStatusChange(to model.BookingStatus, actor model.Actor, isOrganizer, isArtist bool) error {
	if actor.IsAdmin() {
		return nil
	}

	if !isOrganizer && !isArtist {
		return fmt.Errorf("%w: you can only update your own bookings", model.ErrForbidden)
	}

	switch to {
	case model.BookingStatusInReview:
		if !isArtist {
			return fmt.Errorf("%w: only artists can mark bookings as in-review", model.ErrForbidden)
		}
	case model.BookingStatusAccepted, model.BookingStatusRejected:
		if !isArtist {
			return fmt.Errorf("%w: only artists can accept or reject bookings", model.ErrForbidden)
		}
	case model.BookingStatusPaid:
		if !isOrganizer {
			return fmt.Errorf("%w: only organizers can mark bookings as paid", model.ErrForbidden)
		}
	case model.BookingStatusCompleted:
		if !isOrganizer {
			return fmt.Errorf("%w: only organizers can mark bookings as completed", model.ErrForbidden)
		}
	}

	return nil
}

// SlotStatusFor отображает статус бронирования на статус слота мероприятия
func SlotStatusFor(status model.BookingStatus) model.SlotStatus {
	switch status {
	case model.BookingStatusRequested, model.BookingStatusInReview, model.BookingStatusAccepted:
		return model.SlotStatusPending
	case model.BookingStatusPaid, model.BookingStatusCompleted:
		return model.SlotStatusConfirmed
	case model.BookingStatusRejected, model.BookingStatusCancelled:
		return model.SlotStatusCancelled
	default:
		return model.SlotStatusUnfilled
	}
}
