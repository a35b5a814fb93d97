package model

import (
	"errors"
	"fmt"
	"strings"
)

// Классы ошибок, по которым внешний слой выбирает ответ
var (
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBudgetExceeded    = errors.New("budget exceeded")
	ErrStaleWrite        = errors.New("document was modified concurrently")
)

var (
	ErrArtistNotFound  = fmt.Errorf("artist %w", ErrNotFound)
	ErrEventNotFound   = fmt.Errorf("event %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrSlotNotFound    = fmt.Errorf("artist slot %w", ErrNotFound)
)

// ArtistCost - строка разбивки бюджета
type ArtistCost struct {
	ArtistID     string  `json:"artist_id"`
	Name         string  `json:"name"`
	Cost         float64 `json:"cost"`
	MinimumHours float64 `json:"minimum_hours"`
}

type BudgetExceededError struct {
	Allocated float64
	Budget    float64
	Breakdown []ArtistCost
}

func (e *BudgetExceededError) Error() string {
	parts := make([]string, 0, len(e.Breakdown))
	for _, c := range e.Breakdown {
		parts = append(parts, fmt.Sprintf("%s: $%.2f", c.Name, c.Cost))
	}
	return fmt.Sprintf(
		"artist allocation would exceed event budget. Total artist costs: $%.2f, Event budget: $%.2f. Breakdown: %s",
		e.Allocated, e.Budget, strings.Join(parts, ", "),
	)
}

func (e *BudgetExceededError) Is(target error) bool {
	return target == ErrBudgetExceeded || target == ErrBadRequest
}

type TransitionError struct {
	From    BookingStatus
	To      BookingStatus
	Allowed []BookingStatus
}

func (e *TransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		names := make([]string, len(e.Allowed))
		for i, s := range e.Allowed {
			names[i] = string(s)
		}
		allowed = strings.Join(names, ", ")
	}
	return fmt.Sprintf("cannot transition from %s to %s. Allowed transitions: %s", e.From, e.To, allowed)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

type ConflictError struct {
	ArtistID   string
	BookingIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"artist already has booking(s) during this time period. Conflicting booking IDs: %s",
		strings.Join(e.BookingIDs, ", "),
	)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
