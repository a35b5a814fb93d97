package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"go.uber.org/zap"
)

// Allocation - распределение бюджета мероприятия по артистам
type Allocation struct {
	Allocated float64
	Budget    float64
	Breakdown []model.ArtistCost
}

func (a *Allocation) Exceeds() bool {
	return a.Allocated > a.Budget
}

// BudgetValidator проверяет, что назначенные артисты укладываются в бюджет.
// Побочных эффектов нет.
type BudgetValidator struct {
	artists ArtistRegistry
	logger  *zap.Logger
}

func NewBudgetValidator(artists ArtistRegistry, logger *zap.Logger) *BudgetValidator {
	return &BudgetValidator{
		artists: artists,
		logger:  logger,
	}
}

// Allocate считает стоимость артистов из слотов (кроме excluded) и кандидатов.
// Неразрешённые артисты в существующих слотах пропускаются, неизвестный кандидат - ошибка.
func (v *BudgetValidator) Allocate(ctx context.Context, event *model.Event, candidates []string, excluded ...int) (*Allocation, error) {
	skip := make(map[int]struct{}, len(excluded))
	for _, idx := range excluded {
		skip[idx] = struct{}{}
	}

	alloc := &Allocation{Budget: event.Budget}

	for i, slot := range event.ArtistSlots {
		if _, ok := skip[i]; ok || !slot.HasArtist() {
			continue
		}

		artist, err := v.artists.FindByID(ctx, slot.ArtistID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				v.logger.Debug("Skipping unresolved slot artist",
					zap.String("event_id", event.ID),
					zap.String("artist_id", slot.ArtistID))
				continue
			}
			return nil, fmt.Errorf("find artist %s: %w", slot.ArtistID, err)
		}
		alloc.add(artist)
	}

	for _, id := range candidates {
		artist, err := v.artists.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("find artist %s: %w", id, err)
		}
		alloc.add(artist)
	}

	return alloc, nil
}

// Validate возвращает *model.BudgetExceededError, если сумма превышает бюджет
func (v *BudgetValidator) Validate(ctx context.Context, event *model.Event, candidates []string, excluded ...int) error {
	alloc, err := v.Allocate(ctx, event, candidates, excluded...)
	if err != nil {
		return err
	}

	if alloc.Exceeds() {
		return &model.BudgetExceededError{
			Allocated: alloc.Allocated,
			Budget:    alloc.Budget,
			Breakdown: alloc.Breakdown,
		}
	}

	return nil
}

func (a *Allocation) add(artist *model.Artist) {
	cost := artist.Cost()
	a.Allocated += cost
	a.Breakdown = append(a.Breakdown, model.ArtistCost{
		ArtistID:     artist.ID,
		Name:         artist.Name,
		Cost:         cost,
		MinimumHours: artist.Pricing.MinimumHours,
	})
}
