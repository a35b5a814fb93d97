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

type CreateArtistInput struct {
	Name         string
	Genres       []string
	Description  string
	Pricing      model.Pricing
	Availability []model.AvailabilityEntry
}

type ArtistService struct {
	artistRepo ArtistRepository
	logger     *zap.Logger
}

func NewArtistService(artistRepo ArtistRepository, logger *zap.Logger) *ArtistService {
	return &ArtistService{
		artistRepo: artistRepo,
		logger:     logger,
	}
}

// CreateProfile создаёт профиль артиста для пользователя. Новый профиль ждёт проверки администратором.
func (s *ArtistService) CreateProfile(ctx context.Context, input CreateArtistInput, actor model.Actor) (*model.Artist, error) {
	if actor.Role != model.RoleArtist && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only artists can create artist profiles", model.ErrForbidden)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrBadRequest)
	}
	if input.Pricing.HourlyRate < 0 || input.Pricing.MinimumHours < 0 || input.Pricing.TravelFees < 0 {
		return nil, fmt.Errorf("%w: pricing must not be negative", model.ErrBadRequest)
	}

	existing, err := s.artistRepo.FindByUserID(ctx, actor.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: artist profile already exists", model.ErrBadRequest)
	}

	now := time.Now().UTC()
	artist := &model.Artist{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		Name:        strings.TrimSpace(input.Name),
		Genres:      input.Genres,
		Description: input.Description,
		Status:      model.ArtistStatusPendingReview,
		Pricing:     input.Pricing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	artist.SetAvailability(input.Availability)

	if err = s.artistRepo.Create(ctx, artist); err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}

	s.logger.Info("Artist profile created",
		zap.String("artist_id", artist.ID),
		zap.String("user_id", artist.UserID),
	)

	return artist, nil
}

func (s *ArtistService) List(ctx context.Context) ([]*model.Artist, error) {
	return s.artistRepo.List(ctx)
}

// GetByID получает артиста по ID
func (s *ArtistService) GetByID(ctx context.Context, id string) (*model.Artist, error) {
	return s.artistRepo.FindByID(ctx, id)
}

// GetByUserID получает профиль артиста пользователя
func (s *ArtistService) GetByUserID(ctx context.Context, userID string) (*model.Artist, error) {
	return s.artistRepo.FindByUserID(ctx, userID)
}

// UpdateStatus меняет статус артиста (только администратор).
// Неактивного артиста нельзя назначить на слот или забронировать.
func (s *ArtistService) UpdateStatus(ctx context.Context, id string, status model.ArtistStatus, actor model.Actor) (*model.Artist, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins can change artist status", model.ErrForbidden)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid artist status %q", model.ErrBadRequest, status)
	}

	artist, err := s.artistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}

	previous := artist.Status
	artist.Status = status
	artist.UpdatedAt = time.Now().UTC()

	if err = s.artistRepo.Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}

	s.logger.Info("Artist status changed",
		zap.String("artist_id", artist.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
		zap.String("changed_by", actor.ID),
	)

	return artist, nil
}

// UpdateAvailability обновляет календарь доступности. Менять его может сам артист или администратор.
func (s *ArtistService) UpdateAvailability(ctx context.Context, id string, updates []model.AvailabilityEntry, actor model.Actor) (*model.Artist, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no availability entries provided", model.ErrBadRequest)
	}

	artist, err := s.artistRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artist: %w", err)
	}

	if !actor.IsAdmin() && artist.UserID != actor.ID {
		return nil, fmt.Errorf("%w: you can only update your own availability", model.ErrForbidden)
	}

	artist.SetAvailability(updates)
	artist.UpdatedAt = time.Now().UTC()

	if err = s.artistRepo.Update(ctx, artist); err != nil {
		return nil, fmt.Errorf("update artist: %w", err)
	}

	s.logger.Debug("Artist availability updated",
		zap.String("artist_id", artist.ID),
		zap.Int("entries", len(updates)))

	return artist, nil
}
