package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestArtistService_CreateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(memory.NewArtistRepository(), zap.NewNop())
	actor := model.Actor{ID: "user-nova", Role: model.RoleArtist}

	artist, err := svc.CreateProfile(ctx, CreateArtistInput{
		Name:    " Nova ",
		Genres:  []string{"techno"},
		Pricing: model.Pricing{HourlyRate: 100, MinimumHours: 2},
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Nova", artist.Name)
	assert.Equal(t, model.ArtistStatusPendingReview, artist.Status)
	assert.Equal(t, actor.ID, artist.UserID)

	_, err = svc.CreateProfile(ctx, CreateArtistInput{Name: "Nova again"}, actor)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	_, err = svc.CreateProfile(ctx, CreateArtistInput{Name: "Org"}, organizer)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.CreateProfile(ctx, CreateArtistInput{Name: "Cheap", Pricing: model.Pricing{HourlyRate: -1}},
		model.Actor{ID: "user-cheap", Role: model.RoleArtist})
	assert.ErrorIs(t, err, model.ErrBadRequest)

	mine, err := svc.GetByUserID(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, artist.ID, mine.ID)
}

func TestArtistService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(memory.NewArtistRepository(), zap.NewNop())
	actor := model.Actor{ID: "user-nova", Role: model.RoleArtist}

	artist, err := svc.CreateProfile(ctx, CreateArtistInput{Name: "Nova"}, actor)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, artist.ID, model.ArtistStatusActive, actor)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, artist.ID, "famous", admin)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	updated, err := svc.UpdateStatus(ctx, artist.ID, model.ArtistStatusActive, admin)
	require.NoError(t, err)
	assert.True(t, updated.IsActive())

	_, err = svc.UpdateStatus(ctx, "missing", model.ArtistStatusActive, admin)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestArtistService_UpdateAvailability(t *testing.T) {
	ctx := context.Background()
	svc := NewArtistService(memory.NewArtistRepository(), zap.NewNop())
	actor := model.Actor{ID: "user-nova", Role: model.RoleArtist}

	artist, err := svc.CreateProfile(ctx, CreateArtistInput{Name: "Nova"}, actor)
	require.NoError(t, err)

	day := time.Date(2030, time.May, 1, 18, 30, 0, 0, time.UTC)

	_, err = svc.UpdateAvailability(ctx, artist.ID, nil, actor)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	_, err = svc.UpdateAvailability(ctx, artist.ID, []model.AvailabilityEntry{{Date: day, IsAvailable: true}}, organizer)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.UpdateAvailability(ctx, artist.ID, []model.AvailabilityEntry{{Date: day, IsAvailable: true}}, actor)
	require.NoError(t, err)

	// запись за тот же день заменяет предыдущую
	updated, err := svc.UpdateAvailability(ctx, artist.ID, []model.AvailabilityEntry{{Date: day.Add(2 * time.Hour), IsAvailable: false}}, admin)
	require.NoError(t, err)
	require.Len(t, updated.Availability, 1)
	assert.False(t, updated.Availability[0].IsAvailable)
}
