package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nova := f.addArtist(t, "Nova", 100, 2)

	event := f.createEvent(t, 1000,
		SlotInput{Role: model.SlotRoleHeadliner, ArtistID: nova.ID},
		SlotInput{Role: model.SlotRoleOpener},
	)

	assert.Equal(t, model.EventStatusDraft, event.Status)
	assert.Equal(t, organizer.ID, event.OrganizerID)
	require.Len(t, event.ArtistSlots, 2)
	assert.Equal(t, model.SlotStatusPending, event.ArtistSlots[0].Status)
	assert.Equal(t, model.SlotStatusUnfilled, event.ArtistSlots[1].Status)
	assert.NotEqual(t, event.ArtistSlots[0].ID, event.ArtistSlots[1].ID)

	// начальные слоты не создают бронирований
	assert.Empty(t, f.eventBookings(t, event.ID))

	stored, err := f.eventSvc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ArtistSlots, stored.ArtistSlots)
}

func TestEventService_CreateEventValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nova := f.addArtist(t, "Nova", 300, 2)

	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name  string
		input CreateEventInput
		actor model.Actor
		want  error
	}{
		{
			name:  "artist cannot create events",
			input: CreateEventInput{Title: "Gig", Date: future},
			actor: model.Actor{ID: "user-x", Role: model.RoleArtist},
			want:  model.ErrForbidden,
		},
		{
			name:  "past date",
			input: CreateEventInput{Title: "Gig", Date: time.Now().Add(-time.Hour)},
			actor: organizer,
			want:  model.ErrBadRequest,
		},
		{
			name:  "empty title",
			input: CreateEventInput{Title: "  ", Date: future},
			actor: organizer,
			want:  model.ErrBadRequest,
		},
		{
			name:  "negative budget",
			input: CreateEventInput{Title: "Gig", Date: future, Budget: -1},
			actor: organizer,
			want:  model.ErrBadRequest,
		},
		{
			name: "duplicate artist",
			input: CreateEventInput{Title: "Gig", Date: future, Budget: 10000, ArtistSlots: []SlotInput{
				{Role: model.SlotRoleHeadliner, ArtistID: nova.ID},
				{Role: model.SlotRoleSupport, ArtistID: nova.ID},
			}},
			actor: organizer,
			want:  model.ErrBadRequest,
		},
		{
			name: "over budget",
			input: CreateEventInput{Title: "Gig", Date: future, Budget: 100, ArtistSlots: []SlotInput{
				{Role: model.SlotRoleHeadliner, ArtistID: nova.ID},
			}},
			actor: organizer,
			want:  model.ErrBudgetExceeded,
		},
		{
			name: "unknown artist",
			input: CreateEventInput{Title: "Gig", Date: future, ArtistSlots: []SlotInput{
				{Role: model.SlotRoleHeadliner, ArtistID: "missing"},
			}},
			actor: organizer,
			want:  model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.eventSvc.CreateEvent(ctx, tt.input, tt.actor)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	events, err := f.eventSvc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventService_GetEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	event := f.createEvent(t, 500, SlotInput{Role: model.SlotRoleOpener})

	first, err := f.eventSvc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	second, err := f.eventSvc.GetEvent(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	_, err = f.eventSvc.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrEventNotFound)
}

func TestEventService_ResolveSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nova := f.addArtist(t, "Nova", 100, 2)

	event := &model.Event{
		ID:          uuid.New().String(),
		OrganizerID: organizer.ID,
		Title:       "Legacy",
		Date:        time.Now().Add(time.Hour),
		Status:      model.EventStatusDraft,
		ArtistSlots: []model.ArtistSlot{
			{ID: "s1", Role: model.SlotRoleHeadliner, ArtistID: nova.ID, Status: model.SlotStatusConfirmed},
			{ID: "s2", Role: model.SlotRoleSupport, ArtistID: "deleted-artist", Status: model.SlotStatusPending},
			{ID: "s3", Role: model.SlotRoleOpener, Status: model.SlotStatusUnfilled},
		},
	}
	require.NoError(t, f.events.Create(ctx, event))

	slots, err := f.eventSvc.ResolveSlots(ctx, event)
	require.NoError(t, err)
	require.Len(t, slots, 3)

	resolved, ok := slots[0].Artist.Artist()
	require.True(t, ok)
	assert.Equal(t, "Nova", resolved.Name)

	_, ok = slots[1].Artist.Artist()
	assert.False(t, ok)
	assert.Equal(t, "deleted-artist", slots[1].Artist.ID())

	assert.True(t, slots[2].Artist.IsEmpty())
	assert.Equal(t, 2, slots[2].Index)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	nova := f.addArtist(t, "Nova", 150, 3)
	event := f.createEvent(t, 1000, SlotInput{Role: model.SlotRoleHeadliner, ArtistID: nova.ID})

	t.Run("budget cannot drop below allocation", func(t *testing.T) {
		budget := 400.0
		_, err := f.eventSvc.UpdateEvent(ctx, event.ID, UpdateEventInput{Budget: &budget}, organizer)
		require.ErrorIs(t, err, model.ErrBudgetExceeded)
		assert.Contains(t, err.Error(), "cannot reduce budget")
		assert.Equal(t, 1000.0, f.reloadEvent(t, event.ID).Budget)
	})

	t.Run("budget equal to allocation", func(t *testing.T) {
		budget := 450.0
		title := "Winter Fest"
		updated, err := f.eventSvc.UpdateEvent(ctx, event.ID, UpdateEventInput{Budget: &budget, Title: &title}, organizer)
		require.NoError(t, err)
		assert.Equal(t, 450.0, updated.Budget)
		assert.Equal(t, "Winter Fest", updated.Title)
	})

	t.Run("stranger", func(t *testing.T) {
		venue := "Basement"
		_, err := f.eventSvc.UpdateEvent(ctx, event.ID, UpdateEventInput{Venue: &venue}, stranger)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})

	t.Run("past date", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		_, err := f.eventSvc.UpdateEvent(ctx, event.ID, UpdateEventInput{Date: &past}, organizer)
		assert.ErrorIs(t, err, model.ErrBadRequest)
	})
}

func TestEventService_RemoveEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	t.Run("draft is deleted", func(t *testing.T) {
		event := f.createEvent(t, 100)
		_, err := f.eventSvc.RemoveEvent(ctx, event.ID, organizer)
		require.NoError(t, err)

		_, err = f.eventSvc.GetEvent(ctx, event.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("published is cancelled", func(t *testing.T) {
		event := f.createEvent(t, 100)
		_, err := f.eventSvc.UpdateEventStatus(ctx, event.ID, model.EventStatusPublished, organizer)
		require.NoError(t, err)

		removed, err := f.eventSvc.RemoveEvent(ctx, event.ID, organizer)
		require.NoError(t, err)
		assert.Equal(t, model.EventStatusCancelled, removed.Status)
		assert.Equal(t, model.EventStatusCancelled, f.reloadEvent(t, event.ID).Status)
	})

	t.Run("admin deletes published", func(t *testing.T) {
		event := f.createEvent(t, 100)
		_, err := f.eventSvc.UpdateEventStatus(ctx, event.ID, model.EventStatusPublished, organizer)
		require.NoError(t, err)

		_, err = f.eventSvc.RemoveEvent(ctx, event.ID, admin)
		require.NoError(t, err)

		_, err = f.eventSvc.GetEvent(ctx, event.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("stranger", func(t *testing.T) {
		event := f.createEvent(t, 100)
		_, err := f.eventSvc.RemoveEvent(ctx, event.ID, stranger)
		assert.ErrorIs(t, err, model.ErrForbidden)
	})
}

func TestEventService_ListByOrganizer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.createEvent(t, 100)
	f.createEvent(t, 200)

	mine, err := f.eventSvc.ListByOrganizer(ctx, organizer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	others, err := f.eventSvc.ListByOrganizer(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, others)
}
