package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_StaleWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	event := &model.Event{ID: "e1", OrganizerID: "org", Title: "Fest", Date: time.Now()}
	require.NoError(t, repo.Create(ctx, event))
	assert.EqualValues(t, 1, event.Version)

	first, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)

	first.Title = "Fest 2"
	require.NoError(t, repo.Update(ctx, first))
	assert.EqualValues(t, 2, first.Version)

	second.Title = "Lost update"
	err = repo.Update(ctx, second)
	assert.ErrorIs(t, err, model.ErrStaleWrite)

	stored, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Fest 2", stored.Title)

	assert.ErrorIs(t, repo.Update(ctx, &model.Event{ID: "missing"}), model.ErrNotFound)
}

func TestEventRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	event := &model.Event{ID: "e1", ArtistSlots: []model.ArtistSlot{{ID: "s1", Role: model.SlotRoleOpener}}}
	require.NoError(t, repo.Create(ctx, event))

	event.ArtistSlots[0].Role = model.SlotRoleHeadliner

	got, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, model.SlotRoleOpener, got.ArtistSlots[0].Role)

	got.ArtistSlots = append(got.ArtistSlots, model.ArtistSlot{ID: "s2"})

	again, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, again.ArtistSlots, 1)
}

func TestBookingRepository_ListActiveByArtist(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()
	now := time.Now()

	for i, status := range []model.BookingStatus{
		model.BookingStatusRequested,
		model.BookingStatusPaid,
		model.BookingStatusCancelled,
		model.BookingStatusRejected,
	} {
		require.NoError(t, repo.Create(ctx, &model.Booking{
			ID:        string(status),
			ArtistID:  "a1",
			Status:    status,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &model.Booking{ID: "other", ArtistID: "a2", Status: model.BookingStatusRequested, CreatedAt: now}))

	active, err := repo.ListActiveByArtist(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, active, 2)
	// новые первыми
	assert.Equal(t, "paid", active[0].ID)
	assert.Equal(t, "requested", active[1].ID)
}

func TestBookingRepository_StaleWrite(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()

	require.NoError(t, repo.Create(ctx, &model.Booking{ID: "b1", Status: model.BookingStatusRequested}))

	a, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	b, err := repo.GetByID(ctx, "b1")
	require.NoError(t, err)

	a.Status = model.BookingStatusInReview
	require.NoError(t, repo.Update(ctx, a))

	b.Status = model.BookingStatusCancelled
	assert.ErrorIs(t, repo.Update(ctx, b), model.ErrStaleWrite)

	require.NoError(t, repo.Delete(ctx, "b1"))
	assert.ErrorIs(t, repo.Delete(ctx, "b1"), model.ErrBookingNotFound)
}
