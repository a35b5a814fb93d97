package service

import (
	"testing"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateTransition_NonAdmin(t *testing.T) {
	user := model.Actor{ID: "u1", Role: model.RoleOrganizer}

	tests := []struct {
		from, to model.BookingStatus
		ok       bool
	}{
		{model.BookingStatusRequested, model.BookingStatusInReview, true},
		{model.BookingStatusRequested, model.BookingStatusRejected, true},
		{model.BookingStatusRequested, model.BookingStatusCancelled, true},
		{model.BookingStatusRequested, model.BookingStatusAccepted, false},
		{model.BookingStatusInReview, model.BookingStatusAccepted, true},
		{model.BookingStatusAccepted, model.BookingStatusPaid, true},
		{model.BookingStatusAccepted, model.BookingStatusCompleted, false},
		{model.BookingStatusPaid, model.BookingStatusCompleted, true},
		{model.BookingStatusPaid, model.BookingStatusRequested, false},
		{model.BookingStatusRejected, model.BookingStatusInReview, false},
		{model.BookingStatusCompleted, model.BookingStatusCancelled, false},
		{model.BookingStatusCancelled, model.BookingStatusRequested, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := validateTransition(tt.from, tt.to, user)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrInvalidTransition)
		})
	}
}

func TestValidateTransition_Admin(t *testing.T) {
	assert.NoError(t, validateTransition(model.BookingStatusPaid, model.BookingStatusRequested, admin))
	assert.NoError(t, validateTransition(model.BookingStatusRequested, model.BookingStatusPaid, admin))
	assert.NoError(t, validateTransition(model.BookingStatusRejected, model.BookingStatusAccepted, admin))

	assert.ErrorIs(t, validateTransition(model.BookingStatusCompleted, model.BookingStatusPaid, admin), model.ErrInvalidTransition)
	assert.ErrorIs(t, validateTransition(model.BookingStatusCancelled, model.BookingStatusRequested, admin), model.ErrInvalidTransition)
}

func TestTransitionError_Message(t *testing.T) {
	err := validateTransition(model.BookingStatusAccepted, model.BookingStatusCompleted, organizer)
	assert.EqualError(t, err, "cannot transition from accepted to completed. Allowed transitions: paid, cancelled")

	err = validateTransition(model.BookingStatusCompleted, model.BookingStatusPaid, organizer)
	assert.EqualError(t, err, "cannot transition from completed to paid. Allowed transitions: none")
}

func TestAuthorizeStatusChange(t *testing.T) {
	tests := []struct {
		name        string
		to          model.BookingStatus
		isOrganizer bool
		isArtist    bool
		ok          bool
	}{
		{"artist accepts", model.BookingStatusAccepted, false, true, true},
		{"organizer accepts", model.BookingStatusAccepted, true, false, false},
		{"organizer rejects", model.BookingStatusRejected, true, false, false},
		{"artist reviews", model.BookingStatusInReview, false, true, true},
		{"organizer reviews", model.BookingStatusInReview, true, false, false},
		{"organizer pays", model.BookingStatusPaid, true, false, true},
		{"artist pays", model.BookingStatusPaid, false, true, false},
		{"organizer completes", model.BookingStatusCompleted, true, false, true},
		{"artist completes", model.BookingStatusCompleted, false, true, false},
		{"artist cancels", model.BookingStatusCancelled, false, true, true},
		{"organizer cancels", model.BookingStatusCancelled, true, false, true},
		{"stranger cancels", model.BookingStatusCancelled, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorizeStatusChange(tt.to, organizer, tt.isOrganizer, tt.isArtist)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrForbidden)
		})
	}

	assert.NoError(t, authorizeStatusChange(model.BookingStatusAccepted, admin, false, false))
}

func TestSlotStatusFor(t *testing.T) {
	expected := map[model.BookingStatus]model.SlotStatus{
		model.BookingStatusRequested: model.SlotStatusPending,
		model.BookingStatusInReview:  model.SlotStatusPending,
		model.BookingStatusAccepted:  model.SlotStatusPending,
		model.BookingStatusPaid:      model.SlotStatusConfirmed,
		model.BookingStatusCompleted: model.SlotStatusConfirmed,
		model.BookingStatusRejected:  model.SlotStatusCancelled,
		model.BookingStatusCancelled: model.SlotStatusCancelled,
	}

	for booking, slot := range expected {
		assert.Equal(t, slot, SlotStatusFor(booking), booking)
	}
}
