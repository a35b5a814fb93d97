package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/Freeeeeet/artist_booking/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), zap.NewNop())

	user, err := svc.RegisterUser(ctx, organizer, " Olga ", "olga@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Olga", user.Name)
	assert.Equal(t, model.RoleOrganizer, user.Role)

	// повторная регистрация обновляет данные
	user, err = svc.RegisterUser(ctx, organizer, "Olga K.", "olga@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Olga K.", user.Name)

	_, err = svc.RegisterUser(ctx, model.Actor{Role: model.RoleOrganizer}, "Anon", "")
	assert.ErrorIs(t, err, model.ErrBadRequest)

	_, err = svc.RegisterUser(ctx, model.Actor{ID: "x", Role: "guest"}, "Anon", "")
	assert.ErrorIs(t, err, model.ErrBadRequest)
}

func TestUserService_LinkTelegram(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserRepository(), zap.NewNop())

	_, err := svc.LinkTelegram(ctx, organizer, 42)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.RegisterUser(ctx, organizer, "Olga", "")
	require.NoError(t, err)

	_, err = svc.LinkTelegram(ctx, organizer, 0)
	assert.ErrorIs(t, err, model.ErrBadRequest)

	user, err := svc.LinkTelegram(ctx, organizer, 42)
	require.NoError(t, err)
	require.NotNil(t, user.TelegramChatID)
	assert.EqualValues(t, 42, *user.TelegramChatID)

	stored, err := svc.GetByID(ctx, organizer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 42, *stored.TelegramChatID)
}
