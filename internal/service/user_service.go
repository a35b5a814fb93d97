package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"go.uber.org/zap"
)

type UserRepository interface {
	UserDirectory
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

type UserService struct {
	userRepo UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// RegisterUser регистрирует пользователя из токена или обновляет его данные
func (s *UserService) RegisterUser(ctx context.Context, actor model.Actor, name, email string) (*model.User, error) {
	if actor.ID == "" {
		return nil, fmt.Errorf("%w: user id is required", model.ErrBadRequest)
	}
	if !actor.Role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", model.ErrBadRequest, actor.Role)
	}

	existing, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if existing != nil {
		existing.Name = strings.TrimSpace(name)
		existing.Email = strings.TrimSpace(email)
		existing.Role = actor.Role

		if err = s.userRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}

		s.logger.Info("User updated", zap.String("user_id", existing.ID))
		return existing, nil
	}

	user := &model.User{
		ID:        actor.ID,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Role:      actor.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// GetByID получает пользователя по ID
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// LinkTelegram привязывает чат Telegram для уведомлений о бронированиях
func (s *UserService) LinkTelegram(ctx context.Context, actor model.Actor, chatID int64) (*model.User, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("%w: chat id is required", model.ErrBadRequest)
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.TelegramChatID = &chatID
	if err = s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("Telegram chat linked",
		zap.String("user_id", user.ID),
		zap.Int64("chat_id", chatID),
	)

	return user, nil
}
