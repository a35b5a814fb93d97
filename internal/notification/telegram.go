package notification

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/Freeeeeet/artist_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type userDirectory interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type artistRegistry interface {
	FindByID(ctx context.Context, id string) (*model.Artist, error)
}

// Telegram отправляет участникам бронирования сообщения в привязанные чаты.
// Пользователи без TelegramChatID пропускаются.
type Telegram struct {
	sender  messageSender
	users   userDirectory
	artists artistRegistry
	logger  *zap.Logger
}

func NewTelegram(sender messageSender, users userDirectory, artists artistRegistry, logger *zap.Logger) *Telegram {
	return &Telegram{
		sender:  sender,
		users:   users,
		artists: artists,
		logger:  logger,
	}
}

// NotifyBookingCreated сообщает артисту о новом запросе
func (t *Telegram) NotifyBookingCreated(ctx context.Context, booking *model.Booking) {
	artist, err := t.artists.FindByID(ctx, booking.ArtistID)
	if err != nil {
		t.logger.Warn("Failed to load artist for notification",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
		return
	}

	text := fmt.Sprintf(
		"🎤 <b>New booking request</b>\n\nRole: %s\nStatus: %s",
		html.EscapeString(roleOrDash(booking.Role)),
		html.EscapeString(GetBookingStatusDisplay(booking.Status).String()),
	)
	if booking.Payment != nil {
		text += "\nFee: " + FormatPrice(booking.Payment.Amount)
	}
	if booking.Notes != "" {
		text += "\n\n" + html.EscapeString(booking.Notes)
	}

	t.send(ctx, artist.UserID, booking.ID, text)
}

// NotifyBookingStatusChanged сообщает о новом статусе обоим участникам
func (t *Telegram) NotifyBookingStatusChanged(ctx context.Context, booking *model.Booking) {
	text := fmt.Sprintf(
		"📋 <b>Booking status changed</b>\n\nBooking: <code>%s</code>\nStatus: %s",
		html.EscapeString(booking.ID),
		html.EscapeString(GetBookingStatusDisplay(booking.Status).String()),
	)

	t.send(ctx, booking.OrganizerID, booking.ID, text)

	artist, err := t.artists.FindByID(ctx, booking.ArtistID)
	if err != nil {
		t.logger.Warn("Failed to load artist for notification",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
		return
	}
	t.send(ctx, artist.UserID, booking.ID, text)
}

func (t *Telegram) send(ctx context.Context, userID, bookingID, text string) {
	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			t.logger.Warn("Failed to load user for notification",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return
	}
	if user.TelegramChatID == nil {
		return
	}

	_, err = t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    *user.TelegramChatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		t.logger.Error("Failed to send booking notification",
			zap.String("user_id", userID),
			zap.String("booking_id", bookingID),
			zap.Error(err))
		return
	}

	t.logger.Debug("Booking notification sent",
		zap.String("user_id", userID),
		zap.String("booking_id", bookingID))
}

func roleOrDash(role model.SlotRole) string {
	if role == "" {
		return "-"
	}
	return string(role)
}
