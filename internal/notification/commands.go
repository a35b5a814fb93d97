package notification

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Commands - команды бота. Бот только сообщает ID чата,
// который пользователь привязывает к профилю через API.
type Commands struct {
	logger *zap.Logger
}

func NewCommands(logger *zap.Logger) *Commands {
	return &Commands{logger: logger}
}

// Register регистрирует обработчики команд
func (c *Commands) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/chatid", bot.MatchTypeExact, c.HandleStart)
}

// HandleStart отвечает ID чата для привязки уведомлений
func (c *Commands) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf(
			"👋 Booking notifications\n\nYour chat ID: <code>%d</code>\nLink it with PUT /api/v1/users/me/telegram.",
			chatID,
		),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		c.logger.Error("Failed to reply to /start", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
