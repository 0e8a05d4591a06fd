package notifier

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"visitor-management/pkg/metrics"
)

// ChatSender is the part of *tgbotapi.BotAPI the front-desk channel needs.
type ChatSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors every message into the front-desk chat.
type Telegram struct {
	bot    ChatSender
	chatID int64
	logger *slog.Logger
	stats  *metrics.Metrics
}

func NewTelegram(bot ChatSender, chatID int64, logger *slog.Logger, stats *metrics.Metrics) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, logger: logger, stats: stats}
}

// DialTelegram authenticates the bot token against the Telegram API.
func DialTelegram(token string, chatID int64, logger *slog.Logger, stats *metrics.Metrics) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	return NewTelegram(bot, chatID, logger, stats), nil
}

func (t *Telegram) Notify(ctx context.Context, msg Message) bool {
	if err := ctx.Err(); err != nil {
		return record(t.logger, t.stats, "telegram", msg, err)
	}

	text := msg.Subject + "\n" + msg.Body
	if msg.To != "" {
		text += "\n\nrecipient: " + msg.To
	}
	out := tgbotapi.NewMessage(t.chatID, text)

	_, err := t.bot.Send(out)
	return record(t.logger, t.stats, "telegram", msg, err)
}
