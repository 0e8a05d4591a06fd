package notifier

import (
	"log/slog"

	"visitor-management/config"
	"visitor-management/pkg/metrics"
)

// FromConfig assembles the configured channels. A channel that fails to start
// is logged and left out.
func FromConfig(cfg *config.AppConfig, logger *slog.Logger, stats *metrics.Metrics) Notifier {
	var channels Multi

	if cfg.SMTP.IsConfigured() {
		channels = append(channels, NewMailer(cfg.SMTP, logger, stats))
	}
	if cfg.Telegram.IsConfigured() {
		tg, err := DialTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger, stats)
		if err != nil {
			logger.Warn("telegram channel disabled", "error", err)
		} else {
			channels = append(channels, tg)
		}
	}

	if len(channels) == 0 {
		logger.Info("no notification channel configured")
		return Nop{}
	}
	return channels
}
