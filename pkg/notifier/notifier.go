// Package notifier delivers best-effort messages about visits. Delivery
// failures are logged and counted, never returned to the caller.
package notifier

import (
	"context"
	"log/slog"

	"visitor-management/pkg/metrics"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier reports whether the message was delivered. Implementations must not panic
// or block past ctx.
type Notifier interface {
	Notify(ctx context.Context, msg Message) bool
}

type Nop struct{}

func (Nop) Notify(context.Context, Message) bool { return false }

// Multi fans a message out to every channel and reports whether any of them delivered.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) bool {
	delivered := false
	for _, n := range m {
		if n.Notify(ctx, msg) {
			delivered = true
		}
	}
	return delivered
}

// record is shared by the concrete channels.
func record(logger *slog.Logger, stats *metrics.Metrics, channel string, msg Message, err error) bool {
	stats.Notification(channel, err == nil)
	if err != nil {
		logger.Warn("notification failed",
			"channel", channel,
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return false
	}
	logger.Debug("notification sent", "channel", channel, "to", msg.To, "subject", msg.Subject)
	return true
}
