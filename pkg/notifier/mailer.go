package notifier

import (
	"context"
	"log/slog"
	"net"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"

	"visitor-management/config"
	"visitor-management/pkg/metrics"
)

// Mailer sends plain-text mail over SMTP.
type Mailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *slog.Logger
	stats  *metrics.Metrics

	// send is swapped in tests.
	send func(*mailyak.MailYak) error
}

func NewMailer(cfg config.SMTPConfig, logger *slog.Logger, stats *metrics.Metrics) *Mailer {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}
	return &Mailer{
		addr:   net.JoinHostPort(cfg.Host, cfg.Port),
		auth:   auth,
		from:   cfg.From,
		logger: logger,
		stats:  stats,
		send:   (*mailyak.MailYak).Send,
	}
}

func (m *Mailer) Notify(ctx context.Context, msg Message) bool {
	// Nothing to deliver; not counted as a failure.
	if msg.To == "" {
		return false
	}
	if err := ctx.Err(); err != nil {
		return record(m.logger, m.stats, "email", msg, err)
	}

	mail := mailyak.New(m.addr, m.auth)
	mail.To(msg.To)
	mail.From(m.from)
	mail.FromName("Visitor Management")
	mail.Subject(msg.Subject)
	mail.Plain().Set(msg.Body)

	return record(m.logger, m.stats, "email", msg, m.send(mail))
}
