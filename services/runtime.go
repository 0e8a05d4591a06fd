// Package services holds the visit lifecycle: who may move a record between
// states, how passcodes are redeemed, and which notifications follow.
package services

import (
	"io"
	"log/slog"
	"time"

	"visitor-management/pkg/metrics"
	"visitor-management/pkg/notifier"
)

// Runtime carries the collaborators every service shares.
type Runtime struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Notifier notifier.Notifier
	Location *time.Location
	Now      func() time.Time
}

func (rt Runtime) withDefaults() Runtime {
	if rt.Logger == nil {
		rt.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if rt.Notifier == nil {
		rt.Notifier = notifier.Nop{}
	}
	if rt.Location == nil {
		rt.Location = time.Local
	}
	if rt.Now == nil {
		rt.Now = time.Now
	}
	return rt
}

func (rt Runtime) now() time.Time {
	return rt.Now().In(rt.Location)
}

// dayBounds returns the first and last instant of t's calendar day in the configured zone.
func (rt Runtime) dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.In(rt.Location)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, rt.Location)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (rt Runtime) formatTime(t time.Time) string {
	return t.In(rt.Location).Format("02 Jan 2006 15:04 MST")
}
