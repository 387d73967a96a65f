package repository

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the memory sweeper once a minute.
const DefaultSweepSchedule = "@every 1m"

// Sweeper is implemented by stores that need periodic expiry.
type Sweeper interface {
	Sweep(now time.Time) int
}

// StartSweeper schedules s.Sweep on the given cron spec. Callers stop the
// returned scheduler on shutdown.
func StartSweeper(s Sweeper, spec string) (*cron.Cron, error) {
	if spec == "" {
		spec = DefaultSweepSchedule
	}
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := s.Sweep(time.Now()); n > 0 {
			slog.Debug("expired handoffs removed", "count", n)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule sweeper: %w", err)
	}
	c.Start()
	slog.Info("handoff sweeper started", "schedule", spec)
	return c, nil
}
