package worker

import (
	"context"
	"log/slog"
	"time"
)

// Purger drops expired entries and reports how many it removed.
type Purger interface {
	PurgeExpired() int
}

// PurgerFunc adapts a function to Purger.
type PurgerFunc func() int

func (f PurgerFunc) PurgeExpired() int {
	return f()
}

// Janitor periodically sweeps in-process state that has no TTL of its own:
// expired authorizations in the memory store and idle rate-limit buckets.
type Janitor struct {
	purgers  map[string]Purger
	interval time.Duration
	logger   *slog.Logger
}

func NewJanitor(interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		purgers:  make(map[string]Purger),
		interval: interval,
		logger:   logger,
	}
}

// Register adds a purger under name. Call before Start.
func (j *Janitor) Register(name string, p Purger) {
	j.purgers[name] = p
}

func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("janitor started", "interval", j.interval, "purgers", len(j.purgers))
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("janitor stopping")
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() {
	for name, p := range j.purgers {
		if removed := p.PurgeExpired(); removed > 0 {
			j.logger.Debug("purged expired entries", "purger", name, "removed", removed)
		}
	}
}
