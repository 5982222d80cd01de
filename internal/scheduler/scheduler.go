package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on each tick until ctx is done.
// Errors are logged and do not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, logger *slog.Logger, task Task) {
	if logger == nil {
		logger = slog.Default()
	}
	run := func() {
		if err := task(ctx); err != nil {
			logger.Error("scheduler.task.failed", "task", name, "error", err)
		}
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
