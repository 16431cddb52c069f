package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 10m"

type RevenueRoller interface {
	Rollup(ctx context.Context, now time.Time) error
}

type Invalidator interface {
	Invalidate(path string)
}

// RevenueWorker rebuilds the revenue table on a cron schedule and marks the
// revenue chart stale after every successful run.
type RevenueWorker struct {
	revenue     RevenueRoller
	invalidator Invalidator
	path        string
	schedule    string
	timeout     time.Duration
	now         func() time.Time
}

func NewRevenueWorker(revenue RevenueRoller, invalidator Invalidator, path, schedule string) *RevenueWorker {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &RevenueWorker{
		revenue:     revenue,
		invalidator: invalidator,
		path:        path,
		schedule:    schedule,
		timeout:     time.Minute,
		now:         time.Now,
	}
}

// Start runs one roll-up immediately, then on schedule until ctx is done.
func (w *RevenueWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(w.schedule, func() { w.run(ctx) }); err != nil {
		return fmt.Errorf("schedule %q: %w", w.schedule, err)
	}

	slog.Info("starting revenue worker", "schedule", w.schedule)
	w.run(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("revenue worker stopped")
	return nil
}

func (w *RevenueWorker) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.revenue.Rollup(runCtx, w.now()); err != nil {
		slog.Error("revenue rollup failed", "error", err)
		return
	}
	w.invalidator.Invalidate(w.path)
	slog.Info("revenue rolled up")
}
