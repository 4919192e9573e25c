package trendingimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// ScheduleRefresh sets up the periodic trending recompute. Dropping the
// snapshot and immediately warming it keeps the on-demand path hitting a
// fresh cache instead of recomputing inside a user request.
func (t *TrendingImpl) ScheduleRefresh(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create trending scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				t.logger.Info("Context cancelled, stopping trending refresh job")
				return
			}

			t.logger.Info("Starting trending snapshot refresh")

			refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			if err := t.cache.Invalidate(refreshCtx, "trending"); err != nil {
				t.logger.Warn("Failed to drop trending snapshot", "error", err)
			}

			if _, err := t.TrendingPosts(refreshCtx, t.limit); err != nil {
				t.logger.Error("Failed to refresh trending posts", "error", err)
			}
			if _, err := t.TrendingHashtags(refreshCtx, t.limit); err != nil {
				t.logger.Error("Failed to refresh trending hashtags", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule trending refresh: %w", err)
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		t.logger.Info("Stopping trending refresh scheduler")
		if err := scheduler.Shutdown(); err != nil {
			t.logger.Error("Failed to shut down trending scheduler", "error", err)
		}
	}()

	return nil
}
