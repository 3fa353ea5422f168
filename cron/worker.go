package cron

import (
	"context"
	"time"

	notification "tasknest/services/notification"
	"tasknest/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSweepScheduler runs the notification sweep in-process, once per
// minute, for deployments without an external scheduler hitting the cron
// endpoint. The scheduler stops when ctx is cancelled.
//
// A sweep that overlaps a slow predecessor can double-send for the same
// minute; that matches the endpoint's semantics and is not guarded here.
func StartSweepScheduler(ctx context.Context, sweep notification.SweepService) *cron.Cron {
	logger := utils.GetLogger()

	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() {
		summary, err := sweep.Run(ctx, time.Now())
		if err != nil {
			logger.Error("self-hosted sweep failed", zap.Error(err))
			return
		}
		if summary.Processed == 0 {
			return
		}
		logger.Info("self-hosted sweep completed",
			zap.Int("processed", summary.Processed))
	})
	if err != nil {
		logger.Fatal("failed to schedule sweep", zap.Error(err))
	}

	c.Start()
	go func() {
		<-ctx.Done()
		c.Stop()
		logger.Info("sweep scheduler stopped")
	}()
	return c
}
