package utils

import (
	"context"
	"time"

	"campy/logger"

	"github.com/robfig/cron/v3"
)

// Reconcile is the job run by the scheduler.
type Reconcile func(ctx context.Context) (int, error)

// InitializeReconcileScheduler sets up the enrollment counter reconciliation
// job. An empty schedule disables it and returns nil.
func InitializeReconcileScheduler(schedule string, job Reconcile, log *logger.Logger) (*cron.Cron, error) {
	if schedule == "" {
		log.Info("[RECONCILE-SCHEDULER] disabled, no schedule configured")
		return nil, nil
	}

	log.Info("[RECONCILE-SCHEDULER] Initializing reconcile scheduler...", "schedule", schedule)

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		log.Info("[RECONCILE-SCHEDULER] Running enrollment counter reconciliation...")
		fixed, err := job(ctx)
		if err != nil {
			log.Error("[RECONCILE-SCHEDULER] reconciliation failed", "error", err)
			return
		}
		log.Info("[RECONCILE-SCHEDULER] reconciliation finished", "coursesFixed", fixed)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Info("[RECONCILE-SCHEDULER] Reconcile scheduler started", "schedule", schedule)
	return c, nil
}
