package jobs

import (
	"context"
	"log/slog"

	"geodispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderTimeoutJob periodically cancels orders stuck in pending past the
// confirmation timeout.
type OrderTimeoutJob struct {
	handler  commands.CancelStaleOrdersCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderTimeoutJob creates the stale-order sweep on the given cron schedule.
func NewOrderTimeoutJob(
	handler commands.CancelStaleOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderTimeoutJob {
	return &OrderTimeoutJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_timeout_job"),
	}
}

// Start begins the sweep.
func (j *OrderTimeoutJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewCancelStaleOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "stale order sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order timeout job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *OrderTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.Info("order timeout job stopped")
}
