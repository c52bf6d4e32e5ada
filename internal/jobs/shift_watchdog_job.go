package jobs

import (
	"context"
	"log/slog"

	"geodispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShiftWatchdogJob periodically force-closes shifts whose expected end time
// has passed. It runs the same closing primitive the manual endpoint uses.
type ShiftWatchdogJob struct {
	handler  commands.CloseOverdueShiftsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewShiftWatchdogJob creates the watchdog on the given cron schedule.
func NewShiftWatchdogJob(
	handler commands.CloseOverdueShiftsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ShiftWatchdogJob {
	return &ShiftWatchdogJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "shift_watchdog_job"),
	}
}

// Start begins the watchdog.
func (j *ShiftWatchdogJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewCloseOverdueShiftsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "shift watchdog pass failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("shift watchdog job started", "schedule", j.schedule)
	return nil
}

// Stop stops the watchdog.
func (j *ShiftWatchdogJob) Stop() {
	j.cron.Stop()
	j.logger.Info("shift watchdog job stopped")
}
