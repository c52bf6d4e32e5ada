package jobs

import (
	"fmt"
	"log/slog"

	"geodispatch/internal/core/application/usecases/commands"
)

// Schedules holds the cron expressions of the periodic jobs. The offer
// expiry sweep always runs every second and is not configurable.
type Schedules struct {
	DispatchSweep string
	OrderTimeout  string
	ShiftWatchdog string
}

// JobManager coordinates the background jobs of the dispatch engine.
type JobManager struct {
	dispatchSweepJob *DispatchSweepJob
	offerExpiryJob   *OfferExpiryJob
	orderTimeoutJob  *OrderTimeoutJob
	shiftWatchdogJob *ShiftWatchdogJob
}

// NewJobManager creates a job manager with all scheduled jobs wired.
func NewJobManager(
	orderUoWFactory commands.OrderUoWFactory,
	dispatcher commands.Dispatcher,
	expireOffersHandler commands.ExpireOffersCommandHandler,
	cancelStaleOrdersHandler commands.CancelStaleOrdersCommandHandler,
	closeOverdueShiftsHandler commands.CloseOverdueShiftsCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchSweepJob: NewDispatchSweepJob(orderUoWFactory, dispatcher, schedules.DispatchSweep, logger),
		offerExpiryJob:   NewOfferExpiryJob(expireOffersHandler, logger),
		orderTimeoutJob:  NewOrderTimeoutJob(cancelStaleOrdersHandler, schedules.OrderTimeout, logger),
		shiftWatchdogJob: NewShiftWatchdogJob(closeOverdueShiftsHandler, schedules.ShiftWatchdog, logger),
	}
}

// StartAll starts every job, stopping the ones already started if a later
// one fails.
func (jm *JobManager) StartAll() error {
	if err := jm.offerExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer expiry job: %w", err)
	}

	if err := jm.dispatchSweepJob.Start(); err != nil {
		jm.offerExpiryJob.Stop()
		return fmt.Errorf("failed to start dispatch sweep job: %w", err)
	}

	if err := jm.orderTimeoutJob.Start(); err != nil {
		jm.dispatchSweepJob.Stop()
		jm.offerExpiryJob.Stop()
		return fmt.Errorf("failed to start order timeout job: %w", err)
	}

	if err := jm.shiftWatchdogJob.Start(); err != nil {
		jm.orderTimeoutJob.Stop()
		jm.dispatchSweepJob.Stop()
		jm.offerExpiryJob.Stop()
		return fmt.Errorf("failed to start shift watchdog job: %w", err)
	}

	return nil
}

// StopAll stops every job.
func (jm *JobManager) StopAll() {
	jm.shiftWatchdogJob.Stop()
	jm.orderTimeoutJob.Stop()
	jm.dispatchSweepJob.Stop()
	jm.offerExpiryJob.Stop()
}
