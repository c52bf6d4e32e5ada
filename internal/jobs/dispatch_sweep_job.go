package jobs

import (
	"context"
	"errors"
	"log/slog"

	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// DispatchSweepJob periodically walks the dispatchable backlog and attempts
// to offer every order that has no live assignment. Orders skipped by a
// soft outcome (lease held, no courier, attempts exhausted) stay in the
// backlog for the next pass.
type DispatchSweepJob struct {
	uowFactory commands.OrderUoWFactory
	dispatcher commands.Dispatcher
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchSweepJob creates the dispatch sweep on the given cron schedule.
func NewDispatchSweepJob(
	uowFactory commands.OrderUoWFactory,
	dispatcher commands.Dispatcher,
	schedule string,
	logger *slog.Logger,
) *DispatchSweepJob {
	return &DispatchSweepJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_sweep_job"),
	}
}

// Start begins the sweep.
func (j *DispatchSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "dispatch sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("dispatch sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *DispatchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("dispatch sweep job stopped")
}

func (j *DispatchSweepJob) sweep(ctx context.Context) error {
	backlog, err := j.dispatchableOrders(ctx)
	if err != nil {
		return err
	}

	for _, o := range backlog {
		err = j.dispatcher.Dispatch(ctx, o.ID())
		switch {
		case err == nil:
		case errors.Is(err, commands.ErrOrderLocked),
			errors.Is(err, commands.ErrNoCourierAvailable),
			errors.Is(err, commands.ErrReassignmentsExhausted),
			errors.Is(err, commands.ErrAddressUnresolved):
			// soft outcome, next pass retries
		default:
			j.logger.ErrorContext(ctx, "dispatch attempt failed",
				"order_id", o.ID(), "error", err)
		}
	}

	return nil
}

func (j *DispatchSweepJob) dispatchableOrders(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllDispatchable(ctx)
}
