package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/metrics"
)

// CancelStaleOrdersCommandHandler handles the pending-order timeout sweep.
//
// The cancellation write is a compare-and-set against pending status: an
// order confirmed between the sweep's read and write loses nothing, the
// sweep just skips it. Cancelled rows are tagged with the system:timeout
// actor in the history trail.
type CancelStaleOrdersCommandHandler struct {
	uowFactory     OrderUoWFactory
	pendingTimeout time.Duration
	logger         *slog.Logger
}

// NewCancelStaleOrdersCommandHandler creates a handler for the timeout
// sweep cancelling orders pending longer than pendingTimeout.
func NewCancelStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	pendingTimeout time.Duration,
	logger *slog.Logger,
) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory:     uowFactory,
		pendingTimeout: pendingTimeout,
		logger:         logger.With("component", "cancel_stale_orders"),
	}
}

// Handle processes one sweep pass.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	orderRepo := uow.OrderRepository()
	stale, err := orderRepo.GetStalePending(ctx, now.Add(-h.pendingTimeout))
	if err != nil {
		return err
	}

	for _, o := range stale {
		if err = o.Cancel(order.SystemTimeoutActor, "pending timeout exceeded", now); err != nil {
			return err
		}

		err = orderRepo.UpdateWithExpectedStatus(ctx, o, order.Pending)
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			// confirmed (or otherwise moved) just before the timeout fired
			h.logger.Info("order no longer pending, skipping", "order_id", o.ID())
			continue
		}
		if err != nil {
			return err
		}

		if err = appendHistory(ctx, orderRepo, o); err != nil {
			return err
		}

		metrics.StaleOrdersCancelled.Inc()
		h.logger.Info("stale order cancelled", "order_id", o.ID())
	}

	return uow.Commit(ctx)
}
