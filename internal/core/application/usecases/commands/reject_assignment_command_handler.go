package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"
)

// RejectAssignmentCommandHandler handles a courier declining an offer.
//
// The decline races the expiry sweep the same way acceptance does; the
// compare-and-set on the assignment status makes the first writer win. A
// decline that loses the race is a no-op: the sweep already expired the row
// and queued the reassignment, so there is nothing left to decline.
//
// A declined offer immediately triggers a reassignment attempt. The rejected
// courier lands in the order's exclusion set, so the next offer goes
// elsewhere. Soft dispatch outcomes are logged and never fail the decline.
type RejectAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher Dispatcher
	logger     *slog.Logger
}

// NewRejectAssignmentCommandHandler creates a handler for offer declines.
func NewRejectAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher Dispatcher,
	logger *slog.Logger,
) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "reject_assignment"),
	}
}

// Handle processes the decline command.
func (h *RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderID, rejected, err := h.reject(ctx, cmd)
	if err != nil || !rejected {
		return err
	}

	if err = h.dispatcher.Dispatch(ctx, orderID); err != nil {
		switch {
		case errors.Is(err, ErrOrderLocked),
			errors.Is(err, ErrNoCourierAvailable),
			errors.Is(err, ErrAddressUnresolved):
			h.logger.Info("reassignment deferred", "order_id", orderID, "reason", err)
		case errors.Is(err, ErrReassignmentsExhausted):
			h.logger.Warn("order left undispatched", "order_id", orderID, "reason", err)
		default:
			h.logger.Error("reassignment failed", "order_id", orderID, "error", err)
		}
	}

	return nil
}

// reject persists the decline and reports whether this call won the row.
func (h *RejectAssignmentCommandHandler) reject(ctx context.Context, cmd RejectAssignmentCommand) (kernel.UUID, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	a, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return kernel.UUID{}, false, err
	}

	if !a.CourierID().IsEqual(cmd.CourierID()) {
		return kernel.UUID{}, false, errs.NewValueIsInvalidErrorWithCause("courier",
			fmt.Errorf("assignment %s was not offered to courier %s", a.ID(), cmd.CourierID()))
	}

	if err = a.Reject(); err != nil {
		return kernel.UUID{}, false, err
	}

	if err = assignmentRepo.UpdateWithExpectedStatus(ctx, a, assignment.Offered); err != nil {
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			// the expiry sweep won the row and already handles reassignment
			return kernel.UUID{}, false, nil
		}
		return kernel.UUID{}, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, false, err
	}

	return a.OrderID(), true, nil
}
