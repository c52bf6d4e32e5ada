package commands

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/services"
)

// ProgressAssignmentCommandHandler handles courier-reported progress. The
// assignment transition and the mapped order transition are each a
// compare-and-set write; the synchronizer's idempotency makes the two-step
// sequence safe when a retry replays either half.
type ProgressAssignmentCommandHandler struct {
	uowFactory   AssignmentUoWFactory
	synchronizer services.StatusSynchronizer
}

// NewProgressAssignmentCommandHandler creates a handler for courier
// progress reporting.
func NewProgressAssignmentCommandHandler(uowFactory AssignmentUoWFactory) ProgressAssignmentCommandHandler {
	return ProgressAssignmentCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: services.NewStatusSynchronizer(),
	}
}

// Handle processes the progress command: transitions the assignment, then
// relays the change into the order status with a history row per change.
func (h *ProgressAssignmentCommandHandler) Handle(ctx context.Context, cmd ProgressAssignmentCommand) error {
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

	assignmentRepo := uow.AssignmentRepository()
	a, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}

	expected := a.Status()
	switch cmd.Target() {
	case assignment.InTransit:
		err = a.MarkInTransit()
	default:
		err = a.MarkDelivered()
	}
	if err != nil {
		return err
	}

	if err = assignmentRepo.UpdateWithExpectedStatus(ctx, a, expected); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, a.OrderID())
	if err != nil {
		return err
	}

	expectedOrderStatus := o.Status()
	if err = h.synchronizer.Sync(o, a.Status(), a.CourierID(), time.Now()); err != nil {
		return err
	}

	if o.Status() != expectedOrderStatus {
		if err = orderRepo.UpdateWithExpectedStatus(ctx, o, expectedOrderStatus); err != nil {
			return err
		}

		if err = appendHistory(ctx, orderRepo, o); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
