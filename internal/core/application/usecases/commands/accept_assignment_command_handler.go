package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"
)

// AcceptAssignmentCommandHandler handles courier acceptance of an offer.
//
// Acceptance races the expiry sweep; the compare-and-set on the assignment
// status makes the first writer win. An acceptance that loses the race
// fails with assignment.ErrOfferNotAcceptable and the courier sees the
// offer as gone.
//
// Acceptance pins the courier on the order (the first and only write of the
// order's courier reference) but does not advance the order status.
type AcceptAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAcceptAssignmentCommandHandler creates a handler for offer acceptance.
func NewAcceptAssignmentCommandHandler(uowFactory AssignmentUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the acceptance command.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
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

	if !a.CourierID().IsEqual(cmd.CourierID()) {
		return errs.NewValueIsInvalidErrorWithCause("courier",
			fmt.Errorf("assignment %s was not offered to courier %s", a.ID(), cmd.CourierID()))
	}

	if err = a.Accept(time.Now()); err != nil {
		return err
	}

	if err = assignmentRepo.UpdateWithExpectedStatus(ctx, a, assignment.Offered); err != nil {
		if errors.Is(err, ports.ErrConcurrentUpdate) {
			return fmt.Errorf("%w: offer expired first", assignment.ErrOfferNotAcceptable)
		}
		return err
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, a.OrderID())
	if err != nil {
		return err
	}

	if err = o.AssignCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
