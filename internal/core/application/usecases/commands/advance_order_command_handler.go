package commands

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/order"
)

// AdvanceOrderCommandHandler handles user- and store-driven order status
// changes. The update is a compare-and-set against the status the order was
// read with, so a racing automated transition (timeout cancellation,
// courier progression) makes this attempt fail instead of silently
// overwriting it.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for order advancement.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advancement command: loads the order, applies the
// domain transition, and persists the new status together with its history
// row in one transaction.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := o.Status()
	if err = o.AdvanceTo(cmd.Target(), order.UserActor(cmd.ActorID()), cmd.Note(), time.Now()); err != nil {
		return err
	}

	if o.Status() == expected {
		return nil
	}

	if err = orderRepo.UpdateWithExpectedStatus(ctx, o, expected); err != nil {
		return err
	}

	if err = appendHistory(ctx, orderRepo, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
