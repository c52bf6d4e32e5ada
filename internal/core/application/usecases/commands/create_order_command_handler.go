package commands

import (
	"context"
	"time"

	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in pending status, appends the creation entry to the
// status history, and broadcasts the new order to the store's channel after
// commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  events.Publisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher events.Publisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command. The order row and its
// creation history entry are written in the same transaction; the realtime
// broadcast happens only after a successful commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.StoreID(), cmd.AddressID(),
		order.UserActor(cmd.CustomerID()), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	if err = appendHistory(ctx, orderRepo, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID: newOrder.ID(),
		StoreID: newOrder.StoreID(),
	})

	return nil
}
