package commands

import (
	"errors"
	"fmt"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a store- or user-driven order status
// change along the happy path: confirmation, readiness or cancellation.
// Courier-driven progression (on_the_way, delivered) flows through
// ProgressAssignmentCommand instead.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actorID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order to the
// target status on behalf of the given actor. Only processing,
// ready_for_delivery and cancelled are valid targets.
func NewAdvanceOrderCommand(orderID kernel.UUID, target order.Status, actorID kernel.UUID, note string) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the order to advance.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status to advance to.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// ActorID returns the user performing the change.
func (c AdvanceOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional history note.
func (c AdvanceOrderCommand) Note() string {
	return c.note
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if target != order.Processing && target != order.ReadyForDelivery && target != order.Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("%s cannot be requested directly", target))
	}

	c.target = target
	return nil
}

func (c *AdvanceOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
