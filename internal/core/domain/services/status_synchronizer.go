package services

import (
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
)

// StatusSynchronizer is a domain service that maps assignment-state changes
// onto order-state transitions.
//
// Mapping rules:
//   - assignment in_transit => order on_the_way
//   - assignment delivered  => order delivered
//
// The mapping is idempotent and strictly forward: a relay arriving after
// the order already reached (or passed) the mapped status, or after the
// order was cancelled, is dropped without error. This makes the two-step
// assignment-then-order sequence safe under at-least-once retries.
type StatusSynchronizer struct{}

// NewStatusSynchronizer creates a new StatusSynchronizer instance.
func NewStatusSynchronizer() StatusSynchronizer {
	return StatusSynchronizer{}
}

// getOrderStatusMapping returns the assignment statuses that project onto
// an order status. Offer lifecycle statuses have no order-side effect.
func getOrderStatusMapping() map[assignment.Status]order.Status {
	//nolint:exhaustive // only progression statuses move the order
	return map[assignment.Status]order.Status{
		assignment.InTransit: order.OnTheWay,
		assignment.Delivered: order.Delivered,
	}
}

// Sync applies an observed assignment status to the order, attributing the
// change to the courier that reported it. Status changes recorded on the
// order carry the courier actor tag into the history trail.
//
// Returns nil both on a successful transition and on an idempotent drop.
func (s StatusSynchronizer) Sync(
	o *order.Order,
	assignmentStatus assignment.Status,
	courierID kernel.UUID,
	now time.Time,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	target, mapped := getOrderStatusMapping()[assignmentStatus]
	if !mapped {
		return nil
	}

	if o.Status() == target {
		return nil
	}

	// A late relay for an order that already moved past the target (or was
	// cancelled) is dropped, never rolled back.
	if err := o.Status().ValidateAdvanceTo(target); err != nil {
		return nil
	}

	return o.AdvanceTo(target, order.CourierActor(courierID), "courier reported "+assignmentStatus.String(), now)
}
