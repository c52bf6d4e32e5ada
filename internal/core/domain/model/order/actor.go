package order

import (
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
)

// Actor tags who caused an order status change. It is either a user or
// courier identifier, or one of the system tags for automated transitions.
// The tag is written verbatim into the status history.
type Actor string

const (
	// SystemTimeoutActor marks cancellations performed by the stale-order timeout.
	SystemTimeoutActor Actor = "system:timeout"

	// SystemDispatchActor marks changes performed by the dispatch engine.
	SystemDispatchActor Actor = "system:dispatch"
)

// UserActor builds the actor tag for a change made by an end user.
func UserActor(id kernel.UUID) Actor {
	return Actor("user:" + id.String())
}

// CourierActor builds the actor tag for a change reported by a courier.
func CourierActor(id kernel.UUID) Actor {
	return Actor("courier:" + id.String())
}

// Validate ensures the actor tag is present.
func (a Actor) Validate() error {
	if a == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

// String returns the raw actor tag.
func (a Actor) String() string {
	return string(a)
}
