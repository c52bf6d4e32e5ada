package queries

import (
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/guard"
)

var ErrGetUndispatchedOrdersQueryIsNotConstructed = errors.New(
	"GetUndispatchedOrdersQuery must be created via NewGetUndispatchedOrdersQuery constructor",
)

// GetUndispatchedOrdersQuery retrieves every order waiting for a courier:
// confirmed or ready for delivery, with no courier pinned yet. This is the
// operator's view of the dispatch backlog.
type GetUndispatchedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUndispatchedOrdersQuery creates a query for the dispatch backlog.
// This is a parameterless query.
func NewGetUndispatchedOrdersQuery() GetUndispatchedOrdersQuery {
	return GetUndispatchedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUndispatchedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndispatchedOrdersQueryIsNotConstructed)
}

// GetUndispatchedOrdersQueryResponse represents one order in the dispatch
// backlog. OfferAttempts counts every assignment ever created for the
// order, which tells the operator how close it is to exhausting
// reassignment.
type GetUndispatchedOrdersQueryResponse struct {
	ID            kernel.UUID
	StoreID       kernel.UUID
	Status        string
	CreatedAt     time.Time
	OfferAttempts int
}
