package queries

import (
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/guard"
)

var ErrGetOpenShiftsQueryIsNotConstructed = errors.New(
	"GetOpenShiftsQuery must be created via NewGetOpenShiftsQuery constructor",
)

// GetOpenShiftsQuery retrieves every currently open shift together with the
// courier working it. Overdue shifts are flagged so the operator can see
// what the watchdog is about to close.
type GetOpenShiftsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenShiftsQuery creates a query for open shifts.
// This is a parameterless query.
func NewGetOpenShiftsQuery() GetOpenShiftsQuery {
	return GetOpenShiftsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenShiftsQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenShiftsQueryIsNotConstructed)
}

// GetOpenShiftsQueryResponse represents one open shift.
type GetOpenShiftsQueryResponse struct {
	ID            kernel.UUID
	CourierID     kernel.UUID
	CourierName   string
	OpenedAt      time.Time
	ExpectedEndAt time.Time
	Overdue       bool
}
