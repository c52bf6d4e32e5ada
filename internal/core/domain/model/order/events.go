package order

import (
	"time"

	"geodispatch/internal/core/domain/model/kernel"
)

// StatusChanged is the domain event recorded by the Order aggregate on
// every status transition, including creation. Handlers drain events via
// TakeEvents and append one history row per event; side effects such as
// realtime broadcasts subscribe to the same events instead of hooking into
// the mutation itself.
type StatusChanged struct {
	OrderID   kernel.UUID
	From      Status
	To        Status
	ChangedBy Actor
	Note      string
	ChangedAt time.Time
}

// HistoryRecord is one append-only row of the order status audit trail.
// Rows are created from StatusChanged events and never updated or deleted.
type HistoryRecord struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Status    Status
	ChangedAt time.Time
	ChangedBy Actor
	Note      string
}

// NewHistoryRecord builds a history row from a status change event.
func NewHistoryRecord(event StatusChanged) HistoryRecord {
	return HistoryRecord{
		ID:        kernel.NewUUID(),
		OrderID:   event.OrderID,
		Status:    event.To,
		ChangedAt: event.ChangedAt,
		ChangedBy: event.ChangedBy,
		Note:      event.Note,
	}
}
