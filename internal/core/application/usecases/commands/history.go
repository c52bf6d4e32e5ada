package commands

import (
	"context"

	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/ports"
)

// appendHistory drains the order's status change events and appends one
// history row per change inside the caller's transaction. Exactly one row
// per observed status change, including the creation entry.
func appendHistory(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
	changes := o.TakeEvents()
	if len(changes) == 0 {
		return nil
	}

	records := make([]order.HistoryRecord, 0, len(changes))
	for _, change := range changes {
		records = append(records, order.NewHistoryRecord(change))
	}

	return repo.AppendHistory(ctx, records)
}
