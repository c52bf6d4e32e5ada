package ports

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status history.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateWithExpectedStatus persists changes to an order only if its
	// stored status still equals expected (compare-and-set). Returns
	// ErrConcurrentUpdate when another writer changed the row first.
	UpdateWithExpectedStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllDispatchable retrieves orders eligible for a dispatch attempt:
	// confirmed or ready for delivery, with no courier assigned yet.
	// Used by the periodic dispatch retry sweep.
	GetAllDispatchable(ctx context.Context) ([]*order.Order, error)

	// GetStalePending retrieves orders still pending that were created
	// before the given cutoff. Used by the stale-order timeout sweep.
	GetStalePending(ctx context.Context, createdBefore time.Time) ([]*order.Order, error)

	// AppendHistory appends status history rows. History is append-only:
	// rows are never updated or deleted after creation.
	AppendHistory(ctx context.Context, records []order.HistoryRecord) error

	// GetHistory retrieves the full status history of an order in
	// chronological order.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]order.HistoryRecord, error)
}
