// Package ports defines the driven-side interfaces of the dispatch engine:
// repositories, the unit of work, the dispatch lease, and the outbound
// notification channels. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"geodispatch/internal/core/domain/model/courier"
	"geodispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// The shift and live-assignment projections are populated from the
	// shift and assignment tables at read time.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves couriers that are online, on an open shift
	// and under their concurrent-assignment limit. The candidate selector
	// re-checks availability in memory and applies ranking and exclusions.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
