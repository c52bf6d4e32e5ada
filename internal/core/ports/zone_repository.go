package ports

import (
	"context"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for zone aggregates.
type ZoneRepository interface {
	// Add persists a new zone aggregate to storage.
	Add(ctx context.Context, aggregate *zone.Zone) error

	// Update persists changes to an existing zone aggregate.
	Update(ctx context.Context, aggregate *zone.Zone) error

	// Get retrieves a zone aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*zone.Zone, error)

	// GetAllActive retrieves every active zone for point-in-polygon
	// resolution. Zone counts are moderate; the resolver evaluates the
	// list linearly.
	GetAllActive(ctx context.Context) ([]*zone.Zone, error)
}
