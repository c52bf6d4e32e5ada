package ports

import (
	"context"

	"geodispatch/internal/core/domain/model/address"
	"geodispatch/internal/core/domain/model/kernel"
)

// AddressRepository defines the persistence contract for address aggregates.
// The address row carries the denormalized zone resolution; the repository
// writes the point and all resolution fields in one update.
type AddressRepository interface {
	// Add persists a new address aggregate to storage.
	Add(ctx context.Context, aggregate *address.Address) error

	// Update persists changes to an existing address aggregate.
	Update(ctx context.Context, aggregate *address.Address) error

	// Get retrieves an address aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*address.Address, error)
}
