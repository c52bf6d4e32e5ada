package ports

import (
	"context"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
// Dispatch reads it as the pickup-coordinates provider.
type StoreRepository interface {
	// Add persists a new store aggregate to storage.
	Add(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*store.Store, error)
}
