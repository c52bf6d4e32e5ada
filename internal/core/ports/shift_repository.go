package ports

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/shift"
)

// ShiftRepository defines the persistence contract for shift aggregates.
type ShiftRepository interface {
	// Add persists a new shift aggregate to storage.
	Add(ctx context.Context, aggregate *shift.Shift) error

	// Update persists changes to an existing shift aggregate.
	Update(ctx context.Context, aggregate *shift.Shift) error

	// Get retrieves a shift aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shift.Shift, error)

	// GetAllOpen retrieves every shift that is still open.
	GetAllOpen(ctx context.Context) ([]*shift.Shift, error)

	// GetOverdueOpen retrieves open shifts whose expected end time has
	// passed. Used by the shift watchdog sweep.
	GetOverdueOpen(ctx context.Context, now time.Time) ([]*shift.Shift, error)
}
