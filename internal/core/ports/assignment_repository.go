package ports

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates. Assignments are never deleted; reassignment supersedes a row
// with a new one.
type AssignmentRepository interface {
	// Add persists a new assignment aggregate to storage.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// UpdateWithExpectedStatus persists changes to an assignment only if
	// its stored status still equals expected (compare-and-set). Returns
	// ErrConcurrentUpdate when another writer changed the row first; this
	// is how an acceptance racing an expiry sweep resolves to exactly one
	// winner.
	UpdateWithExpectedStatus(ctx context.Context, aggregate *assignment.Assignment, expected assignment.Status) error

	// Get retrieves an assignment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetLiveByOrder retrieves the order's live assignment (offered,
	// accepted or in transit). Returns an object-not-found error when the
	// order has no live assignment.
	GetLiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// GetExpiredOffered retrieves assignments still offered whose expiry
	// deadline has passed. Used by the offer expiry sweep.
	GetExpiredOffered(ctx context.Context, now time.Time) ([]*assignment.Assignment, error)

	// GetOfferedCourierIDs retrieves the ids of every courier the order
	// was ever offered to without acceptance. Used as the exclusion set
	// for reassignment.
	GetOfferedCourierIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)

	// CountByOrder counts all assignment rows for the order, bounding the
	// number of reassignment attempts.
	CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error)
}
