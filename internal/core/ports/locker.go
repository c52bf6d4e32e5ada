package ports

import (
	"context"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
)

// OrderLocker provides a named, short-TTL exclusive lease keyed by order id,
// guarding the read-decide-write sequence of dispatch.
//
// Acquisition is non-blocking: a held lease reports acquired=false rather
// than waiting, and callers treat that as a retryable outcome, not an error.
// Leases expire on their own after the TTL, so a worker dying mid-dispatch
// cannot permanently block future attempts.
type OrderLocker interface {
	// Acquire tries to take the lease for the order. On success it returns
	// the release token and acquired=true; when another holder is active it
	// returns acquired=false with a nil error.
	Acquire(ctx context.Context, orderID kernel.UUID, ttl time.Duration) (token string, acquired bool, err error)

	// Release frees the lease if the token still matches the holder.
	// Releasing an expired or stolen lease is a silent no-op.
	Release(ctx context.Context, orderID kernel.UUID, token string) error
}
