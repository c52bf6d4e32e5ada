// Package order contains the Order aggregate: a linear status machine from
// pending to delivered with cancellation as an escape from any non-terminal
// state, a write-once courier reference, and an append-only audit trail fed
// by status change events drained from the aggregate.
package order
