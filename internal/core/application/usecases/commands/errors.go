package commands

import "errors"

// Soft dispatch outcomes. None of these is fatal: jobs filter them with
// errors.Is, log, and rely on the next trigger or sweep.
var (
	// ErrOrderLocked signals that another worker holds the dispatch lease
	// for the order. Retryable; the holder is already handling it.
	ErrOrderLocked = errors.New("order is locked by another dispatch attempt")

	// ErrNoCourierAvailable signals that no eligible courier exists for the
	// order right now. The order stays undispatched for a later retry pass.
	ErrNoCourierAvailable = errors.New("no courier available")

	// ErrReassignmentsExhausted signals that the order ran out of
	// reassignment attempts. The order stays undispatched and surfaces
	// through the undispatched-orders query for manual intervention.
	ErrReassignmentsExhausted = errors.New("reassignment attempts exhausted")

	// ErrAddressUnresolved signals that the order's delivery address has no
	// coordinates or no resolved zone, so there is no drop point to dispatch
	// against. The order stays undispatched until the address is relocated.
	ErrAddressUnresolved = errors.New("delivery address is not resolved")
)
