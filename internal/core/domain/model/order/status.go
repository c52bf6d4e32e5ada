package order

import (
	"fmt"

	"geodispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions (linear happy path, cancellation as an escape
// from any non-terminal state):
//
//	Pending ──> Processing ──> ReadyForDelivery ──> OnTheWay ──> Delivered
//	   │             │                │                 │
//	   └─────────────┴────────────────┴─────────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal; the status never moves backward.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// Orders in this status are waiting for store confirmation.
	Pending

	// Processing indicates the store confirmed the order and is preparing it.
	Processing

	// ReadyForDelivery indicates the order is packed and eligible for dispatch.
	ReadyForDelivery

	// OnTheWay indicates a courier picked up the order and is in transit.
	OnTheWay

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		Processing:       "processing",
		ReadyForDelivery: "ready_for_delivery",
		OnTheWay:         "on_the_way",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "pending",
		Processing:       "processing",
		ReadyForDelivery: "ready_for_delivery",
		OnTheWay:         "on_the_way",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// getStatusRanks returns the position of each status along the happy path.
// Cancelled has no rank: it is reachable from any non-terminal status and
// never part of forward ordering.
func getStatusRanks() map[Status]int {
	//nolint:exhaustive // Cancelled is an escape, not a step on the path
	return map[Status]int{
		Pending:          1,
		Processing:       2,
		ReadyForDelivery: 3,
		OnTheWay:         4,
		Delivered:        5,
	}
}

// ParseStatus converts a raw status string to a Status value.
// Returns an error for unknown values.
func ParseStatus(raw string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == raw {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", raw))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Processing, ReadyForDelivery, OnTheWay,
// Delivered, Cancelled. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAdvanceTo checks whether the status may transition to target
// without performing the transition.
//
// Rules enforced:
//   - terminal statuses (Delivered, Cancelled) admit no transitions
//   - Cancelled is reachable from any non-terminal status
//   - happy-path transitions only move forward along
//     Pending -> Processing -> ReadyForDelivery -> OnTheWay -> Delivered
//
// Transitioning to the current status is rejected here; callers that want
// idempotent no-op semantics must compare statuses before calling.
func (s Status) ValidateAdvanceTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if s.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is terminal and cannot transition to %s", s, target))
	}

	if target == Cancelled {
		return nil
	}

	ranks := getStatusRanks()
	if ranks[target] <= ranks[s] {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot move from %s to %s", s, target))
	}

	return nil
}
