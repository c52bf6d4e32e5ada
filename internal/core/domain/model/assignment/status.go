package assignment

import (
	"fmt"

	"geodispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an assignment (a courier offer).
//
// State transitions:
//
//	Offered ──> Accepted ──> InTransit ──> Delivered
//	   │
//	   ├──> Expired
//	   └──> Rejected
//
// Delivered is always terminal; Expired and Rejected are terminal for the
// assignment row itself, reassignment creates a new row for the order.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Offered is the initial status: the order was proposed to a courier
	// and awaits acceptance until the offer expires.
	Offered

	// Accepted indicates the courier accepted the offer before expiry.
	Accepted

	// InTransit indicates the courier picked the order up and is delivering.
	InTransit

	// Delivered indicates the courier completed the delivery. Terminal.
	Delivered

	// Expired indicates the offer lapsed unaccepted. Terminal for this row.
	Expired

	// Rejected indicates the courier declined the offer. Terminal for this row.
	Rejected
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Offered:   "offered",
		Accepted:  "accepted",
		InTransit: "in_transit",
		Delivered: "delivered",
		Expired:   "expired",
		Rejected:  "rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offered:   "offered",
		Accepted:  "accepted",
		InTransit: "in_transit",
		Delivered: "delivered",
		Expired:   "expired",
		Rejected:  "rejected",
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
		fmt.Errorf("%q is not a valid assignment status", raw))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsLive reports whether the status counts toward the one-live-assignment
// invariant: at most one assignment per order may be offered, accepted or
// in transit at any instant.
func (s Status) IsLive() bool {
	return s == Offered || s == Accepted || s == InTransit
}
