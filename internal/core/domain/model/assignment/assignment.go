package assignment

import (
	"errors"
	"fmt"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
)

var (
	// ErrAssignmentIsNotConstructed is returned when an Assignment instance was
	// not created through the NewAssignment or RestoreAssignment factory methods.
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")

	// ErrOfferNotAcceptable is returned when an acceptance arrives for an
	// assignment that is no longer offered, including offers that expired
	// before the acceptance was processed. First writer wins.
	ErrOfferNotAcceptable = errors.New("offer is no longer acceptable")
)

// Assignment represents one offer of an order to a specific courier.
// Assignments are never deleted: reassignment supersedes an expired or
// rejected row with a new one, so the full offer history of an order stays
// readable.
//
// Assignment follows these invariants:
//   - Must have valid identifiers for itself, its order and its courier
//   - expiresAt is strictly after offeredAt
//   - acceptedAt is set exactly once, on the offered to accepted transition
//   - Status transitions follow the rules encoded in Status
type Assignment struct {
	// id is the unique identifier for the assignment
	id kernel.UUID

	// orderID references the order being offered
	orderID kernel.UUID

	// courierID references the courier the offer targets
	courierID kernel.UUID

	// status represents the current state in the offer lifecycle
	status Status

	// offeredAt is when the offer was created
	offeredAt time.Time

	// expiresAt is when an unaccepted offer lapses
	expiresAt time.Time

	// acceptedAt is when the courier accepted, nil until acceptance
	acceptedAt *time.Time

	// isConstructed ensures the assignment was created via a constructor
	isConstructed bool
}

// NewAssignment creates a new offered Assignment with the given expiry window.
//
// Parameters:
//   - id: Unique identifier for the assignment
//   - orderID: The order being offered
//   - courierID: The targeted courier
//   - offeredAt: Offer creation time
//   - expiresAt: Offer expiry deadline, must be after offeredAt
//
// Returns the assignment in Offered status, or a validation error.
func NewAssignment(id, orderID, courierID kernel.UUID, offeredAt, expiresAt time.Time) (*Assignment, error) {
	a := &Assignment{
		status:        Offered,
		offeredAt:     offeredAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	if !expiresAt.After(offeredAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expires_at",
			fmt.Errorf("expiry %s is not after offer time %s", expiresAt, offeredAt))
	}

	return a, nil
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id, orderID, courierID kernel.UUID,
	status Status,
	offeredAt, expiresAt time.Time,
	acceptedAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		offeredAt:     offeredAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setCourierID(courierID),
		a.setStatus(status),
	); err != nil {
		return nil, err
	}

	if acceptedAt != nil {
		t := *acceptedAt
		a.acceptedAt = &t
	}

	return a, nil
}

// Validate ensures the Assignment instance was properly constructed.
func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}

	return nil
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the order this assignment offers.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// CourierID returns the courier this assignment targets.
func (a *Assignment) CourierID() kernel.UUID {
	return a.courierID
}

// Status returns the current status of the assignment.
func (a *Assignment) Status() Status {
	return a.status
}

// OfferedAt returns the offer creation time.
func (a *Assignment) OfferedAt() time.Time {
	return a.offeredAt
}

// ExpiresAt returns the offer expiry deadline.
func (a *Assignment) ExpiresAt() time.Time {
	return a.expiresAt
}

// AcceptedAt returns the acceptance time, or nil while unaccepted.
func (a *Assignment) AcceptedAt() *time.Time {
	if a.acceptedAt == nil {
		return nil
	}
	t := *a.acceptedAt
	return &t
}

// IsLive reports whether the assignment occupies the order's single live
// slot (offered, accepted or in transit).
func (a *Assignment) IsLive() bool {
	return a.status.IsLive()
}

// IsExpiredAt reports whether an offered assignment has outlived its expiry
// deadline at the given instant.
func (a *Assignment) IsExpiredAt(now time.Time) bool {
	return a.status == Offered && now.After(a.expiresAt)
}

// Accept transitions the assignment from Offered to Accepted and stamps
// acceptedAt. An acceptance arriving at or after the expiry deadline fails
// with ErrOfferNotAcceptable, as does acceptance of any non-offered row.
func (a *Assignment) Accept(now time.Time) error {
	if a.status != Offered || now.After(a.expiresAt) {
		return fmt.Errorf("%w: status %s, expires at %s",
			ErrOfferNotAcceptable, a.status, a.expiresAt)
	}

	a.status = Accepted
	a.acceptedAt = &now
	return nil
}

// Expire transitions an offered assignment to Expired. Expiring an already
// expired row is an idempotent no-op, so concurrent sweeps are safe.
func (a *Assignment) Expire() error {
	if a.status == Expired {
		return nil
	}
	if a.status != Offered {
		return a.invalidTransition(Expired)
	}

	a.status = Expired
	return nil
}

// Reject transitions an offered assignment to Rejected (courier declined).
func (a *Assignment) Reject() error {
	if a.status != Offered {
		return a.invalidTransition(Rejected)
	}

	a.status = Rejected
	return nil
}

// MarkInTransit transitions an accepted assignment to InTransit.
func (a *Assignment) MarkInTransit() error {
	if a.status != Accepted {
		return a.invalidTransition(InTransit)
	}

	a.status = InTransit
	return nil
}

// MarkDelivered transitions an in-transit assignment to Delivered.
func (a *Assignment) MarkDelivered() error {
	if a.status != InTransit {
		return a.invalidTransition(Delivered)
	}

	a.status = Delivered
	return nil
}

func (a *Assignment) invalidTransition(target Status) error {
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("cannot move assignment from %s to %s", a.status, target))
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	a.courierID = courierID
	return nil
}

func (a *Assignment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}
