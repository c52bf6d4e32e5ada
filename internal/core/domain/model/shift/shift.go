package shift

import (
	"errors"
	"fmt"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

var (
	// ErrShiftIsNotConstructed is returned when using an improperly initialized Shift.
	ErrShiftIsNotConstructed = errors.New("Shift must be created via OpenShift constructor")
)

// Shift represents a courier's bounded work session on a terminal.
//
// Invariants:
//   - expectedEndAt is after openedAt
//   - closedAt is written exactly once, when isOpen flips from true to false
//   - closing an already-closed shift is an idempotent no-op
type Shift struct {
	// id uniquely identifies the shift
	id kernel.UUID
	// courierID references the courier working the shift
	courierID kernel.UUID
	// terminalID references the terminal/device the shift was opened on
	terminalID kernel.UUID
	// openedAt is when the shift started
	openedAt time.Time
	// expectedEndAt is when the shift should have ended
	expectedEndAt time.Time
	// isOpen reports whether the shift is still running
	isOpen bool
	// closedAt is when the shift was closed, nil while open
	closedAt *time.Time
	// guard ensures the shift was properly constructed
	guard guard.ConstructorGuard
}

// OpenShift creates a new open Shift for a courier on a terminal.
func OpenShift(id, courierID, terminalID kernel.UUID, openedAt, expectedEndAt time.Time) (*Shift, error) {
	s := &Shift{
		openedAt:      openedAt,
		expectedEndAt: expectedEndAt,
		isOpen:        true,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCourierID(courierID),
		s.setTerminalID(terminalID),
	); err != nil {
		return nil, err
	}

	if !expectedEndAt.After(openedAt) {
		return nil, errs.NewValueIsInvalidErrorWithCause("expected_end_at",
			fmt.Errorf("expected end %s is not after opening %s", expectedEndAt, openedAt))
	}

	return s, nil
}

// RestoreShift reconstructs a Shift from persistent storage.
func RestoreShift(
	id, courierID, terminalID kernel.UUID,
	openedAt, expectedEndAt time.Time,
	isOpen bool,
	closedAt *time.Time,
) (*Shift, error) {
	s := &Shift{
		openedAt:      openedAt,
		expectedEndAt: expectedEndAt,
		isOpen:        isOpen,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCourierID(courierID),
		s.setTerminalID(terminalID),
	); err != nil {
		return nil, err
	}

	if closedAt != nil {
		t := *closedAt
		s.closedAt = &t
	}

	return s, nil
}

// Validate ensures the Shift was created through a constructor.
func (s *Shift) Validate() error {
	if s == nil {
		return ErrShiftIsNotConstructed
	}

	return s.guard.Validate(ErrShiftIsNotConstructed)
}

// ID returns the shift's unique identifier.
func (s *Shift) ID() kernel.UUID {
	return s.id
}

// CourierID returns the courier working the shift.
func (s *Shift) CourierID() kernel.UUID {
	return s.courierID
}

// TerminalID returns the terminal the shift was opened on.
func (s *Shift) TerminalID() kernel.UUID {
	return s.terminalID
}

// OpenedAt returns the shift start time.
func (s *Shift) OpenedAt() time.Time {
	return s.openedAt
}

// ExpectedEndAt returns when the shift should have ended.
func (s *Shift) ExpectedEndAt() time.Time {
	return s.expectedEndAt
}

// IsOpen reports whether the shift is still running.
func (s *Shift) IsOpen() bool {
	return s.isOpen
}

// ClosedAt returns the closing time, or nil while the shift is open.
func (s *Shift) ClosedAt() *time.Time {
	if s.closedAt == nil {
		return nil
	}
	t := *s.closedAt
	return &t
}

// IsOverdueAt reports whether an open shift has outlived its expected end.
func (s *Shift) IsOverdueAt(now time.Time) bool {
	return s.isOpen && s.expectedEndAt.Before(now)
}

// Close closes the shift at the given instant, writing closedAt exactly
// once. Closing an already-closed shift is an idempotent no-op, so the
// watchdog sweep and manual closure can race safely. The same primitive
// serves both paths.
func (s *Shift) Close(now time.Time) {
	if !s.isOpen {
		return
	}

	s.isOpen = false
	s.closedAt = &now
}

func (s *Shift) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shift) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	s.courierID = courierID
	return nil
}

func (s *Shift) setTerminalID(terminalID kernel.UUID) error {
	if err := terminalID.Validate(); err != nil {
		return err
	}
	s.terminalID = terminalID
	return nil
}
