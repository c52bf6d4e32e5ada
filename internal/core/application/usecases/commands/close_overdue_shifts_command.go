package commands

import (
	"errors"

	"geodispatch/internal/pkg/guard"
)

var ErrCloseOverdueShiftsCommandIsNotConstructed = errors.New(
	"CloseOverdueShiftsCommand must be created via NewCloseOverdueShiftsCommand constructor",
)

// CloseOverdueShiftsCommand represents one pass of the shift watchdog:
// force-close every open shift whose expected end time has passed.
type CloseOverdueShiftsCommand struct {
	guard guard.ConstructorGuard
}

// NewCloseOverdueShiftsCommand creates a command for the watchdog sweep.
func NewCloseOverdueShiftsCommand() CloseOverdueShiftsCommand {
	return CloseOverdueShiftsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CloseOverdueShiftsCommand) Validate() error {
	return c.guard.Validate(ErrCloseOverdueShiftsCommandIsNotConstructed)
}
