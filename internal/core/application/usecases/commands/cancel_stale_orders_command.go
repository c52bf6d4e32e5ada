package commands

import (
	"errors"

	"geodispatch/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// CancelStaleOrdersCommand represents one pass of the pending-order timeout
// sweep: cancel orders that sat in pending status past the configured window.
type CancelStaleOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command for the timeout sweep.
func NewCancelStaleOrdersCommand() CancelStaleOrdersCommand {
	return CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}
