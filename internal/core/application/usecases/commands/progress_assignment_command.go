package commands

import (
	"errors"
	"fmt"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

var ErrProgressAssignmentCommandIsNotConstructed = errors.New(
	"ProgressAssignmentCommand must be created via NewProgressAssignmentCommand constructor",
)

// ProgressAssignmentCommand represents a courier-reported progress update
// on an accepted assignment: pickup (in_transit) or completion (delivered).
type ProgressAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	target       assignment.Status

	guard guard.ConstructorGuard
}

// NewProgressAssignmentCommand creates a command for courier progress
// reporting. Only in_transit and delivered are valid targets.
func NewProgressAssignmentCommand(assignmentID kernel.UUID, target assignment.Status) (ProgressAssignmentCommand, error) {
	cmd := ProgressAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAssignmentID(assignmentID),
		cmd.setTarget(target),
	); err != nil {
		return ProgressAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProgressAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrProgressAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the assignment being progressed.
func (c ProgressAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Target returns the reported assignment status.
func (c ProgressAssignmentCommand) Target() assignment.Status {
	return c.target
}

func (c *ProgressAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *ProgressAssignmentCommand) setTarget(target assignment.Status) error {
	if target != assignment.InTransit && target != assignment.Delivered {
		return errs.NewValueIsInvalidErrorWithCause("target status",
			fmt.Errorf("%s is not a courier-reportable status", target))
	}

	c.target = target
	return nil
}
