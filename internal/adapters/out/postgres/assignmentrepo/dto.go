// Package assignmentrepo persists courier assignments. Every assignment the
// dispatcher ever created stays in this table; the live subset is the one
// the dispatch and expiry paths race over, so status is resolved with
// compare-and-set writes rather than last-write-wins updates.
package assignmentrepo

import (
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	CourierID  uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(32);index"`
	OfferedAt  time.Time
	ExpiresAt  time.Time `gorm:"index"`
	AcceptedAt *time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		CourierID:  aggregate.CourierID().Bytes(),
		Status:     aggregate.Status().String(),
		OfferedAt:  aggregate.OfferedAt(),
		ExpiresAt:  aggregate.ExpiresAt(),
		AcceptedAt: aggregate.AcceptedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	status, err := assignment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, courierID, status, dto.OfferedAt, dto.ExpiresAt, dto.AcceptedAt)
}
