// Package shiftrepo persists courier shifts.
package shiftrepo

import (
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/shift"

	"github.com/google/uuid"
)

// ShiftDTO represents the database structure for persisting shifts.
type ShiftDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID     uuid.UUID `gorm:"type:uuid;index"`
	TerminalID    uuid.UUID `gorm:"type:uuid"`
	OpenedAt      time.Time
	ExpectedEndAt time.Time `gorm:"index"`
	IsOpen        bool      `gorm:"index"`
	ClosedAt      *time.Time
}

// TableName specifies the database table name for shift entities.
func (ShiftDTO) TableName() string {
	return "shifts"
}

func fromDomain(aggregate *shift.Shift) ShiftDTO {
	return ShiftDTO{
		ID:            aggregate.ID().Bytes(),
		CourierID:     aggregate.CourierID().Bytes(),
		TerminalID:    aggregate.TerminalID().Bytes(),
		OpenedAt:      aggregate.OpenedAt(),
		ExpectedEndAt: aggregate.ExpectedEndAt(),
		IsOpen:        aggregate.IsOpen(),
		ClosedAt:      aggregate.ClosedAt(),
	}
}

func toDomain(dto ShiftDTO) (*shift.Shift, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return nil, err
	}

	terminalID, err := kernel.UUIDFromBytes(dto.TerminalID[:])
	if err != nil {
		return nil, err
	}

	return shift.RestoreShift(
		id, courierID, terminalID, dto.OpenedAt, dto.ExpectedEndAt, dto.IsOpen, dto.ClosedAt)
}
