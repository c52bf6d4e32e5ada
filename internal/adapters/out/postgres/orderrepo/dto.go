// Package orderrepo persists the order aggregate and its append-only status
// history. It maps between domain entities and their relational
// representation, keeping status values as the same snake_case strings the
// API exposes so raw queries stay readable.
package orderrepo

import (
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and courier assignment are indexed together because the dispatch
// sweep filters on exactly that pair.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StoreID   uuid.UUID  `gorm:"type:uuid;index"`
	AddressID uuid.UUID  `gorm:"type:uuid"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(32);index:idx_orders_dispatch"`
	CreatedAt time.Time  `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// HistoryDTO represents one row of the append-only status history.
// Rows are never updated or deleted.
type HistoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"type:varchar(32)"`
	ChangedAt time.Time
	ChangedBy string `gorm:"type:varchar(64)"`
	Note      string
}

// TableName specifies the database table name for history rows.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:        aggregate.ID().Bytes(),
		StoreID:   aggregate.StoreID().Bytes(),
		AddressID: aggregate.AddressID().Bytes(),
		CourierID: courierID,
		Status:    aggregate.Status().String(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	addressID, err := kernel.UUIDFromBytes(dto.AddressID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, storeID, addressID, courierID, status, dto.CreatedAt)
}

func historyFromDomain(record order.HistoryRecord) HistoryDTO {
	return HistoryDTO{
		ID:        record.ID.Bytes(),
		OrderID:   record.OrderID.Bytes(),
		Status:    record.Status.String(),
		ChangedAt: record.ChangedAt,
		ChangedBy: record.ChangedBy.String(),
		Note:      record.Note,
	}
}

func historyToDomain(dto HistoryDTO) (order.HistoryRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryRecord{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.HistoryRecord{}, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return order.HistoryRecord{}, err
	}

	return order.HistoryRecord{
		ID:        id,
		OrderID:   orderID,
		Status:    status,
		ChangedAt: dto.ChangedAt,
		ChangedBy: order.Actor(dto.ChangedBy),
		Note:      dto.Note,
	}, nil
}
