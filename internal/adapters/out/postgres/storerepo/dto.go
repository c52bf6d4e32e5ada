// Package storerepo persists stores. Stores are reference data for the
// dispatcher; only the pickup location really matters to it.
package storerepo

import (
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/store"

	"github.com/google/uuid"
)

// StoreDTO represents the database structure for persisting stores.
type StoreDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	LocationLat float64
	LocationLon float64
}

// TableName specifies the database table name for store entities.
func (StoreDTO) TableName() string {
	return "stores"
}

func fromDomain(aggregate *store.Store) StoreDTO {
	return StoreDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		LocationLat: aggregate.Location().Lat(),
		LocationLon: aggregate.Location().Lon(),
	}
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLon)
	if err != nil {
		return nil, err
	}

	return store.NewStore(id, dto.Name, location)
}
