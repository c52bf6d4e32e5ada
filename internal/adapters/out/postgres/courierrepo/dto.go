// Package courierrepo persists the courier aggregate. The courier row holds
// only courier-owned state; the open-shift flag and live-assignment count
// the candidate selector filters on are projections joined in at read time
// from the shifts and assignments tables.
package courierrepo

import (
	"time"

	"geodispatch/internal/core/domain/model/courier"
	"geodispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Location columns are nullable: a courier that never reported
// in has no position.
type CourierDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string
	Online               bool `gorm:"index"`
	LocationLat          *float64
	LocationLon          *float64
	LastActiveAt         time.Time
	MaxActiveAssignments int
	DeviceToken          string
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// courierRow is the read-side projection: the courier columns plus the
// shift and assignment facts needed for availability filtering.
type courierRow struct {
	CourierDTO
	HasOpenShift      bool
	ActiveAssignments int
}

func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lat, lon *float64
	if loc := aggregate.Location(); loc != nil {
		la, lo := loc.Lat(), loc.Lon()
		lat, lon = &la, &lo
	}

	return CourierDTO{
		ID:                   aggregate.ID().Bytes(),
		Name:                 aggregate.Name(),
		Online:               aggregate.IsOnline(),
		LocationLat:          lat,
		LocationLon:          lon,
		LastActiveAt:         aggregate.LastActiveAt(),
		MaxActiveAssignments: aggregate.MaxActiveAssignments(),
		DeviceToken:          aggregate.DeviceToken(),
	}
}

func toDomain(row courierRow) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if row.LocationLat != nil && row.LocationLon != nil {
		point, pointErr := kernel.NewGeoPoint(*row.LocationLat, *row.LocationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(
		id, row.Name, row.Online, location, row.LastActiveAt,
		row.MaxActiveAssignments, row.DeviceToken,
		row.HasOpenShift, row.ActiveAssignments)
}
