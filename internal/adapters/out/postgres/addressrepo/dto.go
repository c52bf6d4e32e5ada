// Package addressrepo persists delivery addresses together with their
// resolution cache. Coordinates and the zone/locality columns always change
// in the same write, so a stored address never pairs a point with a stale
// resolution.
package addressrepo

import (
	"geodispatch/internal/core/domain/model/address"
	"geodispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressDTO represents the database structure for persisting addresses.
// Zone and locality columns are null until resolution succeeds.
type AddressDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerKind   string    `gorm:"type:varchar(16);index:idx_addresses_owner"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index:idx_addresses_owner"`
	LocationLat *float64
	LocationLon *float64
	ZoneID      *uuid.UUID `gorm:"type:uuid;index"`
	CityID      *uuid.UUID `gorm:"type:uuid"`
	RegionID    *uuid.UUID `gorm:"type:uuid"`
	CountryID   *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for address entities.
func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(aggregate *address.Address) AddressDTO {
	dto := AddressDTO{
		ID:        aggregate.ID().Bytes(),
		OwnerKind: aggregate.Owner().Kind().String(),
		OwnerID:   aggregate.Owner().ID().Bytes(),
	}

	if point := aggregate.Point(); point != nil {
		lat, lon := point.Lat(), point.Lon()
		dto.LocationLat, dto.LocationLon = &lat, &lon
	}

	if zoneID := aggregate.ZoneID(); zoneID != nil {
		raw := zoneID.Bytes()
		dto.ZoneID = &raw
	}

	if locality := aggregate.Locality(); locality != nil {
		cityID := locality.CityID().Bytes()
		regionID := locality.RegionID().Bytes()
		countryID := locality.CountryID().Bytes()
		dto.CityID, dto.RegionID, dto.CountryID = &cityID, &regionID, &countryID
	}

	return dto
}

func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerKind, err := address.ParseOwnerKind(dto.OwnerKind)
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	owner, err := address.NewOwnerRef(ownerKind, ownerID)
	if err != nil {
		return nil, err
	}

	var point *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLon != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLon)
		if pointErr != nil {
			return nil, pointErr
		}
		point = &p
	}

	var zoneID *kernel.UUID
	if dto.ZoneID != nil {
		zID, zoneErr := kernel.UUIDFromBytes((*dto.ZoneID)[:])
		if zoneErr != nil {
			return nil, zoneErr
		}
		zoneID = &zID
	}

	var locality *kernel.Locality
	if dto.CityID != nil && dto.RegionID != nil && dto.CountryID != nil {
		cityID, cityErr := kernel.UUIDFromBytes((*dto.CityID)[:])
		if cityErr != nil {
			return nil, cityErr
		}
		regionID, regionErr := kernel.UUIDFromBytes((*dto.RegionID)[:])
		if regionErr != nil {
			return nil, regionErr
		}
		countryID, countryErr := kernel.UUIDFromBytes((*dto.CountryID)[:])
		if countryErr != nil {
			return nil, countryErr
		}

		loc, localityErr := kernel.NewLocality(cityID, regionID, countryID)
		if localityErr != nil {
			return nil, localityErr
		}
		locality = &loc
	}

	return address.RestoreAddress(id, owner, point, zoneID, locality)
}
