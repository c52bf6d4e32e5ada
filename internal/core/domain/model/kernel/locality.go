package kernel

import (
	"errors"
	"fmt"

	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

// ErrLocalityIsNotConstructed is returned when attempting to use an
// improperly initialized Locality. Localities must be created via NewLocality.
var ErrLocalityIsNotConstructed = errs.NewValueIsRequiredError(
	"locality must be created via NewLocality constructor")

// Locality is the city/region/country reference triple a zone resolves to.
// It travels with the zone so callers can denormalize all geographic
// references of an address atomically with the zone reference itself.
type Locality struct {
	cityID    UUID
	regionID  UUID
	countryID UUID
	guard     guard.ConstructorGuard
}

// NewLocality creates a Locality from its three references.
// All three identifiers must be valid UUIDs.
func NewLocality(cityID, regionID, countryID UUID) (Locality, error) {
	if err := errors.Join(cityID.Validate(), regionID.Validate(), countryID.Validate()); err != nil {
		return Locality{}, errs.NewValueIsInvalidErrorWithCause("locality", err)
	}

	return Locality{
		cityID:    cityID,
		regionID:  regionID,
		countryID: countryID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Locality was created through NewLocality.
func (l Locality) Validate() error {
	return l.guard.Validate(ErrLocalityIsNotConstructed)
}

// CityID returns the city reference.
func (l Locality) CityID() UUID {
	return l.cityID
}

// RegionID returns the region reference.
func (l Locality) RegionID() UUID {
	return l.regionID
}

// CountryID returns the country reference.
func (l Locality) CountryID() UUID {
	return l.countryID
}

// String returns a human-readable representation for logging.
func (l Locality) String() string {
	return fmt.Sprintf("Locality(city=%s,region=%s,country=%s)", l.cityID, l.regionID, l.countryID)
}
