package commands

import (
	"errors"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/guard"
)

var ErrUpdateAddressCoordinatesCommandIsNotConstructed = errors.New(
	"UpdateAddressCoordinatesCommand must be created via NewUpdateAddressCoordinatesCommand constructor",
)

// UpdateAddressCoordinatesCommand represents a geocoding result landing on
// an address: new coordinates that must be resolved to a zone and written
// together with the resolution cache.
type UpdateAddressCoordinatesCommand struct { //nolint:recvcheck //using for validation
	addressID kernel.UUID
	point     kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateAddressCoordinatesCommand creates a command carrying the new
// coordinates for the address.
func NewUpdateAddressCoordinatesCommand(addressID kernel.UUID, point kernel.GeoPoint) (UpdateAddressCoordinatesCommand, error) {
	cmd := UpdateAddressCoordinatesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAddressID(addressID),
		cmd.setPoint(point),
	); err != nil {
		return UpdateAddressCoordinatesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAddressCoordinatesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAddressCoordinatesCommandIsNotConstructed)
}

// AddressID returns the address being relocated.
func (c UpdateAddressCoordinatesCommand) AddressID() kernel.UUID {
	return c.addressID
}

// Point returns the new coordinates.
func (c UpdateAddressCoordinatesCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateAddressCoordinatesCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	c.addressID = addressID
	return nil
}

func (c *UpdateAddressCoordinatesCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.point = point
	return nil
}
