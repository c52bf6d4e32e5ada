package commands_test

import (
	"testing"

	"geodispatch/internal/core/application/usecases/commands"
	"geodispatch/internal/core/domain/model/address"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeUserAddress(t *testing.T) *address.Address {
	t.Helper()
	owner, err := address.NewOwnerRef(address.OwnerKindUser, kernel.NewUUID())
	require.NoError(t, err)
	addr, err := address.NewAddress(kernel.NewUUID(), owner)
	require.NoError(t, err)
	return addr
}

func makeSquareZone(t *testing.T, minLat, minLon, maxLat, maxLon float64) *zone.Zone {
	t.Helper()
	polygon, err := kernel.NewPolygon([]kernel.GeoPoint{
		mustPoint(t, minLat, minLon),
		mustPoint(t, minLat, maxLon),
		mustPoint(t, maxLat, maxLon),
		mustPoint(t, maxLat, minLon),
	})
	require.NoError(t, err)
	locality, err := kernel.NewLocality(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	z, err := zone.NewZone(kernel.NewUUID(), "square", polygon, locality)
	require.NoError(t, err)
	return z
}

func TestUpdateAddressCoordinatesCommandHandler_ResolvesZone(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	addressRepo := &MockAddressRepository{}
	zoneRepo := &MockZoneRepository{}

	addr := makeUserAddress(t)
	z := makeSquareZone(t, 55.0, 37.0, 56.0, 38.0)
	point := mustPoint(t, 55.5, 37.5)

	cmd, err := commands.NewUpdateAddressCoordinatesCommand(addr.ID(), point)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AddressRepository").Return(addressRepo),
		addressRepo.On("Get", ctx, addr.ID()).Return(addr, nil),
		uow.On("ZoneRepository").Return(zoneRepo),
		zoneRepo.On("GetAllActive", ctx).Return([]*zone.Zone{z}, nil),
		addressRepo.On("Update", ctx, addr).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewUpdateAddressCoordinatesCommandHandler(
		FuncAddressUoWFactory(func() commands.AddressUoW { return uow }))
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, addr.IsResolved())
	require.NotNil(t, addr.ZoneID())
	assert.True(t, addr.ZoneID().IsEqual(z.ID()))
	require.NotNil(t, addr.Point())
	assert.Equal(t, point, *addr.Point())

	uow.AssertExpectations(t)
	addressRepo.AssertExpectations(t)
	zoneRepo.AssertExpectations(t)
}

func TestUpdateAddressCoordinatesCommandHandler_OutsideEveryZoneClearsResolution(t *testing.T) {
	ctx := t.Context()
	uow := &MockUoW{}
	addressRepo := &MockAddressRepository{}
	zoneRepo := &MockZoneRepository{}

	addr := makeUserAddress(t)
	z := makeSquareZone(t, 55.0, 37.0, 56.0, 38.0)
	outside := mustPoint(t, 10.0, 10.0)

	cmd, err := commands.NewUpdateAddressCoordinatesCommand(addr.ID(), outside)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil),
		uow.On("AddressRepository").Return(addressRepo),
		addressRepo.On("Get", ctx, addr.ID()).Return(addr, nil),
		uow.On("ZoneRepository").Return(zoneRepo),
		zoneRepo.On("GetAllActive", ctx).Return([]*zone.Zone{z}, nil),
		addressRepo.On("Update", ctx, addr).Return(nil),
		uow.On("Commit", ctx).Return(nil),
		uow.On("Rollback", ctx).Return(nil),
	)

	handler := commands.NewUpdateAddressCoordinatesCommandHandler(
		FuncAddressUoWFactory(func() commands.AddressUoW { return uow }))
	err = handler.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.False(t, addr.IsResolved())
	assert.Nil(t, addr.ZoneID())
	assert.Nil(t, addr.Locality())
	require.NotNil(t, addr.Point())
	assert.Equal(t, outside, *addr.Point())

	uow.AssertExpectations(t)
	addressRepo.AssertExpectations(t)
	zoneRepo.AssertExpectations(t)
}
