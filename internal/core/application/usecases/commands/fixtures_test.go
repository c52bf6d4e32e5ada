package commands_test

import (
	"log/slog"
	"testing"
	"time"

	"geodispatch/internal/core/domain/model/address"
	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/courier"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/domain/model/store"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func mustPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func makeProcessingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, order.Processing, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func makePendingOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, order.Pending, createdAt)
	require.NoError(t, err)
	return o
}

func makeAvailableCourier(t *testing.T, name string, location kernel.GeoPoint) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(
		kernel.NewUUID(), name, true, &location, time.Now(),
		1, "token-"+name, true, 0)
	require.NoError(t, err)
	return c
}

func makeResolvedAddress(t *testing.T, id kernel.UUID) *address.Address {
	t.Helper()
	owner, err := address.NewOwnerRef(address.OwnerKindUser, kernel.NewUUID())
	require.NoError(t, err)
	locality, err := kernel.NewLocality(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	point := mustPoint(t, 55.74, 37.62)
	zoneID := kernel.NewUUID()
	a, err := address.RestoreAddress(id, owner, &point, &zoneID, &locality)
	require.NoError(t, err)
	return a
}

func makeUnresolvedAddress(t *testing.T, id kernel.UUID) *address.Address {
	t.Helper()
	owner, err := address.NewOwnerRef(address.OwnerKindUser, kernel.NewUUID())
	require.NoError(t, err)
	point := mustPoint(t, 55.74, 37.62)
	a, err := address.RestoreAddress(id, owner, &point, nil, nil)
	require.NoError(t, err)
	return a
}

func makeStore(t *testing.T, id kernel.UUID, location kernel.GeoPoint) *store.Store {
	t.Helper()
	s, err := store.NewStore(id, "store", location)
	require.NoError(t, err)
	return s
}

func makeOffer(t *testing.T, orderID, courierID kernel.UUID, ttl time.Duration) *assignment.Assignment {
	t.Helper()
	now := time.Now()
	a, err := assignment.RestoreAssignment(
		kernel.NewUUID(), orderID, courierID,
		assignment.Offered, now.Add(-time.Minute), now.Add(ttl), nil)
	require.NoError(t, err)
	return a
}
