package services_test

import (
	"testing"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/order"
	"geodispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.UserActor(kernel.NewUUID()), time.Now())
	require.NoError(t, err)

	actor := order.UserActor(kernel.NewUUID())
	require.NoError(t, o.Confirm(actor, time.Now()))
	require.NoError(t, o.MarkReady(actor, time.Now()))
	o.TakeEvents()
	return o
}

func TestStatusSynchronizer_Sync(t *testing.T) {
	synchronizer := services.NewStatusSynchronizer()
	courierID := kernel.NewUUID()

	t.Run("in transit moves order on the way", func(t *testing.T) {
		o := readyOrder(t)

		err := synchronizer.Sync(o, assignment.InTransit, courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())

		events := o.TakeEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.CourierActor(courierID), events[0].ChangedBy)
	})

	t.Run("delivered moves order delivered", func(t *testing.T) {
		o := readyOrder(t)
		require.NoError(t, synchronizer.Sync(o, assignment.InTransit, courierID, time.Now()))

		err := synchronizer.Sync(o, assignment.Delivered, courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("repeated relay is idempotent", func(t *testing.T) {
		o := readyOrder(t)
		require.NoError(t, synchronizer.Sync(o, assignment.InTransit, courierID, time.Now()))
		o.TakeEvents()

		err := synchronizer.Sync(o, assignment.InTransit, courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.OnTheWay, o.Status())
		assert.Empty(t, o.TakeEvents())
	})

	t.Run("late in transit relay after delivery is dropped", func(t *testing.T) {
		o := readyOrder(t)
		require.NoError(t, synchronizer.Sync(o, assignment.InTransit, courierID, time.Now()))
		require.NoError(t, synchronizer.Sync(o, assignment.Delivered, courierID, time.Now()))
		o.TakeEvents()

		err := synchronizer.Sync(o, assignment.InTransit, courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Empty(t, o.TakeEvents())
	})

	t.Run("relay for a cancelled order is dropped", func(t *testing.T) {
		o := readyOrder(t)
		require.NoError(t, o.Cancel(order.SystemTimeoutActor, "timeout", time.Now()))
		o.TakeEvents()

		err := synchronizer.Sync(o, assignment.Delivered, courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("offer lifecycle statuses have no order effect", func(t *testing.T) {
		o := readyOrder(t)

		require.NoError(t, synchronizer.Sync(o, assignment.Offered, courierID, time.Now()))
		require.NoError(t, synchronizer.Sync(o, assignment.Expired, courierID, time.Now()))

		assert.Equal(t, order.ReadyForDelivery, o.Status())
	})
}
