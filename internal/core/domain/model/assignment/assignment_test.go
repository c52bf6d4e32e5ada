package assignment_test

import (
	"testing"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffer(t *testing.T, offeredAt time.Time, ttl time.Duration) *assignment.Assignment {
	t.Helper()

	a, err := assignment.NewAssignment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		offeredAt, offeredAt.Add(ttl))
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	t.Run("creates offered assignment", func(t *testing.T) {
		offeredAt := time.Now()

		a := newOffer(t, offeredAt, time.Minute)

		require.NoError(t, a.Validate())
		assert.Equal(t, assignment.Offered, a.Status())
		assert.True(t, a.IsLive())
		assert.Nil(t, a.AcceptedAt())
		assert.True(t, a.ExpiresAt().Equal(offeredAt.Add(time.Minute)))
	})

	t.Run("rejects expiry before offer time", func(t *testing.T) {
		now := time.Now()

		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			now, now.Add(-time.Second))

		require.Error(t, err)
	})

	t.Run("rejects zero courier id", func(t *testing.T) {
		var courierID kernel.UUID
		now := time.Now()

		_, err := assignment.NewAssignment(
			kernel.NewUUID(), kernel.NewUUID(), courierID,
			now, now.Add(time.Minute))

		require.Error(t, err)
	})
}

func TestAssignment_Accept(t *testing.T) {
	t.Run("accepts before expiry", func(t *testing.T) {
		offeredAt := time.Now()
		a := newOffer(t, offeredAt, time.Minute)
		acceptedAt := offeredAt.Add(10 * time.Second)

		require.NoError(t, a.Accept(acceptedAt))

		assert.Equal(t, assignment.Accepted, a.Status())
		require.NotNil(t, a.AcceptedAt())
		assert.True(t, a.AcceptedAt().Equal(acceptedAt))
		assert.True(t, a.IsLive())
	})

	t.Run("rejects acceptance after expiry", func(t *testing.T) {
		offeredAt := time.Now()
		a := newOffer(t, offeredAt, time.Minute)

		err := a.Accept(offeredAt.Add(61 * time.Second))

		require.ErrorIs(t, err, assignment.ErrOfferNotAcceptable)
		assert.Equal(t, assignment.Offered, a.Status())
	})

	t.Run("rejects acceptance of expired row", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)
		require.NoError(t, a.Expire())

		err := a.Accept(time.Now())

		require.ErrorIs(t, err, assignment.ErrOfferNotAcceptable)
	})
}

func TestAssignment_Expire(t *testing.T) {
	t.Run("expires an offered assignment", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)

		require.NoError(t, a.Expire())

		assert.Equal(t, assignment.Expired, a.Status())
		assert.False(t, a.IsLive())
	})

	t.Run("expiring twice is a no-op", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)
		require.NoError(t, a.Expire())

		require.NoError(t, a.Expire())
		assert.Equal(t, assignment.Expired, a.Status())
	})

	t.Run("cannot expire an accepted assignment", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)
		require.NoError(t, a.Accept(time.Now()))

		require.Error(t, a.Expire())
	})
}

func TestAssignment_Progression(t *testing.T) {
	t.Run("accepted to in transit to delivered", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)
		require.NoError(t, a.Accept(time.Now()))

		require.NoError(t, a.MarkInTransit())
		assert.Equal(t, assignment.InTransit, a.Status())
		assert.True(t, a.IsLive())

		require.NoError(t, a.MarkDelivered())
		assert.Equal(t, assignment.Delivered, a.Status())
		assert.False(t, a.IsLive())
	})

	t.Run("cannot go in transit from offered", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)

		require.Error(t, a.MarkInTransit())
	})

	t.Run("cannot deliver from accepted", func(t *testing.T) {
		a := newOffer(t, time.Now(), time.Minute)
		require.NoError(t, a.Accept(time.Now()))

		require.Error(t, a.MarkDelivered())
	})
}

func TestAssignment_Reject(t *testing.T) {
	a := newOffer(t, time.Now(), time.Minute)

	require.NoError(t, a.Reject())

	assert.Equal(t, assignment.Rejected, a.Status())
	assert.False(t, a.IsLive())
}

func TestAssignment_IsExpiredAt(t *testing.T) {
	offeredAt := time.Now()
	a := newOffer(t, offeredAt, time.Minute)

	assert.False(t, a.IsExpiredAt(offeredAt.Add(30*time.Second)))
	assert.True(t, a.IsExpiredAt(offeredAt.Add(2*time.Minute)))

	require.NoError(t, a.Accept(offeredAt.Add(time.Second)))
	assert.False(t, a.IsExpiredAt(offeredAt.Add(2*time.Minute)))
}

func TestRestoreAssignment(t *testing.T) {
	offeredAt := time.Now()
	acceptedAt := offeredAt.Add(5 * time.Second)

	a, err := assignment.RestoreAssignment(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		assignment.Accepted, offeredAt, offeredAt.Add(time.Minute), &acceptedAt)

	require.NoError(t, err)
	assert.Equal(t, assignment.Accepted, a.Status())
	require.NotNil(t, a.AcceptedAt())
}
