package events_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"geodispatch/internal/core/application/events"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRealtimePublisher struct {
	mock.Mock
}

func (m *MockRealtimePublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	args := m.Called(ctx, channel, event, payload)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(
	ctx context.Context, deviceTokens []string, title, body string, payload map[string]string,
) error {
	args := m.Called(ctx, deviceTokens, title, body, payload)
	return args.Error(0)
}

func newRelay(publisher *MockRealtimePublisher, notifier *MockNotifier) *events.RealtimeRelay {
	return events.NewRealtimeRelay(publisher, notifier, slog.New(slog.DiscardHandler))
}

func TestRealtimeRelay_OnOrderCreated_BroadcastsToStoreChannel(t *testing.T) {
	publisher := &MockRealtimePublisher{}
	notifier := &MockNotifier{}
	relay := newRelay(publisher, notifier)

	event := events.OrderCreated{OrderID: kernel.NewUUID(), StoreID: kernel.NewUUID()}
	publisher.On("Publish",
		mock.Anything,
		ports.StoreChannelPrefix+event.StoreID.String(),
		"order_created",
		mock.Anything,
	).Return(nil)

	relay.OnOrderCreated(t.Context(), event)

	publisher.AssertExpectations(t)
	payload, ok := publisher.Calls[0].Arguments.Get(3).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, event.OrderID.String(), payload["order_id"])
}

func TestRealtimeRelay_OnOfferCreated_BroadcastsAndPushes(t *testing.T) {
	publisher := &MockRealtimePublisher{}
	notifier := &MockNotifier{}
	relay := newRelay(publisher, notifier)

	event := events.OfferCreated{
		AssignmentID: kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		CourierID:    kernel.NewUUID(),
		DeviceToken:  "device-token-1",
		ExpiresAt:    time.Now().Add(time.Minute),
	}
	publisher.On("Publish",
		mock.Anything,
		ports.CourierChannelPrefix+event.CourierID.String(),
		"offer_created",
		mock.Anything,
	).Return(nil)
	notifier.On("Notify",
		mock.Anything, []string{"device-token-1"}, mock.Anything, mock.Anything, mock.Anything,
	).Return(nil)

	relay.OnOfferCreated(t.Context(), event)

	publisher.AssertExpectations(t)
	notifier.AssertExpectations(t)

	payload, ok := publisher.Calls[0].Arguments.Get(3).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, event.AssignmentID.String(), payload["assignment_id"])
	assert.Positive(t, payload["seconds_left"])
}

func TestRealtimeRelay_OnOfferCreated_NoTokenSkipsPush(t *testing.T) {
	publisher := &MockRealtimePublisher{}
	notifier := &MockNotifier{}
	relay := newRelay(publisher, notifier)

	event := events.OfferCreated{
		AssignmentID: kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		CourierID:    kernel.NewUUID(),
		ExpiresAt:    time.Now().Add(time.Minute),
	}
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	relay.OnOfferCreated(t.Context(), event)

	notifier.AssertNotCalled(t, "Notify",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRealtimeRelay_OnOfferExpired_WarnsCouriersChannel(t *testing.T) {
	publisher := &MockRealtimePublisher{}
	notifier := &MockNotifier{}
	relay := newRelay(publisher, notifier)

	event := events.OfferExpired{
		AssignmentID: kernel.NewUUID(),
		OrderID:      kernel.NewUUID(),
		ExpiresAt:    time.Now().Add(-time.Second),
	}
	publisher.On("Publish",
		mock.Anything, ports.CouriersChannel, "offer_expired", mock.Anything,
	).Return(nil)

	relay.OnOfferExpired(t.Context(), event)

	publisher.AssertExpectations(t)
	payload, ok := publisher.Calls[0].Arguments.Get(3).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 0, payload["seconds_left"])
}

func TestRealtimeRelay_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &MockRealtimePublisher{}
	notifier := &MockNotifier{}
	relay := newRelay(publisher, notifier)

	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	assert.NotPanics(t, func() {
		relay.OnOrderCreated(t.Context(), events.OrderCreated{
			OrderID: kernel.NewUUID(), StoreID: kernel.NewUUID(),
		})
	})
}
