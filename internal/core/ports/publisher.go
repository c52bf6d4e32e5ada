package ports

import (
	"context"
)

// Realtime channel names. Per-courier and per-store channels carry a
// trailing id segment.
const (
	// CouriersChannel is the couriers-wide broadcast channel used for
	// offer expiry warnings.
	CouriersChannel = "couriers"

	// CourierChannelPrefix prefixes the per-courier channel carrying
	// offers ("courier.<id>").
	CourierChannelPrefix = "courier."

	// StoreChannelPrefix prefixes the per-store channel carrying new-order
	// broadcasts ("store.<id>").
	StoreChannelPrefix = "store."
)

// RealtimePublisher publishes events to named realtime channels.
// Delivery is best-effort: implementations log failures and never roll
// back the state transition that triggered the publish.
type RealtimePublisher interface {
	// Publish sends an event with a JSON-serializable payload to a channel.
	Publish(ctx context.Context, channel, event string, payload any) error
}

// Notifier delivers push notifications to courier or store devices.
// Fire-and-forget: failures are logged and never propagated into the
// triggering transaction.
type Notifier interface {
	// Notify sends a notification to the given device tokens.
	Notify(ctx context.Context, deviceTokens []string, title, body string, payload map[string]string) error
}
