package events

import (
	"context"
	"log/slog"
	"time"

	"geodispatch/internal/core/ports"
)

// RealtimeRelay forwards committed domain events to the realtime channels
// and the push gateway. Delivery is best-effort: failures are logged and the
// originating transaction is never affected.
type RealtimeRelay struct {
	publisher ports.RealtimePublisher
	notifier  ports.Notifier
	logger    *slog.Logger
}

// NewRealtimeRelay creates a relay over the given realtime transport.
func NewRealtimeRelay(
	publisher ports.RealtimePublisher,
	notifier ports.Notifier,
	logger *slog.Logger,
) *RealtimeRelay {
	return &RealtimeRelay{
		publisher: publisher,
		notifier:  notifier,
		logger:    logger.With("component", "realtime_relay"),
	}
}

// OnOrderCreated broadcasts the new order to the owning store's channel.
func (r *RealtimeRelay) OnOrderCreated(ctx context.Context, event OrderCreated) {
	channel := ports.StoreChannelPrefix + event.StoreID.String()

	err := r.publisher.Publish(ctx, channel, "order_created", map[string]any{
		"order_id": event.OrderID.String(),
	})
	if err != nil {
		r.logger.Error("order created broadcast failed",
			"order_id", event.OrderID, "error", err)
	}
}

// OnOfferCreated delivers the offer to the selected courier's channel and
// pushes a notification to the courier's device.
func (r *RealtimeRelay) OnOfferCreated(ctx context.Context, event OfferCreated) {
	channel := ports.CourierChannelPrefix + event.CourierID.String()
	secondsLeft := int(time.Until(event.ExpiresAt).Seconds())
	if secondsLeft < 0 {
		secondsLeft = 0
	}

	err := r.publisher.Publish(ctx, channel, "offer_created", map[string]any{
		"assignment_id": event.AssignmentID.String(),
		"order_id":      event.OrderID.String(),
		"expires_at":    event.ExpiresAt,
		"seconds_left":  secondsLeft,
	})
	if err != nil {
		r.logger.Error("offer broadcast failed",
			"assignment_id", event.AssignmentID, "error", err)
	}

	if event.DeviceToken == "" {
		return
	}

	err = r.notifier.Notify(ctx,
		[]string{event.DeviceToken},
		"New delivery offer",
		"You have a new delivery offer. Accept it before it expires.",
		map[string]string{
			"assignment_id": event.AssignmentID.String(),
			"order_id":      event.OrderID.String(),
		},
	)
	if err != nil {
		r.logger.Error("offer push notification failed",
			"assignment_id", event.AssignmentID, "error", err)
	}
}

// OnOfferExpired warns the couriers-wide channel that the offer lapsed.
func (r *RealtimeRelay) OnOfferExpired(ctx context.Context, event OfferExpired) {
	err := r.publisher.Publish(ctx, ports.CouriersChannel, "offer_expired", map[string]any{
		"order_id":     event.OrderID.String(),
		"expires_at":   event.ExpiresAt,
		"seconds_left": 0,
	})
	if err != nil {
		r.logger.Error("offer expiry broadcast failed",
			"assignment_id", event.AssignmentID, "error", err)
	}
}
