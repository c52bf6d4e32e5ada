package events

import (
	"context"
	"log/slog"
)

// Publisher is the event-publishing side of the bus, depended on by command
// handlers. Publishing is best-effort: it never fails the caller.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated)
	PublishOfferCreated(ctx context.Context, event OfferCreated)
	PublishOfferExpired(ctx context.Context, event OfferExpired)
}

// Subscriber receives every published event. Subscribers handle their own
// failures; the bus does not retry.
type Subscriber interface {
	OnOrderCreated(ctx context.Context, event OrderCreated)
	OnOfferCreated(ctx context.Context, event OfferCreated)
	OnOfferExpired(ctx context.Context, event OfferExpired)
}

// Bus fans events out to its subscribers synchronously, in registration
// order. A panicking subscriber is recovered and logged so one faulty relay
// cannot take down the publishing worker.
type Bus struct {
	subscribers []Subscriber
	logger      *slog.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger.With("component", "event_bus"),
	}
}

// Subscribe registers a subscriber. Not safe for concurrent use with
// publishing; register all subscribers during composition.
func (b *Bus) Subscribe(subscriber Subscriber) {
	b.subscribers = append(b.subscribers, subscriber)
}

// PublishOrderCreated delivers an OrderCreated event to all subscribers.
func (b *Bus) PublishOrderCreated(ctx context.Context, event OrderCreated) {
	for _, s := range b.subscribers {
		b.deliver(func() { s.OnOrderCreated(ctx, event) })
	}
}

// PublishOfferCreated delivers an OfferCreated event to all subscribers.
func (b *Bus) PublishOfferCreated(ctx context.Context, event OfferCreated) {
	for _, s := range b.subscribers {
		b.deliver(func() { s.OnOfferCreated(ctx, event) })
	}
}

// PublishOfferExpired delivers an OfferExpired event to all subscribers.
func (b *Bus) PublishOfferExpired(ctx context.Context, event OfferExpired) {
	for _, s := range b.subscribers {
		b.deliver(func() { s.OnOfferExpired(ctx, event) })
	}
}

func (b *Bus) deliver(handle func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked", "panic", r)
		}
	}()

	handle()
}
