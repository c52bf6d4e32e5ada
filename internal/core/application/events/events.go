// Package events defines the in-process domain event bus of the dispatch
// engine. State mutations produce event values; subscribers (realtime
// relays, notifiers) are registered explicitly and run after the mutation
// committed, so the core never has hidden re-entrant writes.
package events

import (
	"time"

	"geodispatch/internal/core/domain/model/kernel"
)

// OrderCreated is published after a new order is committed.
// Relayed as a new-order broadcast to the owning store's channel.
type OrderCreated struct {
	OrderID kernel.UUID
	StoreID kernel.UUID
}

// OfferCreated is published after a new offer is committed.
// Relayed to the selected courier's channel and as a push notification to
// the courier's device.
type OfferCreated struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	CourierID    kernel.UUID
	DeviceToken  string
	ExpiresAt    time.Time
}

// OfferExpired is published after an offer lapsed unaccepted.
// Relayed as an expiry warning to the couriers-wide channel.
type OfferExpired struct {
	AssignmentID kernel.UUID
	OrderID      kernel.UUID
	ExpiresAt    time.Time
}
