// Package natsbus carries realtime traffic over NATS. Channels map to
// subjects under the "dispatch." root, so a store app subscribes to
// "dispatch.store.<id>" and a courier app to "dispatch.courier.<id>".
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const subjectRoot = "dispatch."

// Publisher implements ports.RealtimePublisher over a plain NATS connection.
// Realtime traffic is ephemeral, so no JetStream stream backs it.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS at the given URL, reconnecting forever.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// envelope is the wire frame for every realtime message.
type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Publish sends an event to a channel as a JSON envelope.
func (p *Publisher) Publish(_ context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}

	if err := p.conn.Publish(subjectRoot+channel, data); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}
