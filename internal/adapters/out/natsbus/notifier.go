package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
)

// PushSubject is the subject a push-gateway worker consumes notification
// requests from.
const PushSubject = "dispatch.push"

// pushRequest is the frame handed to the push gateway.
type pushRequest struct {
	DeviceTokens []string          `json:"device_tokens"`
	Title        string            `json:"title"`
	Body         string            `json:"body"`
	Payload      map[string]string `json:"payload,omitempty"`
}

// Notifier implements ports.Notifier by handing notification requests to a
// push gateway over NATS. The gateway owns the vendor-specific delivery.
type Notifier struct {
	publisher *Publisher
}

// NewNotifier creates a notifier on top of an existing publisher connection.
func NewNotifier(publisher *Publisher) *Notifier {
	return &Notifier{publisher: publisher}
}

// Notify enqueues a push notification for the given device tokens.
func (n *Notifier) Notify(
	_ context.Context,
	deviceTokens []string,
	title, body string,
	payload map[string]string,
) error {
	if len(deviceTokens) == 0 {
		return nil
	}

	data, err := json.Marshal(pushRequest{
		DeviceTokens: deviceTokens,
		Title:        title,
		Body:         body,
		Payload:      payload,
	})
	if err != nil {
		return fmt.Errorf("marshal push request: %w", err)
	}

	if err := n.publisher.conn.Publish(PushSubject, data); err != nil {
		return fmt.Errorf("enqueue push request: %w", err)
	}
	return nil
}
