package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const flushTimeout = 5 * time.Second

// Publisher emits listing lifecycle events as JSON messages.
type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("estate-service"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return &Publisher{conn: conn}, nil
}

// Publish sends one event. The request context is honored: a cancelled
// caller never enqueues a message for a listing operation it gave up on.
func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event for subject %s: %w", subject, err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish event to subject %s: %w", subject, err)
	}
	return nil
}

// Close flushes buffered listing events to the server before the connection
// goes away, so a shutdown mid-publish does not drop them.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.FlushTimeout(flushTimeout); err != nil {
		p.conn.Close()
		return
	}
	p.conn.Close()
}
