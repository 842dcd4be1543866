package nats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The connection must never be touched for a caller that already gave
	// up, so an unconnected publisher is enough here.
	p := &Publisher{}
	err := p.Publish(ctx, "listing.published", map[string]string{"id": "listing-1"})

	assert.ErrorIs(t, err, context.Canceled)
}
