package messaging

import (
	"context"
	"testing"
	"time"

	"timepay/contexts/monetization/distribution-engine/ports"
)

func TestBusDeliversToSubscriber(t *testing.T) {
	bus, err := NewBus(nil, nil)
	if err != nil {
		t.Fatalf("new bus failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan ports.EventEnvelope, 1)
	err = bus.Subscribe(ctx, "revenue.distributed", "relay-test", func(_ context.Context, event ports.EventEnvelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	envelope := ports.EventEnvelope{EventID: "evt-1", EventType: "revenue.distributed"}
	if err := bus.Publish(ctx, "revenue.distributed", envelope); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != "evt-1" {
			t.Fatalf("event id: got %q, want evt-1", got.EventID)
		}
	case <-time.After(time.Second):
		t.Fatalf("subscriber never received the event")
	}
}

func TestBusPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	bus, err := NewBus(nil, nil)
	if err != nil {
		t.Fatalf("new bus failed: %v", err)
	}

	// A subscriber that never drains: its channel fills, and publishes past
	// the buffer must drop instead of blocking.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	block := make(chan struct{})
	defer close(block)
	err = bus.Subscribe(ctx, "payout.created", "stuck-consumer", func(_ context.Context, _ ports.EventEnvelope) error {
		<-block
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer+10; i++ {
			_ = bus.Publish(ctx, "payout.created", ports.EventEnvelope{EventID: "evt", EventType: "payout.created"})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a full subscriber buffer")
	}
}
