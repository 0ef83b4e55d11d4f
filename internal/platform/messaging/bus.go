package messaging

import (
	"context"
	"log/slog"
	"sync"

	"timepay/contexts/monetization/distribution-engine/ports"
)

// subscriberBuffer bounds how far a consumer may lag before the bus starts
// dropping its deliveries.
const subscriberBuffer = 128

// Bus is the event transport behind the outbox relay. It is an in-process
// fanout, not a broker client: delivery is at-most-once per subscriber, there
// is no replay, and a subscriber whose buffer is full loses the event rather
// than stalling the publisher. Durability lives in the outbox table upstream,
// so a dropped delivery here is observable and re-derivable, never silent
// data loss.
//
// NewBus accepts broker addresses to keep the bootstrap call signature stable
// for an external-broker implementation; the in-process bus ignores them.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan ports.EventEnvelope
	logger      *slog.Logger
}

func NewBus(_ []string, logger *slog.Logger) (*Bus, error) {
	return &Bus{
		subscribers: make(map[string][]chan ports.EventEnvelope),
		logger:      logger,
	}, nil
}

// Publish fans the envelope out to every current subscriber of the topic.
// Slow subscribers are skipped, not awaited.

func (b *Bus) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	b.mu.RLock()
	subs := append([]chan ports.EventEnvelope(nil), b.subscribers[topic]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			if b.logger != nil {
				b.logger.Warn("dropping event for slow subscriber",
					"event", "bus_publish_drop",
					"module", "internal/platform/messaging",
					"layer", "platform",
					"topic", topic,
					"event_id", event.EventID,
				)
			}
		}
	}

	if b.logger != nil {
		b.logger.Info("event published",
			"event", "bus_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

// Subscribe attaches a handler to a topic until ctx is cancelled. The
// consumer group is carried for log correlation only; unlike a broker group,
// every subscriber sees every event.
func (b *Bus) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	ch := make(chan ports.EventEnvelope, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(topic, ch)
				return
			case event := <-ch:
				if err := handler(ctx, event); err != nil && b.logger != nil {
					b.logger.Error("consumer handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", consumerGroup,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

func (b *Bus) removeSubscriber(topic string, ch chan ports.EventEnvelope) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[topic]
	for i, sub := range subs {
		if sub == ch {
			b.subscribers[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}
