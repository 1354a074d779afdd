package events

import (
	"context"

	"github.com/guttosm/shipit-service/internal/circuitbreaker"
	"github.com/rs/zerolog/log"
)

// NopPublisher drops events. It is used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, event Event) error {
	log.Debug().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Int("warehouse_id", event.WarehouseID).
		Msg("Event publishing disabled, dropping event")
	return nil
}

func (NopPublisher) Close() error { return nil }

// PublisherWithCircuitBreaker stops calling the broker after repeated failures.
type PublisherWithCircuitBreaker struct {
	next Publisher
	cb   *circuitbreaker.CircuitBreaker
}

// NewPublisherWithCircuitBreaker wraps next with cb.
func NewPublisherWithCircuitBreaker(next Publisher, cb *circuitbreaker.CircuitBreaker) *PublisherWithCircuitBreaker {
	return &PublisherWithCircuitBreaker{next: next, cb: cb}
}

func (p *PublisherWithCircuitBreaker) Publish(ctx context.Context, event Event) error {
	return p.cb.Execute(ctx, func() error {
		return p.next.Publish(ctx, event)
	})
}

func (p *PublisherWithCircuitBreaker) Close() error {
	return p.next.Close()
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (p *PublisherWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return p.cb
}
