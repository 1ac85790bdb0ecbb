package policies

import (
	"context"

	"festiloc/internal/domain/shared/events"
)

// EventPublisher pushes recorded domain events to the outside world once the
// aggregate change has been persisted.
type EventPublisher interface {
	Publish(ctx context.Context, evs ...events.DomainEvent) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, evs ...events.DomainEvent) error { return nil }
