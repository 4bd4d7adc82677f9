package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// EventPublisher delivers committed domain events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
