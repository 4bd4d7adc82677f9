package eventbus

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// LogPublisher writes events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "domain event",
			"type", e.EventType(),
			"key", e.PartitionKey(),
			"occurred_at", e.OccurredAt(),
		)
	}
	return nil
}
