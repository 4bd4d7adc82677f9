// Package eventbus delivers committed domain events. Units of work collect
// the aggregates they saved and flush their events once the transaction is
// durable; a publishing failure never undoes a commit.
package eventbus

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// Collector accumulates aggregates touched by one unit of work.
type Collector struct {
	sources []kernel.EventSource
}

// Track registers aggregate when it records domain events.
func (c *Collector) Track(aggregate any) {
	if src, ok := aggregate.(kernel.EventSource); ok {
		c.sources = append(c.sources, src)
	}
}

// Reset forgets tracked aggregates without pulling their events.
func (c *Collector) Reset() {
	c.sources = nil
}

// Flush pulls the events of every tracked aggregate and publishes them.
// Errors are logged: events are best-effort notifications and the state
// change they describe is already committed.
func (c *Collector) Flush(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger) {
	sources := c.sources
	c.sources = nil

	var events []kernel.DomainEvent
	for _, src := range sources {
		events = append(events, src.PullEvents()...)
	}
	if len(events) == 0 || publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, events...); err != nil && logger != nil {
		logger.ErrorContext(ctx, "failed to publish domain events", "count", len(events), "error", err)
	}
}
