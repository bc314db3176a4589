package ports

import (
	"context"

	"fooddelivery/internal/core/domain/events"
)

// EventPublisher delivers integration events to the event bus.
// Handlers call it only after their transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
