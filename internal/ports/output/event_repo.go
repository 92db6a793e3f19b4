package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

// EventRepository is the durable keyed collection of events. Every mutating
// call is persisted before it returns. Returned events are copies.
type EventRepository interface {
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	FindByMessageID(ctx context.Context, messageID string) (*entities.Event, error)
	FindAll(ctx context.Context) ([]*entities.Event, error)
	FindActive(ctx context.Context) ([]*entities.Event, error)
	Save(ctx context.Context, event *entities.Event) error
	// Delete reports whether the event existed.
	Delete(ctx context.Context, id string) (bool, error)
	NextID() string
}
