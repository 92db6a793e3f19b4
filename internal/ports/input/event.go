package input

import (
	"context"
	"time"

	"eventbot/internal/application"
	"eventbot/internal/domain/entities"
)

// EventUseCase is everything the chat adapter can ask of the event engine.
type EventUseCase interface {
	StartCreate(ctx context.Context, actor entities.Actor) (*entities.GuildSettings, error)
	SubmitCreateDraft(ctx context.Context, actor entities.Actor, in application.DraftInput) error
	PendingCreate(ctx context.Context, actor entities.Actor) (*entities.GuildSettings, error)
	SubmitCreate(ctx context.Context, actor entities.Actor, channelID string, extras entities.EventExtras) (*entities.Event, error)
	Delete(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error)
	Republish(ctx context.Context, messageID string) error

	AdminEvent(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error)

	Join(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error)
	Leave(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error)
	RosterChoices(ctx context.Context, actor entities.Actor, id string) ([]entities.Member, error)
	Exclude(ctx context.Context, actor entities.Actor, id, targetID string) (*entities.Event, error)

	Reschedule(ctx context.Context, actor entities.Actor, id, rawTime string) (*entities.Event, error)
	SubmitConfigureDraft(ctx context.Context, actor entities.Actor, id string, in application.DraftInput) error
	PendingConfigure(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error)
	SubmitConfigure(ctx context.Context, actor entities.Actor, id string, extras entities.EventExtras) (*entities.Event, error)

	Ping(ctx context.Context, actor entities.Actor, id string) error
	StartTimer(ctx context.Context, actor entities.Actor, id, rawMinutes string) (time.Duration, error)
	Complete(ctx context.Context, actor entities.Actor, id, rawType string) (*entities.Event, error)
}

var _ EventUseCase = (*application.EventService)(nil)
