package output

import (
	"context"
	"errors"

	"eventbot/internal/domain/entities"
)

// ErrMessageNotFound is returned when the target message no longer exists.
var ErrMessageNotFound = errors.New("message introuvable")

// CardKind selects how an event message is rendered.
type CardKind int

const (
	// CardLive is the interactive card of an active event.
	CardLive CardKind = iota
	// CardCompleted is the final card, without controls.
	CardCompleted
)

// EventMessage is the public message representing an event. An empty Content
// leaves the current content untouched on edit.
type EventMessage struct {
	Content string
	Event   *entities.Event
	Kind    CardKind
}

type MessageSender interface {
	SendText(ctx context.Context, channelID, content string) (messageID string, err error)
	SendEvent(ctx context.Context, channelID string, msg EventMessage) (messageID string, err error)
}

type MessageEditor interface {
	EditText(ctx context.Context, channelID, messageID, content string) error
	EditEvent(ctx context.Context, channelID, messageID string, msg EventMessage) error
}

type MessageFetcher interface {
	MessageExists(ctx context.Context, channelID, messageID string) (bool, error)
}

type MessageDeleter interface {
	DeleteMessage(ctx context.Context, channelID, messageID string) error
}

// MemberDirectory resolves guild memberships. It returns nil, nil for unknown members.
type MemberDirectory interface {
	FetchMember(ctx context.Context, guildID, userID string) (*entities.Member, error)
}

// Messenger is everything the application needs from the chat platform.
type Messenger interface {
	MessageSender
	MessageEditor
	MessageFetcher
	MessageDeleter
	MemberDirectory
}
