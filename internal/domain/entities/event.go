package entities

import (
	"slices"
	"strings"
)

// Status is the lifecycle state of an event.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled" // réservé, aucune transition n'y mène
)

// CompletionType is the outcome chosen when an admin closes an event.
type CompletionType string

const (
	CompletionSuccess  CompletionType = "success"
	CompletionFailure  CompletionType = "failure"
	CompletionComplete CompletionType = "complete"
)

// ParseCompletionType validates a raw select-menu value.
func ParseCompletionType(s string) (CompletionType, bool) {
	switch c := CompletionType(strings.TrimSpace(s)); c {
	case CompletionSuccess, CompletionFailure, CompletionComplete:
		return c, true
	}
	return "", false
}

// DefaultParticipantLimit is used when the capacity field is absent or invalid at creation.
const DefaultParticipantLimit = 35

// Event is the single mutable aggregate persisted by the event store.
// JSON field names are the on-disk layout of events.json.
type Event struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Server           string         `json:"server,omitempty"`
	ParticipantLimit int            `json:"participantLimit"`
	Color            string         `json:"color,omitempty"`
	ColorSetByUser   bool           `json:"colorSetByUser,omitempty"`
	Group            string         `json:"group,omitempty"`
	Time             string         `json:"time"`
	Map              string         `json:"map,omitempty"`
	Location         string         `json:"location,omitempty"`
	CreatorID        string         `json:"creatorId"`
	MainRoster       []string       `json:"mainRoster"`
	ReserveList      []string       `json:"reserveList"`
	Rejected         []string       `json:"rejected"`
	Status           Status         `json:"status"`
	CompletionType   CompletionType `json:"completionType,omitempty"`
	ChannelID        string         `json:"channelId"`
	MessageID        string         `json:"messageId,omitempty"`
	CreatedAt        int64          `json:"createdAt"` // epoch ms
	Notified         bool           `json:"notified,omitempty"`
}

func (e *Event) IsActive() bool {
	return e.Status == StatusActive
}

// InRoster reports whether userID is in the main roster.
func (e *Event) InRoster(userID string) bool {
	return slices.Contains(e.MainRoster, userID)
}

func (e *Event) IsFull() bool {
	return len(e.MainRoster) >= e.ParticipantLimit
}

// RemoveFromRoster removes userID keeping the relative order of the others.
// It returns false when userID was not in the roster.
func (e *Event) RemoveFromRoster(userID string) bool {
	idx := slices.Index(e.MainRoster, userID)
	if idx < 0 {
		return false
	}
	e.MainRoster = slices.Delete(e.MainRoster, idx, idx+1)
	return true
}

// SetColor stores the free-text color. colorSetByUser is sticky: once a user
// supplied a color it stays true even if the color is later cleared.
func (e *Event) SetColor(raw string) {
	raw = strings.TrimSpace(raw)
	e.Color = raw
	e.ColorSetByUser = e.ColorSetByUser || raw != ""
}

// Clone returns a deep copy, so callers never share roster slices with the store.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.MainRoster = cloneIDs(e.MainRoster)
	c.ReserveList = cloneIDs(e.ReserveList)
	c.Rejected = cloneIDs(e.Rejected)
	return &c
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
