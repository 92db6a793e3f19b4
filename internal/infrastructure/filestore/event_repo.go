package filestore

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

// EventRepository keeps every event in memory and mirrors the whole map to
// one JSON file (id -> event) after each mutation. Last writer wins.
type EventRepository struct {
	mu     sync.RWMutex
	path   string
	events map[string]*entities.Event
}

// NewEventRepository loads path. A missing file starts empty; a malformed
// file is logged and also starts empty, so a corrupt store never stops the bot.
func NewEventRepository(path string) *EventRepository {
	r := &EventRepository{path: path, events: map[string]*entities.Event{}}
	loaded := map[string]*entities.Event{}
	if err := readJSON(path, &loaded); err != nil {
		logging.Error("Erreur lors du chargement des événements ("+path+")", err)
		return r
	}
	for id, e := range loaded {
		if e == nil {
			continue
		}
		if e.ID == "" {
			e.ID = id
		}
		r.events[id] = e.Clone()
	}
	log.Printf("✅ %d événement(s) chargé(s) depuis %s", len(r.events), path)
	return r
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return e.Clone(), nil
}

// FindByMessageID scans linearly; event volume is small.
func (r *EventRepository) FindByMessageID(_ context.Context, messageID string) (*entities.Event, error) {
	if messageID == "" {
		return nil, domain.ErrEventNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.events {
		if e.MessageID == messageID {
			return e.Clone(), nil
		}
	}
	return nil, domain.ErrEventNotFound
}

func (r *EventRepository) FindAll(_ context.Context) ([]*entities.Event, error) {
	return r.snapshot(func(*entities.Event) bool { return true }), nil
}

func (r *EventRepository) FindActive(_ context.Context) ([]*entities.Event, error) {
	return r.snapshot((*entities.Event).IsActive), nil
}

// snapshot returns matching events ordered by creation time, then id.
func (r *EventRepository) snapshot(keep func(*entities.Event) bool) []*entities.Event {
	r.mu.RLock()
	out := make([]*entities.Event, 0, len(r.events))
	for _, e := range r.events {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *entities.Event) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Save upserts event and rewrites the file before returning.
func (r *EventRepository) Save(_ context.Context, event *entities.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("save event: id manquant")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID] = event.Clone()
	if err := writeJSON(r.path, r.events); err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return false, nil
	}
	delete(r.events, id)
	if err := writeJSON(r.path, r.events); err != nil {
		return true, fmt.Errorf("delete event: %w", err)
	}
	return true, nil
}

// NextID returns a UUIDv7: millisecond timestamp, monotonic counter and random bits.
func (r *EventRepository) NextID() string {
	return uuid.Must(uuid.NewV7()).String()
}
