package application

import (
	"context"
	"log"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
)

// MaxRosterChoices is the most options a select menu can carry.
const MaxRosterChoices = 25

// Join appends the actor to the main roster ("reject" button).
func (s *EventService) Join(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.InRoster(actor.UserID) {
		return nil, domain.ErrAlreadyJoined
	}
	if ev.IsFull() {
		return nil, domain.ErrRosterFull
	}
	ev.MainRoster = append(ev.MainRoster, actor.UserID)
	if err := s.events.Save(ctx, ev); err != nil {
		return nil, err
	}
	s.render(ctx, ev, "")
	return ev, nil
}

// Leave removes the actor from the main roster ("cancel" button).
func (s *EventService) Leave(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.RemoveFromRoster(actor.UserID) {
		return nil, domain.ErrNotJoined
	}
	if err := s.events.Save(ctx, ev); err != nil {
		return nil, err
	}
	s.render(ctx, ev, "")
	return ev, nil
}

// RosterChoices lists the first MaxRosterChoices roster members for the
// exclusion menu. DisplayName is empty when the member could not be resolved.
func (s *EventService) RosterChoices(ctx context.Context, actor entities.Actor, id string) ([]entities.Member, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ev.MainRoster) == 0 {
		return nil, domain.ErrEmptyRoster
	}
	ids := ev.MainRoster[:min(len(ev.MainRoster), MaxRosterChoices)]
	out := make([]entities.Member, 0, len(ids))
	for _, userID := range ids {
		choice := entities.Member{UserID: userID}
		if actor.GuildID != "" {
			m, err := s.messenger.FetchMember(ctx, actor.GuildID, userID)
			if err != nil {
				logging.Error("Récupération du membre "+userID, err)
			} else if m != nil {
				choice.DisplayName = m.DisplayName
			}
		}
		out = append(out, choice)
	}
	return out, nil
}

// Exclude removes targetID from the roster (admin only). Excluding someone
// who already left is not an error.
func (s *EventService) Exclude(ctx context.Context, actor entities.Actor, id, targetID string) (*entities.Event, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.RemoveFromRoster(targetID) {
		if err := s.events.Save(ctx, ev); err != nil {
			return nil, err
		}
		log.Printf("🚫 %s exclu de l'événement %s par %s", targetID, id, actor.UserID)
	}
	s.render(ctx, ev, "")
	return ev, nil
}
