package application

import (
	"context"
	"log"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
)

// Complete closes the event with the chosen outcome, freezes its public
// message into the completed card and purges the record.
func (s *EventService) Complete(ctx context.Context, actor entities.Actor, id, rawType string) (*entities.Event, error) {
	ct, ok := entities.ParseCompletionType(rawType)
	if !ok {
		return nil, domain.ErrInvalidCompletionType
	}
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Status = entities.StatusCompleted
	ev.CompletionType = ct
	if err := s.events.Save(ctx, ev); err != nil {
		return nil, err
	}

	if ev.MessageID != "" {
		msg := output.EventMessage{
			Content: s.mention() + s.CompletionTitle(ev),
			Event:   ev,
			Kind:    output.CardCompleted,
		}
		if err := s.messenger.EditEvent(ctx, ev.ChannelID, ev.MessageID, msg); err != nil {
			logging.Error("Clôture du message de l'événement "+ev.ID, err)
		}
	}

	if _, err := s.events.Delete(ctx, ev.ID); err != nil {
		return nil, err
	}
	log.Printf("🏁 Événement %s clôturé (%s) par %s", ev.ID, ct, actor.UserID)
	return ev, nil
}

// CompletionTitle is the headline of a completed event.
func (s *EventService) CompletionTitle(ev *entities.Event) string {
	return s.t("notify.completed_title_"+string(ev.CompletionType), map[string]any{"Name": ev.Name})
}
