package application

import (
	"context"
	"log"
	"strings"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/pkg/hhmm"
)

// Reschedule moves the event to a new time. notified is cleared so the
// reminder fires again at the new time.
func (s *EventService) Reschedule(ctx context.Context, actor entities.Actor, id, rawTime string) (*entities.Event, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Time = hhmm.Normalize(rawTime)
	ev.Notified = false
	if err := s.events.Save(ctx, ev); err != nil {
		return nil, err
	}
	log.Printf("🕒 Événement %s déplacé à %s", id, ev.Time)
	s.render(ctx, ev, "")
	s.notifyTimeMoved(ctx, ev)
	return ev, nil
}

// SubmitConfigureDraft stores the first reconfiguration step. An invalid
// limit keeps the current one.
func (s *EventService) SubmitConfigureDraft(ctx context.Context, actor entities.Actor, id string, in DraftInput) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	s.configures.Put(actor.UserID, configureSession{EventID: id, Draft: BuildDraft(in, ev.ParticipantLimit)})
	return nil
}

// PendingConfigure returns the event of the actor's pending reconfiguration.
func (s *EventService) PendingConfigure(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error) {
	pending, ok := s.configures.Peek(actor.UserID)
	if !ok || pending.EventID != id {
		return nil, domain.ErrSessionExpired
	}
	return s.loadActive(ctx, id)
}

// SubmitConfigure consumes the pending session and overwrites every
// descriptive field. The limit cannot drop below the current roster size.
func (s *EventService) SubmitConfigure(ctx context.Context, actor entities.Actor, id string, extras entities.EventExtras) (*entities.Event, error) {
	pending, ok := s.configures.Take(actor.UserID)
	if !ok || pending.EventID != id {
		return nil, domain.ErrSessionExpired
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
	draft := pending.Draft
	if draft.ParticipantLimit < len(ev.MainRoster) {
		return nil, domain.ErrCannotReduceLimit
	}

	oldTime := ev.Time
	ev.Name = draft.Name
	ev.Server = draft.Server
	ev.Time = draft.Time
	ev.Notified = false
	ev.ParticipantLimit = draft.ParticipantLimit
	ev.Location = draft.Location
	ev.Group = strings.TrimSpace(extras.Group)
	ev.Map = strings.TrimSpace(extras.Map)
	ev.SetColor(extras.Color)

	if err := s.events.Save(ctx, ev); err != nil {
		return nil, err
	}
	log.Printf("⚙️ Événement %s reconfiguré par %s", id, actor.UserID)

	s.render(ctx, ev, s.announcement(ev))
	if oldTime != ev.Time {
		s.notifyTimeMoved(ctx, ev)
	}
	return ev, nil
}

// notifyTimeMoved posts the one-off "time moved" notice when a ping role is set.
func (s *EventService) notifyTimeMoved(ctx context.Context, ev *entities.Event) {
	if s.opts.PingRoleID == "" {
		return
	}
	content := s.t("notify.time_moved", map[string]any{"Mention": s.mention(), "Time": hhmm.Display(ev.Time)})
	if err := s.sendSide(ctx, ev.ChannelID, content); err != nil {
		logging.Error("Envoi de l'avis de report de l'événement "+ev.ID, err)
	}
}
