package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
	"eventbot/pkg/hhmm"
)

const (
	DefaultTimerMinutes = 15
	MaxTimerMinutes     = 1440
)

// ClampTimerMinutes parses the minute count of a countdown: invalid input
// gives DefaultTimerMinutes, the result is bounded to [1, MaxTimerMinutes].
func ClampTimerMinutes(raw string) int {
	n, ok := hhmm.LeadingInt(raw)
	if !ok || n == 0 {
		n = DefaultTimerMinutes
	}
	return min(max(n, 1), MaxTimerMinutes)
}

// Ping posts a call-to-arms for the event. The record is not modified.
func (s *EventService) Ping(ctx context.Context, actor entities.Actor, id string) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	timerInfo := ""
	if left, ok := s.timers.Remaining(ev.ChannelID); ok {
		timerInfo = s.t("notify.ping_timer", map[string]any{"Countdown": hhmm.Countdown(left)})
	}
	content := s.t("notify.ping", map[string]any{
		"Mention":   s.mention(),
		"Name":      ev.Name,
		"Place":     s.place(ev, "notify.default_place"),
		"TimerInfo": timerInfo,
		"GroupCode": s.groupCode(ev),
	})
	if err := s.sendSide(ctx, ev.ChannelID, content); err != nil {
		logging.Error("Envoi du ping de l'événement "+ev.ID, err)
		return domain.ErrChannelUnavailable
	}
	return nil
}

// StartTimer launches a countdown in the event channel and returns its
// clamped duration. The countdown runs on the service lifetime, not on ctx.
func (s *EventService) StartTimer(ctx context.Context, actor entities.Actor, id, rawMinutes string) (time.Duration, error) {
	t, err := s.startTimer(ctx, actor, id, rawMinutes)
	if err != nil {
		return 0, err
	}
	return t.EndsAt.Sub(s.now()), nil
}

func (s *EventService) startTimer(ctx context.Context, actor entities.Actor, id, rawMinutes string) (*Timer, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	ev, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}
	minutes := ClampTimerMinutes(rawMinutes)
	place := s.place(ev, "notify.default_place")
	name := ev.Name

	c := countdown{
		EventID:   ev.ID,
		ChannelID: ev.ChannelID,
		Duration:  time.Duration(minutes) * time.Minute,
		Render: func(left time.Duration) string {
			return s.t("notify.timer", map[string]any{
				"Mention":   s.mention(),
				"Countdown": hhmm.Countdown(left),
				"Name":      name,
				"Place":     place,
			})
		},
		Final: s.t("notify.timer_done", map[string]any{"Mention": s.mention(), "Name": name, "Place": place}),
	}
	t, err := s.timers.Start(s.lifetime, s.messenger, c)
	if err != nil {
		logging.Error("Démarrage de la minuterie de l'événement "+ev.ID, err)
		return nil, domain.ErrChannelUnavailable
	}
	log.Printf("⏱️ Minuterie de %d min lancée pour l'événement %s", minutes, ev.ID)
	return t, nil
}

// ScanReminders sends the rally of every active event whose time matches now
// in the reminder zone and marks it notified. A missed minute is not caught up.
func (s *EventService) ScanReminders(ctx context.Context, now time.Time) int {
	current := hhmm.Of(now, s.opts.ReminderZone)
	active, err := s.events.FindActive(ctx)
	if err != nil {
		logging.Error("Lecture des événements actifs", err)
		return 0
	}

	sent := 0
	for _, candidate := range active {
		if candidate.Notified || hhmm.Normalize(candidate.Time) != current {
			continue
		}
		if s.remind(ctx, candidate.ID, current) {
			sent++
		}
	}
	return sent
}

func (s *EventService) remind(ctx context.Context, id, current string) bool {
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil || ev.Notified || hhmm.Normalize(ev.Time) != current {
		return false
	}
	ev.Notified = true
	if err := s.events.Save(ctx, ev); err != nil {
		logging.Error("Enregistrement du rappel de l'événement "+id, err)
		return false
	}

	content := s.t("notify.rally", map[string]any{
		"Mention":   s.mention(),
		"Place":     strings.ToUpper(s.place(ev, "notify.default_gathering")),
		"GroupCode": s.groupCode(ev),
	})
	if err := s.sendSide(ctx, ev.ChannelID, content); err != nil {
		logging.Error("Envoi du rappel de l'événement "+id, err)
		return false
	}
	log.Printf("🔔 Rappel envoyé pour l'événement %s (%s)", id, current)
	return true
}

// RefreshAll re-renders every active event. Events without a live message
// are republished. Per-event failures are logged and never stop the scan.
func (s *EventService) RefreshAll(ctx context.Context) {
	active, err := s.events.FindActive(ctx)
	if err != nil {
		logging.Error("Lecture des événements actifs", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.RefreshConcurrency)
	for _, ev := range active {
		id := ev.ID
		g.Go(func() error {
			defer logging.Recover()
			if err := s.refresh(gctx, id); err != nil {
				logging.Error("Rafraîchissement de l'événement "+id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *EventService) refresh(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.loadActive(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) || errors.Is(err, domain.ErrEventClosed) {
			return nil
		}
		return err
	}
	if ev.MessageID != "" {
		exists, err := s.messenger.MessageExists(ctx, ev.ChannelID, ev.MessageID)
		if err != nil {
			return err
		}
		if exists {
			err := s.messenger.EditEvent(ctx, ev.ChannelID, ev.MessageID, output.EventMessage{Event: ev, Kind: output.CardLive})
			if !errors.Is(err, output.ErrMessageNotFound) {
				return err
			}
		}
	}
	log.Printf("♻️ Republication du message de l'événement %s", ev.ID)
	return s.publish(ctx, ev, "")
}

func (s *EventService) place(ev *entities.Event, fallbackKey string) string {
	if p := strings.TrimSpace(ev.Location); p != "" {
		return p
	}
	return s.t(fallbackKey, nil)
}
