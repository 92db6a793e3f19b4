package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
	"eventbot/pkg/hhmm"
	"eventbot/pkg/tz"
)

// Options configures the EventService.
type Options struct {
	AdminUserIDs []string
	AdminRoleIDs []string
	// PingRoleID is mentioned in announcements and reminders when set.
	PingRoleID string
	Locale     string
	// ReminderZone is the reference zone compared against event times.
	ReminderZone *time.Location
	// SessionTTL bounds how long a half-filled creation/configuration form lives.
	SessionTTL time.Duration
	// MessageTTL is how long side messages (rally, ping, timers) stay; 0 keeps them.
	MessageTTL time.Duration
	// TimerTick is the countdown edit interval.
	TimerTick time.Duration
	// RefreshConcurrency bounds parallel edits during the refresh scan.
	RefreshConcurrency int
	Now                func() time.Time
}

type configureSession struct {
	EventID string
	Draft   entities.EventDraft
}

// EventService is the event lifecycle engine. It is the only component that
// mutates events: each operation locks the event id, reads the record fresh
// from the repository, mutates it, persists it, then renders it.
type EventService struct {
	events    output.EventRepository
	settings  output.SettingsRepository
	messenger output.Messenger
	tr        output.T
	opts      Options
	now       func() time.Time

	auth       *Authorizer
	locks      *keyedMutex
	creates    *Sessions[entities.EventDraft]
	configures *Sessions[configureSession]
	timers     *TimerRegistry

	// lifetime outlives single interactions (timers, message expiry).
	lifetime context.Context
	stop     context.CancelFunc
}

func NewEventService(
	events output.EventRepository,
	settings output.SettingsRepository,
	messenger output.Messenger,
	tr output.T,
	opts Options,
) *EventService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ReminderZone == nil {
		opts.ReminderZone = tz.Moscow
	}
	if opts.RefreshConcurrency <= 0 {
		opts.RefreshConcurrency = 4
	}
	lifetime, stop := context.WithCancel(context.Background())
	s := &EventService{
		events:     events,
		settings:   settings,
		messenger:  messenger,
		tr:         tr,
		opts:       opts,
		now:        opts.Now,
		auth:       NewAuthorizer(opts.AdminUserIDs, opts.AdminRoleIDs),
		locks:      newKeyedMutex(),
		creates:    NewSessions[entities.EventDraft](opts.SessionTTL, opts.Now),
		configures: NewSessions[configureSession](opts.SessionTTL, opts.Now),
		lifetime:   lifetime,
		stop:       stop,
	}
	s.timers = NewTimerRegistry(opts.TimerTick, opts.Now, s.expireLater)
	return s
}

// Close stops every running countdown and waits for them.
func (s *EventService) Close() {
	s.stop()
	s.timers.Wait()
}

// IsAdmin exposes the authorization rule to adapters.
func (s *EventService) IsAdmin(actor entities.Actor) bool {
	return s.auth.IsAdmin(actor)
}

func (s *EventService) requireAdmin(actor entities.Actor) error {
	if !s.auth.IsAdmin(actor) {
		return domain.ErrNotAdmin
	}
	return nil
}

// loadActive fetches id fresh and rejects terminal events.
func (s *EventService) loadActive(ctx context.Context, id string) (*entities.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ev.IsActive() {
		return nil, domain.ErrEventClosed
	}
	return ev, nil
}

// AdminEvent returns the active event id when the actor may run admin flows
// on it. Adapters call it before showing a form or a chooser.
func (s *EventService) AdminEvent(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.loadActive(ctx, id)
}

// GetEvent returns a copy of the event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

// GetEventByMessageID returns the event whose public message is messageID.
func (s *EventService) GetEventByMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	return s.events.FindByMessageID(ctx, messageID)
}

// --- création ---

// DraftInput is the raw first-step form.
type DraftInput struct {
	Name     string
	Server   string
	Time     string
	Limit    string
	Location string
}

// BuildDraft applies the form rules: time is normalized, the limit falls
// back to fallbackLimit when absent/invalid and is bounded below by 1.
func BuildDraft(in DraftInput, fallbackLimit int) entities.EventDraft {
	limit, ok := hhmm.LeadingInt(in.Limit)
	if !ok || limit == 0 {
		limit = fallbackLimit
	}
	return entities.EventDraft{
		Name:             strings.TrimSpace(in.Name),
		Server:           strings.TrimSpace(in.Server),
		Time:             hhmm.Normalize(in.Time),
		ParticipantLimit: max(1, limit),
		Location:         strings.TrimSpace(in.Location),
	}
}

// StartCreate checks the actor may create events and returns the guild
// defaults used to prefill the form (nil when there are none).
func (s *EventService) StartCreate(ctx context.Context, actor entities.Actor) (*entities.GuildSettings, error) {
	if !actor.InGuild() {
		return nil, domain.ErrGuildOnly
	}
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.guildDefaults(ctx, actor.GuildID), nil
}

// SubmitCreateDraft stores the first step in the actor's pending session.
func (s *EventService) SubmitCreateDraft(_ context.Context, actor entities.Actor, in DraftInput) error {
	if err := s.requireAdmin(actor); err != nil {
		return err
	}
	s.creates.Put(actor.UserID, BuildDraft(in, entities.DefaultParticipantLimit))
	return nil
}

// PendingCreate confirms a first step is pending and returns the guild
// defaults for the second step.
func (s *EventService) PendingCreate(ctx context.Context, actor entities.Actor) (*entities.GuildSettings, error) {
	if _, ok := s.creates.Peek(actor.UserID); !ok {
		return nil, domain.ErrSessionExpired
	}
	return s.guildDefaults(ctx, actor.GuildID), nil
}

// SubmitCreate consumes the pending session, persists the new event, then
// publishes its message in channelID and attaches the message id.
func (s *EventService) SubmitCreate(ctx context.Context, actor entities.Actor, channelID string, extras entities.EventExtras) (*entities.Event, error) {
	draft, ok := s.creates.Take(actor.UserID)
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}

	ev := &entities.Event{
		ID:               s.events.NextID(),
		Name:             draft.Name,
		Server:           draft.Server,
		ParticipantLimit: draft.ParticipantLimit,
		Group:            strings.TrimSpace(extras.Group),
		Time:             draft.Time,
		Map:              strings.TrimSpace(extras.Map),
		Location:         draft.Location,
		CreatorID:        actor.UserID,
		MainRoster:       []string{},
		ReserveList:      []string{},
		Rejected:         []string{},
		Status:           entities.StatusActive,
		ChannelID:        channelID,
		CreatedAt:        s.now().UnixMilli(),
	}
	ev.SetColor(extras.Color)

	unlock := s.locks.Lock(ev.ID)
	defer unlock()

	if err := s.events.Save(ctx, ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	log.Printf("✅ Événement %s créé par %s (%s)", ev.ID, actor.UserID, ev.Name)

	s.rememberDefaults(ctx, actor.GuildID, ev)

	if err := s.publish(ctx, ev, s.announcement(ev)); err != nil {
		logging.Error("Publication du message de l'événement "+ev.ID, err)
	}
	return ev.Clone(), nil
}

// Delete removes an event. Only its creator may delete it, in any state.
func (s *EventService) Delete(ctx context.Context, actor entities.Actor, id string) (*entities.Event, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev.CreatorID != actor.UserID {
		return nil, domain.ErrNotCreator
	}
	if _, err := s.events.Delete(ctx, id); err != nil {
		return nil, err
	}
	log.Printf("🗑️ Événement %s supprimé par %s", id, actor.UserID)
	return ev, nil
}

// Republish reacts to the deletion of messageID: when it backed an active
// event, a fresh message is posted and attached.
func (s *EventService) Republish(ctx context.Context, messageID string) error {
	found, err := s.events.FindByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil
		}
		return err
	}

	unlock := s.locks.Lock(found.ID)
	defer unlock()

	ev, err := s.events.FindByID(ctx, found.ID)
	if err != nil || !ev.IsActive() || ev.MessageID != messageID {
		return nil
	}
	log.Printf("♻️ Message de l'événement %s supprimé, republication", ev.ID)
	return s.publish(ctx, ev, "")
}

// --- rendu ---

// publish posts a fresh live card and persists the new message id.
// Caller holds the event lock.
func (s *EventService) publish(ctx context.Context, ev *entities.Event, content string) error {
	msgID, err := s.messenger.SendEvent(ctx, ev.ChannelID, output.EventMessage{Content: content, Event: ev, Kind: output.CardLive})
	if err != nil {
		return err
	}
	ev.MessageID = msgID
	return s.events.Save(ctx, ev)
}

// render pushes the current state to the public message. Render failures
// never undo a persisted transition.
func (s *EventService) render(ctx context.Context, ev *entities.Event, content string) {
	if ev.MessageID == "" {
		return
	}
	err := s.messenger.EditEvent(ctx, ev.ChannelID, ev.MessageID, output.EventMessage{Content: content, Event: ev, Kind: output.CardLive})
	if err != nil {
		logging.Error("Mise à jour du message de l'événement "+ev.ID, err)
	}
}

// sendSide posts a transient message and schedules its deletion.
func (s *EventService) sendSide(ctx context.Context, channelID, content string) error {
	msgID, err := s.messenger.SendText(ctx, channelID, content)
	if err != nil {
		return err
	}
	s.expireLater(channelID, msgID)
	return nil
}

func (s *EventService) expireLater(channelID, messageID string) {
	if s.opts.MessageTTL <= 0 || messageID == "" {
		return
	}
	time.AfterFunc(s.opts.MessageTTL, func() {
		defer logging.Recover()
		if s.lifetime.Err() != nil {
			return
		}
		ctx, cancel := context.WithTimeout(s.lifetime, 30*time.Second)
		defer cancel()
		if err := s.messenger.DeleteMessage(ctx, channelID, messageID); err != nil && !errors.Is(err, output.ErrMessageNotFound) {
			logging.Error("Suppression d'un message expiré", err)
		}
	})
}

// --- paramètres serveur ---

func (s *EventService) guildDefaults(ctx context.Context, guildID string) *entities.GuildSettings {
	if s.settings == nil || guildID == "" {
		return nil
	}
	gs, err := s.settings.Get(ctx, guildID)
	if err != nil {
		logging.Error("Lecture des paramètres du serveur "+guildID, err)
		return nil
	}
	return gs
}

func (s *EventService) rememberDefaults(ctx context.Context, guildID string, ev *entities.Event) {
	if s.settings == nil || guildID == "" {
		return
	}
	err := s.settings.Save(ctx, guildID, entities.GuildSettings{
		Name:             ev.Name,
		Server:           ev.Server,
		ParticipantLimit: ev.ParticipantLimit,
		Color:            ev.Color,
		Group:            ev.Group,
		Time:             ev.Time,
	})
	if err != nil {
		logging.Error("Enregistrement des paramètres du serveur "+guildID, err)
	}
}

// --- textes ---

func (s *EventService) t(key string, data map[string]any) string {
	return s.tr.T(s.opts.Locale, key, data)
}

// mention is the role mention prefix, empty without a ping role.
func (s *EventService) mention() string {
	if s.opts.PingRoleID == "" {
		return ""
	}
	return "<@&" + s.opts.PingRoleID + "> "
}

func (s *EventService) announcement(ev *entities.Event) string {
	if s.opts.PingRoleID == "" {
		return ""
	}
	return s.t("notify.announce", map[string]any{"Mention": s.mention(), "Name": ev.Name})
}

func (s *EventService) groupCode(ev *entities.Event) string {
	if ev.Group == "" {
		return ""
	}
	return s.t("notify.group_code", map[string]any{"Group": ev.Group})
}
