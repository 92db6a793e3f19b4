package application

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/filestore"
	"eventbot/internal/ports/output"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// echoTranslator renders "key map[...]" so tests can assert on keys and data.
type echoTranslator struct{}

func (echoTranslator) T(_ string, key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	return key + " " + fmt.Sprint(data)
}

type sentMessage struct {
	ChannelID string
	ID        string
	Content   string
	Event     *entities.Event
	Kind      output.CardKind
}

type fakeMessenger struct {
	mu       sync.Mutex
	seq      int
	texts    []sentMessage
	cards    []sentMessage
	edits    []sentMessage
	deleted  []string
	gone     map[string]bool
	members  map[string]*entities.Member
	sendErr  error
	editErr  error
	failEdit map[string]error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{gone: map[string]bool{}, members: map[string]*entities.Member{}, failEdit: map[string]error{}}
}

func (m *fakeMessenger) nextID() string {
	m.seq++
	return "m" + strconv.Itoa(m.seq)
}

func (m *fakeMessenger) SendText(_ context.Context, channelID, content string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return "", m.sendErr
	}
	id := m.nextID()
	m.texts = append(m.texts, sentMessage{ChannelID: channelID, ID: id, Content: content})
	return id, nil
}

func (m *fakeMessenger) SendEvent(_ context.Context, channelID string, msg output.EventMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return "", m.sendErr
	}
	id := m.nextID()
	m.cards = append(m.cards, sentMessage{ChannelID: channelID, ID: id, Content: msg.Content, Event: msg.Event.Clone(), Kind: msg.Kind})
	return id, nil
}

func (m *fakeMessenger) EditText(_ context.Context, channelID, messageID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone[messageID] {
		return output.ErrMessageNotFound
	}
	m.edits = append(m.edits, sentMessage{ChannelID: channelID, ID: messageID, Content: content})
	return nil
}

func (m *fakeMessenger) EditEvent(_ context.Context, channelID, messageID string, msg output.EventMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone[messageID] {
		return output.ErrMessageNotFound
	}
	if err := m.failEdit[msg.Event.ID]; err != nil {
		return err
	}
	if m.editErr != nil {
		return m.editErr
	}
	m.edits = append(m.edits, sentMessage{ChannelID: channelID, ID: messageID, Content: msg.Content, Event: msg.Event.Clone(), Kind: msg.Kind})
	return nil
}

func (m *fakeMessenger) MessageExists(_ context.Context, _, messageID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.gone[messageID], nil
}

func (m *fakeMessenger) DeleteMessage(_ context.Context, _, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gone[messageID] {
		return output.ErrMessageNotFound
	}
	m.gone[messageID] = true
	m.deleted = append(m.deleted, messageID)
	return nil
}

func (m *fakeMessenger) FetchMember(_ context.Context, _, userID string) (*entities.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if userID == "broken" {
		return nil, errors.New("boom")
	}
	return m.members[userID], nil
}

func (m *fakeMessenger) Texts() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.texts...)
}

func (m *fakeMessenger) Cards() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.cards...)
}

func (m *fakeMessenger) Edits() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.edits...)
}

func (m *fakeMessenger) markGone(id string) {
	m.mu.Lock()
	m.gone[id] = true
	m.mu.Unlock()
}

type fixture struct {
	svc      *EventService
	repo     *filestore.EventRepository
	settings *filestore.SettingsRepository
	msgr     *fakeMessenger
	clock    *fakeClock
}

var (
	admin = entities.Actor{UserID: "admin", GuildID: "g1", Member: &entities.Member{UserID: "admin"}}
	alice = entities.Actor{UserID: "alice", GuildID: "g1", Member: &entities.Member{UserID: "alice"}}
	bob   = entities.Actor{UserID: "bob", GuildID: "g1", Member: &entities.Member{UserID: "bob"}}
	carol = entities.Actor{UserID: "carol", GuildID: "g1", Member: &entities.Member{UserID: "carol"}}
)

func newFixture(t *testing.T, mutate ...func(*Options)) *fixture {
	t.Helper()
	dir := t.TempDir()
	clock := newFakeClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	opts := Options{
		AdminUserIDs: []string{"admin"},
		PingRoleID:   "role",
		Locale:       "ru",
		SessionTTL:   15 * time.Minute,
		TimerTick:    5 * time.Millisecond,
		Now:          clock.Now,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	f := &fixture{
		repo:     filestore.NewEventRepository(filepath.Join(dir, "events.json")),
		settings: filestore.NewSettingsRepository(filepath.Join(dir, "guild-settings.json")),
		msgr:     newFakeMessenger(),
		clock:    clock,
	}
	f.svc = NewEventService(f.repo, f.settings, f.msgr, echoTranslator{}, opts)
	t.Cleanup(f.svc.Close)
	return f
}

// create runs both creation steps as admin in channel "chan".
func (f *fixture) create(t *testing.T, in DraftInput, extras entities.EventExtras) *entities.Event {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.StartCreate(ctx, admin); err != nil {
		t.Fatalf("StartCreate: %v", err)
	}
	if err := f.svc.SubmitCreateDraft(ctx, admin, in); err != nil {
		t.Fatalf("SubmitCreateDraft: %v", err)
	}
	ev, err := f.svc.SubmitCreate(ctx, admin, "chan", extras)
	if err != nil {
		t.Fatalf("SubmitCreate: %v", err)
	}
	return ev
}

func (f *fixture) stored(t *testing.T, id string) *entities.Event {
	t.Helper()
	ev, err := f.repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID(%s): %v", id, err)
	}
	return ev
}
