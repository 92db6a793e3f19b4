package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

func TestBuildDraft(t *testing.T) {
	tests := []struct {
		name  string
		in    DraftInput
		limit int
		time  string
	}{
		{"normalizes time", DraftInput{Name: " Raid ", Time: "17:5", Limit: "2"}, 2, "17:05"},
		{"missing limit falls back", DraftInput{Name: "Raid", Time: "9"}, entities.DefaultParticipantLimit, "09:00"},
		{"garbage limit falls back", DraftInput{Name: "Raid", Time: "25:99", Limit: "abc"}, entities.DefaultParticipantLimit, "23:59"},
		{"negative limit is bounded", DraftInput{Name: "Raid", Limit: "-4"}, 1, "00:00"},
		{"leading digits", DraftInput{Name: "Raid", Limit: "12 people"}, 12, "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BuildDraft(tt.in, entities.DefaultParticipantLimit)
			if d.ParticipantLimit != tt.limit {
				t.Errorf("limit = %d, want %d", d.ParticipantLimit, tt.limit)
			}
			if d.Time != tt.time {
				t.Errorf("time = %q, want %q", d.Time, tt.time)
			}
			if d.Name != "Raid" {
				t.Errorf("name = %q", d.Name)
			}
		})
	}
}

func TestCreatePublishesAndPersists(t *testing.T) {
	f := newFixture(t)
	ev := f.create(t, DraftInput{Name: "Raid", Time: "17:5", Limit: "2", Location: "Port"}, entities.EventExtras{Color: "green", Group: " G1 "})

	got := f.stored(t, ev.ID)
	if got.Time != "17:05" || got.ParticipantLimit != 2 || got.Status != entities.StatusActive {
		t.Fatalf("stored event = %+v", got)
	}
	if got.Group != "G1" || !got.ColorSetByUser || got.CreatorID != "admin" {
		t.Errorf("extras not applied: %+v", got)
	}
	if len(got.MainRoster) != 0 || got.ReserveList == nil || got.Rejected == nil {
		t.Errorf("rosters should be empty, not nil: %+v", got)
	}

	cards := f.msgr.Cards()
	if len(cards) != 1 {
		t.Fatalf("cards sent = %d, want 1", len(cards))
	}
	if got.MessageID != cards[0].ID {
		t.Errorf("messageId = %q, want %q", got.MessageID, cards[0].ID)
	}
	if !strings.HasPrefix(cards[0].Content, "notify.announce") || !strings.Contains(cards[0].Content, "<@&role>") {
		t.Errorf("announcement = %q", cards[0].Content)
	}

	gs, err := f.settings.Get(context.Background(), "g1")
	if err != nil || gs == nil {
		t.Fatalf("guild defaults not saved: %v %v", gs, err)
	}
	if gs.Name != "Raid" || gs.ParticipantLimit != 2 || gs.Time != "17:05" {
		t.Errorf("guild defaults = %+v", gs)
	}
}

func TestCreateWithoutPingRoleHasNoAnnouncement(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.PingRoleID = "" })
	f.create(t, DraftInput{Name: "Raid", Time: "20:00"}, entities.EventExtras{})
	if c := f.msgr.Cards()[0].Content; c != "" {
		t.Errorf("content = %q, want empty", c)
	}
}

func TestCreateRequiresGuildAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.StartCreate(ctx, entities.Actor{UserID: "admin"}); !errors.Is(err, domain.ErrGuildOnly) {
		t.Errorf("DM StartCreate err = %v, want ErrGuildOnly", err)
	}
	if _, err := f.svc.StartCreate(ctx, alice); !errors.Is(err, domain.ErrNotAdmin) {
		t.Errorf("StartCreate err = %v, want ErrNotAdmin", err)
	}
	if err := f.svc.SubmitCreateDraft(ctx, alice, DraftInput{Name: "x"}); !errors.Is(err, domain.ErrNotAdmin) {
		t.Errorf("SubmitCreateDraft err = %v, want ErrNotAdmin", err)
	}
}

func TestCreateSessionIsConsumedAndExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SubmitCreate(ctx, admin, "chan", entities.EventExtras{}); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("no session err = %v, want ErrSessionExpired", err)
	}

	f.create(t, DraftInput{Name: "Raid", Time: "10:00"}, entities.EventExtras{})
	if _, err := f.svc.SubmitCreate(ctx, admin, "chan", entities.EventExtras{}); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("reused session err = %v, want ErrSessionExpired", err)
	}

	if err := f.svc.SubmitCreateDraft(ctx, admin, DraftInput{Name: "Late"}); err != nil {
		t.Fatal(err)
	}
	f.clock.Advance(16 * time.Minute)
	if _, err := f.svc.PendingCreate(ctx, admin); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("PendingCreate after TTL err = %v, want ErrSessionExpired", err)
	}
	if _, err := f.svc.SubmitCreate(ctx, admin, "chan", entities.EventExtras{}); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("SubmitCreate after TTL err = %v, want ErrSessionExpired", err)
	}
}

func TestStartCreateReturnsGuildDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gs, err := f.svc.StartCreate(ctx, admin)
	if err != nil || gs != nil {
		t.Fatalf("first StartCreate = %v, %v; want nil defaults", gs, err)
	}
	f.create(t, DraftInput{Name: "Raid", Time: "21:30", Limit: "10"}, entities.EventExtras{Color: "red"})

	gs, err = f.svc.StartCreate(ctx, admin)
	if err != nil || gs == nil {
		t.Fatalf("StartCreate = %v, %v", gs, err)
	}
	if gs.Color != "red" || gs.ParticipantLimit != 10 {
		t.Errorf("defaults = %+v", gs)
	}
}

func TestDeleteIsCreatorOnly(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.AdminUserIDs = []string{"admin", "alice"} })
	ev := f.create(t, DraftInput{Name: "Raid", Time: "10:00"}, entities.EventExtras{})
	ctx := context.Background()

	if _, err := f.svc.Delete(ctx, alice, ev.ID); !errors.Is(err, domain.ErrNotCreator) {
		t.Fatalf("Delete by another admin err = %v, want ErrNotCreator", err)
	}
	if _, err := f.svc.Delete(ctx, admin, ev.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.svc.GetEvent(ctx, ev.ID); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("GetEvent after delete err = %v", err)
	}
	if _, err := f.svc.Delete(ctx, admin, "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("Delete missing err = %v", err)
	}
}

func TestRepublishAfterMessageDeleted(t *testing.T) {
	f := newFixture(t)
	ev := f.create(t, DraftInput{Name: "Raid", Time: "10:00"}, entities.EventExtras{})
	ctx := context.Background()

	if err := f.svc.Republish(ctx, "unrelated"); err != nil {
		t.Fatalf("Republish unrelated: %v", err)
	}
	if n := len(f.msgr.Cards()); n != 1 {
		t.Fatalf("unrelated deletion republished (%d cards)", n)
	}

	f.msgr.markGone(ev.MessageID)
	if err := f.svc.Republish(ctx, ev.MessageID); err != nil {
		t.Fatalf("Republish: %v", err)
	}
	cards := f.msgr.Cards()
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	got := f.stored(t, ev.ID)
	if got.MessageID != cards[1].ID || got.MessageID == ev.MessageID {
		t.Errorf("messageId = %q, want %q", got.MessageID, cards[1].ID)
	}
	if cards[1].Content != "" {
		t.Errorf("republished content = %q, want empty", cards[1].Content)
	}
}

func TestRenderFailureKeepsTransition(t *testing.T) {
	f := newFixture(t)
	ev := f.create(t, DraftInput{Name: "Raid", Time: "10:00"}, entities.EventExtras{})
	f.msgr.editErr = errors.New("forbidden")

	if _, err := f.svc.Join(context.Background(), alice, ev.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if got := f.stored(t, ev.ID).MainRoster; len(got) != 1 {
		t.Errorf("roster = %v, want [alice]", got)
	}
}

func TestSideMessagesExpire(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.MessageTTL = 10 * time.Millisecond })
	ev := f.create(t, DraftInput{Name: "Raid", Time: "10:00"}, entities.EventExtras{})

	if err := f.svc.Ping(context.Background(), admin, ev.ID); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	ping := f.msgr.Texts()[0].ID

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ok, _ := f.msgr.MessageExists(context.Background(), "chan", ping); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("ping message was not deleted")
}

var _ output.Messenger = (*fakeMessenger)(nil)
