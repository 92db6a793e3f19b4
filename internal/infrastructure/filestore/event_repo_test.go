package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

func newEvent(id string, status entities.Status, createdAt int64) *entities.Event {
	return &entities.Event{
		ID:               id,
		Name:             "Raid " + id,
		ParticipantLimit: 2,
		Time:             "17:05",
		CreatorID:        "creator",
		MainRoster:       []string{},
		ReserveList:      []string{},
		Rejected:         []string{},
		Status:           status,
		ChannelID:        "chan",
		CreatedAt:        createdAt,
	}
}

func TestEventRepositoryPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "events.json")
	repo := NewEventRepository(path)

	ev := newEvent("a", entities.StatusActive, 1)
	ev.MessageID = "msg-a"
	ev.MainRoster = []string{"u1", "u2"}
	if err := repo.Save(ctx, ev); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, newEvent("b", entities.StatusCompleted, 2)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := NewEventRepository(path)
	got, err := reloaded.FindByID(ctx, "a")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Raid a" || len(got.MainRoster) != 2 || got.MainRoster[1] != "u2" {
		t.Errorf("reloaded event = %+v", got)
	}
	byMsg, err := reloaded.FindByMessageID(ctx, "msg-a")
	if err != nil || byMsg.ID != "a" {
		t.Errorf("FindByMessageID = %v, %v", byMsg, err)
	}

	all, _ := reloaded.FindAll(ctx)
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("FindAll order = %v", ids(all))
	}
	active, _ := reloaded.FindActive(ctx)
	if len(active) != 1 || active[0].ID != "a" {
		t.Errorf("FindActive = %v", ids(active))
	}

	// Layout on disk: one JSON object keyed by id.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var onDisk map[string]map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("file is not an id-keyed object: %v", err)
	}
	if onDisk["a"]["participantLimit"] != float64(2) || onDisk["a"]["messageId"] != "msg-a" {
		t.Errorf("unexpected layout: %v", onDisk["a"])
	}
}

func TestEventRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(filepath.Join(t.TempDir(), "events.json"))
	if err := repo.Save(ctx, newEvent("a", entities.StatusActive, 1)); err != nil {
		t.Fatal(err)
	}
	got, _ := repo.FindByID(ctx, "a")
	got.MainRoster = append(got.MainRoster, "intruder")

	again, _ := repo.FindByID(ctx, "a")
	if len(again.MainRoster) != 0 {
		t.Errorf("store mutated through a returned copy: %v", again.MainRoster)
	}
}

func TestEventRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.json")
	repo := NewEventRepository(path)
	_ = repo.Save(ctx, newEvent("a", entities.StatusActive, 1))

	ok, err := repo.Delete(ctx, "a")
	if err != nil || !ok {
		t.Fatalf("Delete = %v, %v", ok, err)
	}
	ok, err = repo.Delete(ctx, "a")
	if err != nil || ok {
		t.Errorf("second Delete = %v, %v", ok, err)
	}
	if _, err := NewEventRepository(path).FindByID(ctx, "a"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("deleted event still persisted: %v", err)
	}
}

func TestEventRepositoryToleratesBadFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	missing := NewEventRepository(filepath.Join(dir, "missing.json"))
	if all, _ := missing.FindAll(ctx); len(all) != 0 {
		t.Errorf("missing file should start empty")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := NewEventRepository(corrupt)
	if all, _ := repo.FindAll(ctx); len(all) != 0 {
		t.Errorf("corrupt file should start empty")
	}
	if err := repo.Save(ctx, newEvent("a", entities.StatusActive, 1)); err != nil {
		t.Errorf("Save after corrupt load: %v", err)
	}

	blank := filepath.Join(dir, "blank.json")
	_ = os.WriteFile(blank, []byte("  \n"), 0o644)
	if all, _ := NewEventRepository(blank).FindAll(ctx); len(all) != 0 {
		t.Errorf("blank file should start empty")
	}
}

func TestNextIDUnique(t *testing.T) {
	repo := NewEventRepository(filepath.Join(t.TempDir(), "events.json"))
	seen := make(map[string]struct{}, 100_000)
	for i := 0; i < 100_000; i++ {
		id := repo.NextID()
		if _, dup := seen[id]; dup {
			t.Fatalf("collision after %d ids: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func ids(events []*entities.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}
