package filestore

import (
	"context"
	"path/filepath"
	"testing"

	"eventbot/internal/domain/entities"
)

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "guild-settings.json")
	repo := NewSettingsRepository(path)

	got, err := repo.Get(ctx, "guild")
	if err != nil || got != nil {
		t.Fatalf("Get on empty store = %v, %v", got, err)
	}

	want := entities.GuildSettings{Name: "Raid", ParticipantLimit: 20, Color: "green", Group: "ABC", Time: "18:30"}
	if err := repo.Save(ctx, "guild", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = NewSettingsRepository(path).Get(ctx, "guild")
	if err != nil || got == nil || *got != want {
		t.Errorf("Get = %+v, %v", got, err)
	}
}
