package filestore

import (
	"context"
	"fmt"
	"sync"

	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
)

var _ output.SettingsRepository = (*SettingsRepository)(nil)

// SettingsRepository stores guild defaults in a JSON file (guild id -> settings).
// The file is re-read on every Get so manual edits are picked up.
type SettingsRepository struct {
	mu   sync.Mutex
	path string
}

func NewSettingsRepository(path string) *SettingsRepository {
	return &SettingsRepository{path: path}
}

func (r *SettingsRepository) Get(_ context.Context, guildID string) (*entities.GuildSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	s, ok := all[guildID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SettingsRepository) Save(_ context.Context, guildID string, settings entities.GuildSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	all, err := r.load()
	if err != nil {
		// Fichier corrompu : on repart de zéro plutôt que de bloquer la sauvegarde.
		logging.Error("Erreur lors du chargement des paramètres serveur", err)
		all = map[string]entities.GuildSettings{}
	}
	all[guildID] = settings
	if err := writeJSON(r.path, all); err != nil {
		return fmt.Errorf("save guild settings: %w", err)
	}
	return nil
}

func (r *SettingsRepository) load() (map[string]entities.GuildSettings, error) {
	all := map[string]entities.GuildSettings{}
	if err := readJSON(r.path, &all); err != nil {
		return nil, fmt.Errorf("load guild settings: %w", err)
	}
	return all, nil
}
