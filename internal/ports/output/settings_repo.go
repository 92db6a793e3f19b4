package output

import (
	"context"

	"eventbot/internal/domain/entities"
)

// SettingsRepository stores optional per-guild defaults. Get returns nil, nil
// when the guild has none.
type SettingsRepository interface {
	Get(ctx context.Context, guildID string) (*entities.GuildSettings, error)
	Save(ctx context.Context, guildID string, settings entities.GuildSettings) error
}
