package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"eventbot/pkg/tz"
)

// Colors are the embed bar colors selectable by name.
type Colors struct {
	Purple int
	Green  int
	Red    int
	Grey   int
}

type Config struct {
	Token    string
	ClientID string
	GuildID  string

	AdminUserIDs []string
	AdminRoleIDs []string
	PingRoleID   string

	EventsPath   string
	SettingsPath string
	DatabaseURL  string
	LogsDir      string

	Gratitude      string
	Colors         Colors
	StatusActivity string
	Locale         string

	ReminderZone *time.Location
	SessionTTL   time.Duration
	MessageTTL   time.Duration
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Token:          strings.TrimSpace(getenv("DISCORD_BOT_TOKEN")),
		ClientID:       get("DISCORD_CLIENT_ID", ""),
		GuildID:        get("DISCORD_GUILD_ID", ""),
		AdminUserIDs:   SplitList(getenv("DISCORD_ADMIN_USER_IDS")),
		AdminRoleIDs:   SplitList(getenv("DISCORD_ADMIN_ROLE_IDS")),
		PingRoleID:     get("DISCORD_EVENT_PING_ROLE_ID", ""),
		EventsPath:     get("EVENTS_STORAGE_PATH", "./data/events.json"),
		DatabaseURL:    get("DATABASE_URL", ""),
		LogsDir:        get("LOGS_DIR", "./logs"),
		Gratitude:      get("EVENT_GRATITUDE_MESSAGE", ""),
		StatusActivity: get("BOT_STATUS_ACTIVITY", "Семья San La Murte"),
		Locale:         get("BOT_LOCALE", "ru"),
	}
	cfg.SettingsPath = filepath.Join(filepath.Dir(cfg.EventsPath), "guild-settings.json")

	var err error
	colors := []struct {
		key string
		def string
		dst *int
	}{
		{"EMBED_COLOR_PURPLE", "9B59B6", &cfg.Colors.Purple},
		{"EMBED_COLOR_GREEN", "57B99D", &cfg.Colors.Green},
		{"EMBED_COLOR_RED", "ED4245", &cfg.Colors.Red},
		{"EMBED_COLOR_GREY", "4F545C", &cfg.Colors.Grey},
	}
	for _, c := range colors {
		if *c.dst, err = parseHexColor(get(c.key, c.def)); err != nil {
			return nil, fmt.Errorf("config: %s invalide: %w", c.key, err)
		}
	}

	if cfg.ReminderZone, err = tz.ParseOffset(getenv("REMINDER_UTC_OFFSET")); err != nil {
		return nil, fmt.Errorf("config: REMINDER_UTC_OFFSET invalide: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", "15m")); err != nil {
		return nil, fmt.Errorf("config: SESSION_TTL invalide: %w", err)
	}
	if cfg.MessageTTL, err = time.ParseDuration(get("MESSAGE_TTL", "5h")); err != nil {
		return nil, fmt.Errorf("config: MESSAGE_TTL invalide: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: DISCORD_BOT_TOKEN est requis et ne peut pas être vide")
	}

	for name, id := range map[string]string{
		"DISCORD_CLIENT_ID":          c.ClientID,
		"DISCORD_GUILD_ID":           c.GuildID,
		"DISCORD_EVENT_PING_ROLE_ID": c.PingRoleID,
	} {
		if id != "" && !isSnowflake(id) {
			return fmt.Errorf("config: %s doit être un ID Discord (chiffres uniquement)", name)
		}
	}

	if c.SessionTTL < 0 || c.MessageTTL < 0 {
		return fmt.Errorf("config: SESSION_TTL et MESSAGE_TTL ne peuvent pas être négatifs")
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
		}
	}

	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseHexColor(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("%q dépasse FFFFFF", s)
	}
	return int(v), nil
}

func isSnowflake(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
