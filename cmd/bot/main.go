package main

import (
	"context"
	"log"
	"os"
	"time"

	"eventbot/internal/adapters/discord"
	"eventbot/internal/application"
	"eventbot/internal/config"
	"eventbot/internal/infrastructure/database"
	"eventbot/internal/infrastructure/filestore"
	"eventbot/internal/infrastructure/i18n"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("❌ Configuration invalide: %v", err)
		return 1
	}

	closeLogs, err := logging.Setup(cfg.LogsDir)
	if err != nil {
		log.Printf("❌ Erreur lors de l'initialisation des journaux: %v", err)
		return 1
	}
	defer closeLogs()
	defer logging.Recover()

	events, closeStore, err := openEventStore(cfg)
	if err != nil {
		logging.Error("Initialisation du stockage des événements", err)
		return 1
	}
	defer closeStore()

	tr := i18n.NewTranslator(cfg.Locale)
	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		logging.Error("Création de la session Discord", err)
		return 1
	}

	palette := pkgdiscord.Palette{
		Purple: cfg.Colors.Purple,
		Green:  cfg.Colors.Green,
		Red:    cfg.Colors.Red,
		Grey:   cfg.Colors.Grey,
	}
	messenger := discord.NewMessenger(session, palette, tr, cfg.Locale, cfg.Gratitude)
	svc := application.NewEventService(events, filestore.NewSettingsRepository(cfg.SettingsPath), messenger, tr, application.Options{
		AdminUserIDs: cfg.AdminUserIDs,
		AdminRoleIDs: cfg.AdminRoleIDs,
		PingRoleID:   cfg.PingRoleID,
		Locale:       cfg.Locale,
		ReminderZone: cfg.ReminderZone,
		SessionTTL:   cfg.SessionTTL,
		MessageTTL:   cfg.MessageTTL,
		TimerTick:    2 * time.Second,
	})
	defer svc.Close()

	bot := discord.NewBot(cfg, session, svc, tr)
	if err := bot.Start(); err != nil {
		logging.Error("Démarrage du bot", err)
		return 1
	}
	return 0
}

// openEventStore uses PostgreSQL when DATABASE_URL is set, the JSON file otherwise.
func openEventStore(cfg *config.Config) (output.EventRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Printf("📁 Stockage des événements dans %s", cfg.EventsPath)
		return filestore.NewEventRepository(cfg.EventsPath), func() {}, nil
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return database.NewEventRepository(pool), pool.Close, nil
}
