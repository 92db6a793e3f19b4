package discord

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/config"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/infrastructure/scheduler"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

// Service is what the bot drives: the use cases and the periodic scans.
type Service interface {
	input.EventUseCase
	scheduler.Scans
}

// Bot is the Discord adapter.
type Bot struct {
	session   *discordgo.Session
	config    *config.Config
	service   Service
	handler   *Handler
	scheduler *scheduler.Scheduler
}

// NewSession prepares an unopened session with the intents the bot needs.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la création de la session Discord: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildMessages
	return s, nil
}

// NewBot wires the handler on an existing session.
func NewBot(cfg *config.Config, session *discordgo.Session, service Service, tr output.T) *Bot {
	bot := &Bot{
		session: session,
		config:  cfg,
		service: service,
		handler: NewHandler(service, tr, cfg.Locale, cfg.Gratitude),
	}
	bot.setupHandlers()
	return bot
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleReady)
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleMessageDelete)
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("🤖 Connecté en tant que %s", r.User.String())
	err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusIdle),
		Activities: []*discordgo.Activity{
			{Name: b.config.StatusActivity, Type: discordgo.ActivityTypeWatching},
		},
	})
	if err != nil {
		log.Printf("⚠️ Erreur lors de la mise à jour du statut: %v", err)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer logging.Recover()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handler.HandleCommand(s, i)
	case discordgo.InteractionModalSubmit:
		b.handler.HandleModalSubmit(s, i)
	case discordgo.InteractionMessageComponent:
		b.handler.HandleComponent(s, i)
	}
}

// handleMessageDelete republishes an active event whose card was deleted.
func (b *Bot) handleMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	defer logging.Recover()

	ctx, cancel := interactionContext()
	defer cancel()
	if err := b.service.Republish(ctx, m.ID); err != nil {
		logging.Error("Republication après suppression du message "+m.ID, err)
	}
}

// Start runs the bot until interrupted.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("erreur lors de l'ouverture de la session: %w", err)
	}
	defer b.session.Close()

	appID := b.config.ClientID
	if appID == "" {
		appID = b.session.State.User.ID
	}
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.config.GuildID, b.handler.commands()); err != nil {
		log.Printf("⚠️ Erreur lors de l'enregistrement des commandes: %v", err)
	}

	if err := b.startScheduler(); err != nil {
		return fmt.Errorf("erreur lors du démarrage du planificateur: %w", err)
	}
	defer b.stopScheduler()

	fmt.Println("🤖 Bot en ligne ! Appuyez sur CTRL+C pour quitter.")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("👋 Arrêt du bot")
	return nil
}
