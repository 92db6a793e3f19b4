package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/internal/infrastructure/logging"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

// interactionTimeout bounds the work done for a single interaction.
const interactionTimeout = 30 * time.Second

// Handler handles Discord interactions using use cases.
type Handler struct {
	events input.EventUseCase
	tr     output.T
	locale string
	thanks string
}

// NewHandler creates a Handler. An empty gratitude uses the localized default.
func NewHandler(events input.EventUseCase, tr output.T, locale, gratitude string) *Handler {
	return &Handler{events: events, tr: tr, locale: locale, thanks: gratitude}
}

func (h *Handler) translate(key string, data map[string]any) string {
	return h.tr.T(h.locale, key, data)
}

func (h *Handler) gratitude() string {
	if h.thanks != "" {
		return h.thanks
	}
	return h.translate("notify.gratitude", nil)
}

// errorText is the localized notice of a failed use case.
func (h *Handler) errorText(err error) string {
	return h.translate(pkgdiscord.ErrorKey(err), nil)
}

// fail answers a not yet acknowledged interaction with the notice of err.
func (h *Handler) fail(s interactionResponder, i *discordgo.InteractionCreate, err error) {
	h.logUseCaseError(i, err)
	respondEphemeral(s, i.Interaction, h.errorText(err))
}

// failDeferred replaces the deferred reply with the notice of err.
func (h *Handler) failDeferred(s interactionResponder, i *discordgo.InteractionCreate, err error) {
	h.logUseCaseError(i, err)
	editReply(s, i.Interaction, h.errorText(err))
}

func (h *Handler) logUseCaseError(i *discordgo.InteractionCreate, err error) {
	if pkgdiscord.ErrorKey(err) == "errors.generic" {
		logging.Error("Interaction "+interactionName(i), err)
		return
	}
	log.Printf("ℹ️ Interaction %s refusée: %v", interactionName(i), err)
}

// actorOf extracts who triggered the interaction. Outside a guild only the
// user id is known.
func actorOf(i *discordgo.InteractionCreate) entities.Actor {
	if i.Member == nil || i.Member.User == nil {
		a := entities.Actor{GuildID: i.GuildID}
		if i.User != nil {
			a.UserID = i.User.ID
		}
		return a
	}
	return entities.Actor{
		UserID:  i.Member.User.ID,
		GuildID: i.GuildID,
		Member: &entities.Member{
			UserID:        i.Member.User.ID,
			DisplayName:   resolveDisplayName(i.Member),
			RoleIDs:       i.Member.Roles,
			Administrator: i.Member.Permissions&discordgo.PermissionAdministrator != 0,
		},
	}
}

func interactionName(i *discordgo.InteractionCreate) string {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return "/" + i.ApplicationCommandData().Name
	case discordgo.InteractionMessageComponent:
		return i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return i.ModalSubmitData().CustomID
	}
	return i.Type.String()
}

func interactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), interactionTimeout)
}

// isInteractionExpired reports a token that Discord no longer accepts. Such
// interactions are dropped, never retried.
func isInteractionExpired(err error) bool {
	return restCode(err) == discordgo.ErrCodeUnknownInteraction
}
