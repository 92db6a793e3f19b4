package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/infrastructure/logging"
)

// interactionResponder is the part of *discordgo.Session handlers answer with.
type interactionResponder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionResponseDelete(interaction *discordgo.Interaction, options ...discordgo.RequestOption) error
}

var _ interactionResponder = (*discordgo.Session)(nil)

// Nick > GlobalName > Username
func resolveDisplayName(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

func respond(s interactionResponder, i *discordgo.Interaction, resp *discordgo.InteractionResponse) {
	if err := s.InteractionRespond(i, resp); err != nil {
		reportResponseError("Réponse à l'interaction", err)
	}
}

func respondEphemeral(s interactionResponder, i *discordgo.Interaction, content string) {
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEphemeralComponents(s interactionResponder, i *discordgo.Interaction, content string, components []discordgo.MessageComponent) {
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: components,
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondModal(s interactionResponder, i *discordgo.Interaction, modal *discordgo.InteractionResponseData) {
	respond(s, i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	})
}

// deferEphemeral acknowledges the interaction before slow work. It reports
// false when the interaction can no longer be answered.
func deferEphemeral(s interactionResponder, i *discordgo.Interaction) bool {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		reportResponseError("Accusé de réception de l'interaction", err)
		return false
	}
	return true
}

// deferUpdate acknowledges a component whose message is replaced once the
// work is done (see finishUpdate).
func deferUpdate(s interactionResponder, i *discordgo.Interaction) bool {
	err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		reportResponseError("Accusé de réception de l'interaction", err)
		return false
	}
	return true
}

// finishUpdate replaces the message of a deferred component, dropping its controls.
func finishUpdate(s interactionResponder, i *discordgo.Interaction, content string) {
	editReplyComponents(s, i, content, []discordgo.MessageComponent{})
}

func editReply(s interactionResponder, i *discordgo.Interaction, content string) {
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content}); err != nil {
		reportResponseError("Mise à jour de la réponse", err)
	}
}

func editReplyComponents(s interactionResponder, i *discordgo.Interaction, content string, components []discordgo.MessageComponent) {
	if _, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content, Components: &components}); err != nil {
		reportResponseError("Mise à jour de la réponse", err)
	}
}

func deleteReply(s interactionResponder, i *discordgo.Interaction) {
	if err := s.InteractionResponseDelete(i); err != nil {
		reportResponseError("Suppression de la réponse", err)
	}
}

func reportResponseError(what string, err error) {
	if isInteractionExpired(err) {
		log.Printf("⌛ %s: interaction expirée", what)
		return
	}
	logging.Error(what, err)
}
