package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "eventbot/pkg/discord"
)

// handleCreateStep1 stores the first creation step and offers the button
// opening the second one.
func (h *Handler) handleCreateStep1(s interactionResponder, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) {
	ctx, cancel := interactionContext()
	defer cancel()

	in := draftInput(pkgdiscord.ModalValues(data), createFieldPrefix)
	if err := h.events.SubmitCreateDraft(ctx, actorOf(i), in); err != nil {
		h.fail(s, i, err)
		return
	}
	respondEphemeralComponents(s, i.Interaction, h.translate("success.step_saved", nil), h.continueButton(idCreateStep2))
}

// handleCreateStep2 publishes the event in the channel of the interaction.
func (h *Handler) handleCreateStep2(s interactionResponder, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	extras := eventExtras(pkgdiscord.ModalValues(data), createFieldPrefix)
	ev, err := h.events.SubmitCreate(ctx, actorOf(i), i.ChannelID, extras)
	if err != nil {
		h.failDeferred(s, i, err)
		return
	}
	editReply(s, i.Interaction, h.translate("success.created", map[string]any{"Name": ev.Name}))
}
