package discord

import (
	"github.com/bwmarrin/discordgo"
)

func (h *Handler) HandleJoin(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	if _, err := h.events.Join(ctx, actorOf(i), eventID); err != nil {
		h.failDeferred(s, i, err)
		return
	}
	editReply(s, i.Interaction, h.translate("success.joined", nil))
}

func (h *Handler) HandleLeave(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	if _, err := h.events.Leave(ctx, actorOf(i), eventID); err != nil {
		h.failDeferred(s, i, err)
		return
	}
	editReply(s, i.Interaction, h.translate("success.left", nil))
}

// HandlePing posts the call-to-arms. The ephemeral acknowledgement is removed
// once the ping is out.
func (h *Handler) HandlePing(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	if err := h.events.Ping(ctx, actorOf(i), eventID); err != nil {
		h.failDeferred(s, i, err)
		return
	}
	deleteReply(s, i.Interaction)
}

// HandleComplete shows the outcome chooser to an admin.
func (h *Handler) HandleComplete(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	ctx, cancel := interactionContext()
	defer cancel()

	ev, err := h.events.AdminEvent(ctx, actorOf(i), eventID)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	respondEphemeralComponents(s, i.Interaction, h.translate("ui.complete.prompt", nil), completionChooser(ev.ID, h.translate))
}

// HandleCreateStep2 opens the second creation modal when a first step is pending.
func (h *Handler) HandleCreateStep2(s interactionResponder, i *discordgo.InteractionCreate) {
	ctx, cancel := interactionContext()
	defer cancel()

	defaults, err := h.events.PendingCreate(ctx, actorOf(i))
	if err != nil {
		h.fail(s, i, err)
		return
	}
	respondModal(s, i.Interaction, h.createModal2(defaults))
}

func (h *Handler) HandleConfigureStep2(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	ctx, cancel := interactionContext()
	defer cancel()

	ev, err := h.events.PendingConfigure(ctx, actorOf(i), eventID)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	respondModal(s, i.Interaction, h.configureModal2(ev))
}

// continueButton is attached to the "step saved" reply between two modals.
func (h *Handler) continueButton(customID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: h.translate("ui.button.continue", nil), Style: discordgo.PrimaryButton, CustomID: customID},
	}}}
}
