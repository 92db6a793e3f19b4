package discord

import (
	"github.com/bwmarrin/discordgo"

	pkgdiscord "eventbot/pkg/discord"
	"eventbot/pkg/hhmm"
)

func (h *Handler) handleRescheduleSubmit(s interactionResponder, i *discordgo.InteractionCreate, eventID string, data discordgo.ModalSubmitInteractionData) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	ev, err := h.events.Reschedule(ctx, actorOf(i), eventID, pkgdiscord.ModalValues(data)[fieldNewTime])
	if err != nil {
		h.failDeferred(s, i, err)
		return
	}
	editReply(s, i.Interaction, h.translate("success.rescheduled", map[string]any{"Time": hhmm.Display(ev.Time)}))
}

func (h *Handler) handleConfigureStep1(s interactionResponder, i *discordgo.InteractionCreate, eventID string, data discordgo.ModalSubmitInteractionData) {
	ctx, cancel := interactionContext()
	defer cancel()

	in := draftInput(pkgdiscord.ModalValues(data), configureFieldPrefix)
	if err := h.events.SubmitConfigureDraft(ctx, actorOf(i), eventID, in); err != nil {
		h.fail(s, i, err)
		return
	}
	respondEphemeralComponents(s, i.Interaction, h.translate("success.step_saved", nil), h.continueButton(customID(prefixConfigureStep2, eventID)))
}

func (h *Handler) handleConfigureStep2(s interactionResponder, i *discordgo.InteractionCreate, eventID string, data discordgo.ModalSubmitInteractionData) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	extras := eventExtras(pkgdiscord.ModalValues(data), configureFieldPrefix)
	ev, err := h.events.SubmitConfigure(ctx, actorOf(i), eventID, extras)
	if err != nil {
		h.failDeferred(s, i, err)
		return
	}
	editReply(s, i.Interaction, h.translate("success.configured", map[string]any{"Name": ev.Name}))
}

// handleTimerSubmit starts the countdown. The countdown message itself is
// the feedback, so the acknowledgement is removed.
func (h *Handler) handleTimerSubmit(s interactionResponder, i *discordgo.InteractionCreate, eventID string, data discordgo.ModalSubmitInteractionData) {
	if !deferEphemeral(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	if _, err := h.events.StartTimer(ctx, actorOf(i), eventID, pkgdiscord.ModalValues(data)[fieldMinutes]); err != nil {
		h.failDeferred(s, i, err)
		return
	}
	deleteReply(s, i.Interaction)
}
