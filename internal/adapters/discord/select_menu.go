package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain"
)

// HandleLists dispatches the admin list menu of an event card.
func (h *Handler) HandleLists(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	actor := actorOf(i)
	ev, err := h.events.AdminEvent(ctx, actor, eventID)
	if err != nil {
		h.fail(s, i, err)
		return
	}

	switch values[0] {
	case listReschedule:
		respondModal(s, i.Interaction, h.rescheduleModal(ev))
	case listConfigure:
		respondModal(s, i.Interaction, h.configureModal1(ev))
	case listTimer:
		respondModal(s, i.Interaction, h.timerModal(ev))
	case listExclude:
		// Resolving up to 25 members can outlast the acknowledgement window.
		if !deferEphemeral(s, i.Interaction) {
			return
		}
		members, err := h.events.RosterChoices(ctx, actor, ev.ID)
		if err != nil {
			h.failDeferred(s, i, err)
			return
		}
		editReplyComponents(s, i.Interaction, h.translate("ui.exclude.prompt", nil), excludeChooser(ev.ID, members, h.translate))
	default:
		log.Printf("⚠️ Option de menu inconnue: %s", values[0])
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
	}
}

// HandleCompleteType closes the event with the chosen outcome and turns the
// chooser into the confirmation.
func (h *Handler) HandleCompleteType(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		h.fail(s, i, domain.ErrInvalidCompletionType)
		return
	}
	if !deferUpdate(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	ev, err := h.events.Complete(ctx, actorOf(i), eventID, values[0])
	if err != nil {
		h.logUseCaseError(i, err)
		finishUpdate(s, i.Interaction, h.errorText(err))
		return
	}
	finishUpdate(s, i.Interaction, h.translate("success.completed", map[string]any{
		"Name":      ev.Name,
		"Outcome":   h.translate("notify.outcome_"+string(ev.CompletionType), nil),
		"Gratitude": h.gratitude(),
	}))
}

func (h *Handler) HandleExclude(s interactionResponder, i *discordgo.InteractionCreate, eventID string) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
		return
	}
	if !deferUpdate(s, i.Interaction) {
		return
	}
	ctx, cancel := interactionContext()
	defer cancel()

	if _, err := h.events.Exclude(ctx, actorOf(i), eventID, values[0]); err != nil {
		h.logUseCaseError(i, err)
		finishUpdate(s, i.Interaction, h.errorText(err))
		return
	}
	finishUpdate(s, i.Interaction, h.translate("success.excluded", map[string]any{"UserID": values[0]}))
}
