package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// HandleModalSubmit routes modal submissions by custom id.
func (h *Handler) HandleModalSubmit(s interactionResponder, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	action, eventID, ok := parseCustomID(data.CustomID)
	if !ok {
		log.Printf("⚠️ Modal inconnu: %s", data.CustomID)
		return
	}

	switch action {
	case idCreateModal1:
		h.handleCreateStep1(s, i, data)
	case idCreateModal2:
		h.handleCreateStep2(s, i, data)
	case prefixRescheduleModal:
		h.handleRescheduleSubmit(s, i, eventID, data)
	case prefixConfigureModal1:
		h.handleConfigureStep1(s, i, eventID, data)
	case prefixConfigureModal2:
		h.handleConfigureStep2(s, i, eventID, data)
	case prefixTimerModal:
		h.handleTimerSubmit(s, i, eventID, data)
	default:
		log.Printf("⚠️ Modal sans traitement: %s", data.CustomID)
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
	}
}

// HandleComponent routes buttons and select menus by custom id.
func (h *Handler) HandleComponent(s interactionResponder, i *discordgo.InteractionCreate) {
	data := i.MessageComponentData()
	action, eventID, ok := parseCustomID(data.CustomID)
	if !ok {
		log.Printf("⚠️ Composant inconnu: %s", data.CustomID)
		return
	}

	switch action {
	case prefixJoin:
		h.HandleJoin(s, i, eventID)
	case prefixLeave:
		h.HandleLeave(s, i, eventID)
	case prefixPing:
		h.HandlePing(s, i, eventID)
	case prefixComplete:
		h.HandleComplete(s, i, eventID)
	case prefixCompleteType:
		h.HandleCompleteType(s, i, eventID)
	case prefixLists:
		h.HandleLists(s, i, eventID)
	case prefixExclude:
		h.HandleExclude(s, i, eventID)
	case idCreateStep2:
		h.HandleCreateStep2(s, i)
	case prefixConfigureStep2:
		h.HandleConfigureStep2(s, i, eventID)
	default:
		log.Printf("⚠️ Composant sans traitement: %s", data.CustomID)
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
	}
}
