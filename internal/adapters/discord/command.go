package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

const (
	commandEvent  = "event"
	subCreate     = "create"
	subDelete     = "delete"
	optionEventID = "id"
)

// commands returns the slash commands registered at startup.
func (h *Handler) commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandEvent,
			Description: h.translate("command.event", nil),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subCreate,
					Description: h.translate("command.create", nil),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subDelete,
					Description: h.translate("command.delete", nil),
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        optionEventID,
							Description: h.translate("command.delete_arg", nil),
							Required:    true,
						},
					},
				},
			},
		},
	}
}

func (h *Handler) HandleCommand(s interactionResponder, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != commandEvent || len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	switch sub.Name {
	case subCreate:
		h.handleCreateCommand(s, i)
	case subDelete:
		id := ""
		for _, opt := range sub.Options {
			if opt.Name == optionEventID {
				id = opt.StringValue()
			}
		}
		h.handleDeleteCommand(s, i, id)
	default:
		log.Printf("⚠️ Sous-commande inconnue: %s", sub.Name)
		respondEphemeral(s, i.Interaction, h.translate("errors.unknown_action", nil))
	}
}

func (h *Handler) handleCreateCommand(s interactionResponder, i *discordgo.InteractionCreate) {
	ctx, cancel := interactionContext()
	defer cancel()

	defaults, err := h.events.StartCreate(ctx, actorOf(i))
	if err != nil {
		h.fail(s, i, err)
		return
	}
	respondModal(s, i.Interaction, h.createModal1(defaults))
}

func (h *Handler) handleDeleteCommand(s interactionResponder, i *discordgo.InteractionCreate, id string) {
	ctx, cancel := interactionContext()
	defer cancel()

	ev, err := h.events.Delete(ctx, actorOf(i), id)
	if err != nil {
		h.fail(s, i, err)
		return
	}
	respondEphemeral(s, i.Interaction, h.translate("success.deleted", map[string]any{"Name": ev.Name}))
}
