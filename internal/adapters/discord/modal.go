package discord

import (
	"strconv"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/application"
	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

// Maximum lengths of the modal inputs.
const (
	maxNameLen  = 100
	maxShortLen = 50
	maxTimeLen  = 5
)

// draftForm describes the first step of the creation and configuration flows.
type draftForm struct {
	Name, Server, Time, Location string
	Limit                        int
}

type extrasForm struct {
	Color, Group, Map string
}

func (h *Handler) draftModal(customID, titleKey, prefix string, f draftForm) *discordgo.InteractionResponseData {
	limit := ""
	if f.Limit > 0 {
		limit = strconv.Itoa(f.Limit)
	}
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    h.translate(titleKey, nil),
		Components: []discordgo.MessageComponent{
			pkgdiscord.TextInputRow(prefix+fieldName, h.translate("ui.field.name", nil), "", f.Name, true, maxNameLen),
			pkgdiscord.TextInputRow(prefix+fieldServer, h.translate("ui.field.server", nil), h.translate("ui.field.server_hint", nil), f.Server, false, maxShortLen),
			pkgdiscord.TextInputRow(prefix+fieldTime, h.translate("ui.field.time", nil), "17:05", f.Time, true, maxTimeLen),
			pkgdiscord.TextInputRow(prefix+fieldLimit, h.translate("ui.field.limit", nil), strconv.Itoa(entities.DefaultParticipantLimit), limit, false, 3),
			pkgdiscord.TextInputRow(prefix+fieldLocation, h.translate("ui.field.location", nil), h.translate("ui.field.location_hint", nil), f.Location, false, maxShortLen),
		},
	}
}

func (h *Handler) extrasModal(customID, titleKey, prefix string, f extrasForm) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    h.translate(titleKey, nil),
		Components: []discordgo.MessageComponent{
			pkgdiscord.TextInputRow(prefix+fieldColor, h.translate("ui.field.color", nil), h.translate("ui.field.color_hint", nil), f.Color, false, maxShortLen),
			pkgdiscord.TextInputRow(prefix+fieldGroup, h.translate("ui.field.group", nil), h.translate("ui.field.group_hint", nil), f.Group, false, maxShortLen),
			pkgdiscord.TextInputRow(prefix+fieldMap, h.translate("ui.field.map", nil), h.translate("ui.field.map_hint", nil), f.Map, false, maxShortLen),
		},
	}
}

func (h *Handler) createModal1(defaults *entities.GuildSettings) *discordgo.InteractionResponseData {
	var f draftForm
	if defaults != nil {
		f = draftForm{Name: defaults.Name, Server: defaults.Server, Time: defaults.Time, Limit: defaults.ParticipantLimit}
	}
	return h.draftModal(idCreateModal1, "ui.modal.create_step1", createFieldPrefix, f)
}

func (h *Handler) createModal2(defaults *entities.GuildSettings) *discordgo.InteractionResponseData {
	var f extrasForm
	if defaults != nil {
		f = extrasForm{Color: defaults.Color, Group: defaults.Group}
	}
	return h.extrasModal(idCreateModal2, "ui.modal.create_step2", createFieldPrefix, f)
}

func (h *Handler) configureModal1(ev *entities.Event) *discordgo.InteractionResponseData {
	f := draftForm{Name: ev.Name, Server: ev.Server, Time: ev.Time, Location: ev.Location, Limit: ev.ParticipantLimit}
	return h.draftModal(customID(prefixConfigureModal1, ev.ID), "ui.modal.configure_step1", configureFieldPrefix, f)
}

func (h *Handler) configureModal2(ev *entities.Event) *discordgo.InteractionResponseData {
	f := extrasForm{Color: ev.Color, Group: ev.Group, Map: ev.Map}
	return h.extrasModal(customID(prefixConfigureModal2, ev.ID), "ui.modal.configure_step2", configureFieldPrefix, f)
}

func (h *Handler) rescheduleModal(ev *entities.Event) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID(prefixRescheduleModal, ev.ID),
		Title:    h.translate("ui.modal.reschedule", nil),
		Components: []discordgo.MessageComponent{
			pkgdiscord.TextInputRow(fieldNewTime, h.translate("ui.field.new_time", nil), "17:05", ev.Time, true, maxTimeLen),
		},
	}
}

func (h *Handler) timerModal(ev *entities.Event) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID(prefixTimerModal, ev.ID),
		Title:    h.translate("ui.modal.timer", nil),
		Components: []discordgo.MessageComponent{
			pkgdiscord.TextInputRow(fieldMinutes, h.translate("ui.field.minutes", nil), strconv.Itoa(application.DefaultTimerMinutes), "", true, 4),
		},
	}
}

// draftInput reads the first-step fields of a submitted modal.
func draftInput(values map[string]string, prefix string) application.DraftInput {
	return application.DraftInput{
		Name:     values[prefix+fieldName],
		Server:   values[prefix+fieldServer],
		Time:     values[prefix+fieldTime],
		Limit:    values[prefix+fieldLimit],
		Location: values[prefix+fieldLocation],
	}
}

func eventExtras(values map[string]string, prefix string) entities.EventExtras {
	return entities.EventExtras{
		Color: values[prefix+fieldColor],
		Group: values[prefix+fieldGroup],
		Map:   values[prefix+fieldMap],
	}
}
