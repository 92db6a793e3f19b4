package discord

import (
	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	pkgdiscord "eventbot/pkg/discord"
)

const maxOptionLabel = 100

// buildComponents renders the controls of a live event card: one row of
// buttons, then the admin list menu.
func buildComponents(eventID string, t pkgdiscord.Translate) []discordgo.MessageComponent {
	buttons := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: t("ui.button.join", nil), Style: discordgo.SuccessButton, CustomID: customID(prefixJoin, eventID)},
		discordgo.Button{Label: t("ui.button.leave", nil), Style: discordgo.DangerButton, CustomID: customID(prefixLeave, eventID)},
		discordgo.Button{Label: t("ui.button.ping", nil), Style: discordgo.PrimaryButton, CustomID: customID(prefixPing, eventID)},
		discordgo.Button{Label: t("ui.button.complete", nil), Style: discordgo.SecondaryButton, CustomID: customID(prefixComplete, eventID)},
	}}

	option := func(value, key string) discordgo.SelectMenuOption {
		return discordgo.SelectMenuOption{Label: t(key, nil), Value: value, Description: t(key+"_hint", nil)}
	}
	menu := discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID(prefixLists, eventID),
			Placeholder: t("ui.menu.placeholder", nil),
			Options: []discordgo.SelectMenuOption{
				option(listReschedule, "ui.menu.reschedule"),
				option(listExclude, "ui.menu.exclude"),
				option(listConfigure, "ui.menu.configure"),
				option(listTimer, "ui.menu.timer"),
			},
		},
	}}
	return []discordgo.MessageComponent{buttons, menu}
}

// completionChooser is the ephemeral menu picking how an event ends.
func completionChooser(eventID string, t pkgdiscord.Translate) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, 3)
	for _, ct := range []entities.CompletionType{entities.CompletionSuccess, entities.CompletionFailure, entities.CompletionComplete} {
		key := "ui.complete." + string(ct)
		options = append(options, discordgo.SelectMenuOption{
			Label:       t(key, nil),
			Value:       string(ct),
			Description: t(key+"_hint", nil),
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID(prefixCompleteType, eventID),
			Placeholder: t("ui.complete.placeholder", nil),
			Options:     options,
		},
	}}}
}

// excludeChooser lists roster members. Members whose name could not be
// resolved are labelled with the tail of their id.
func excludeChooser(eventID string, members []entities.Member, t pkgdiscord.Translate) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(members))
	for _, m := range members {
		label := m.DisplayName
		if label == "" {
			label = t("ui.exclude.fallback", map[string]any{"Suffix": idSuffix(m.UserID)})
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncateLabel(label),
			Value:       m.UserID,
			Description: t("ui.exclude.hint", nil),
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    customID(prefixExclude, eventID),
			Placeholder: t("ui.exclude.placeholder", nil),
			Options:     options,
		},
	}}}
}

func idSuffix(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxOptionLabel {
		return s
	}
	return string(r[:maxOptionLabel-1]) + "…"
}
