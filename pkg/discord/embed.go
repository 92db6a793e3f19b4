package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/pkg/hhmm"
)

const maxTitleLen = 256

// Palette maps the named bar colors to their RGB values.
type Palette struct {
	Purple int
	Green  int
	Red    int
	Grey   int
}

var colorAliases = map[string]string{
	"purple":     "purple",
	"violet":     "purple",
	"фиолетовый": "purple",
	"green":      "green",
	"зелёный":    "green",
	"зеленый":    "green",
	"red":        "red",
	"красный":    "red",
	"grey":       "grey",
	"gray":       "grey",
	"серый":      "grey",
}

// Resolve returns the bar color for free-text input. Unknown or empty
// input resolves to purple.
func (p Palette) Resolve(colorText string) int {
	switch colorAliases[strings.ToLower(strings.TrimSpace(colorText))] {
	case "green":
		return p.Green
	case "red":
		return p.Red
	case "grey":
		return p.Grey
	default:
		return p.Purple
	}
}

// Translate renders a localized label.
type Translate func(key string, data map[string]any) string

// BuildEventEmbed renders the live card of an event.
func BuildEventEmbed(ev *entities.Event, p Palette, t Translate) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     truncate(ev.Name, maxTitleLen),
		Color:     p.Resolve(ev.Color),
		Fields:    eventFields(ev, t),
		Footer:    &discordgo.MessageEmbedFooter{Text: t("card.footer", map[string]any{"ID": ev.ID})},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildCompletedEmbed renders the frozen card of a completed event.
func BuildCompletedEmbed(ev *entities.Event, p Palette, t Translate, title, gratitude string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     truncate(title, maxTitleLen),
		Color:     p.Resolve(ev.Color),
		Fields:    eventFields(ev, t),
		Footer:    &discordgo.MessageEmbedFooter{Text: t("card.completed_footer", map[string]any{"Gratitude": gratitude, "ID": ev.ID})},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func eventFields(ev *entities.Event, t Translate) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField
	inline := func(key, value string) {
		if value = strings.TrimSpace(value); value != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: t(key, nil), Value: value, Inline: true})
		}
	}

	inline("card.server", ev.Server)
	inline("card.limit", fmt.Sprint(ev.ParticipantLimit))
	inline("card.time", hhmm.Display(ev.Time))
	inline("card.location", ev.Location)
	inline("card.group", ev.Group)
	inline("card.map", ev.Map)
	inline("card.color", ev.Color)
	inline("card.creator", "<@"+ev.CreatorID+">")

	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  t("card.roster", map[string]any{"Count": len(ev.MainRoster), "Limit": ev.ParticipantLimit}),
		Value: FormatRoster(ev.MainRoster),
	})
	return fields
}

// FormatRoster renders the numbered mention list, or "-" when empty.
func FormatRoster(userIDs []string) string {
	if len(userIDs) == 0 {
		return "-"
	}
	var b strings.Builder
	for i, id := range userIDs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. <@%s>", i+1, id)
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
