package discord

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
)

var palette = Palette{Purple: 1, Green: 2, Red: 3, Grey: 4}

func keyOnly(key string, data map[string]any) string {
	if len(data) == 0 {
		return key
	}
	return key + fmt.Sprint(data)
}

func TestPaletteResolve(t *testing.T) {
	tests := map[string]int{
		"":         1,
		"purple":   1,
		" Green ":  2,
		"КРАСНЫЙ":  3,
		"gray":     4,
		"серый":    4,
		"magenta":  1,
		"зелёный":  2,
	}
	for in, want := range tests {
		if got := palette.Resolve(in); got != want {
			t.Errorf("Resolve(%q) = %d, want %d", in, got, want)
		}
	}
}

func field(e *discordgo.MessageEmbed, name string) *discordgo.MessageEmbedField {
	for _, f := range e.Fields {
		if strings.HasPrefix(f.Name, name) {
			return f
		}
	}
	return nil
}

func TestBuildEventEmbed(t *testing.T) {
	ev := &entities.Event{
		ID:               "ev1",
		Name:             "Raid",
		ParticipantLimit: 3,
		Time:             "09:05",
		Color:            "red",
		CreatorID:        "42",
		MainRoster:       []string{"a", "b"},
	}
	e := BuildEventEmbed(ev, palette, keyOnly)

	if e.Title != "Raid" || e.Color != 3 {
		t.Errorf("title/color = %q %d", e.Title, e.Color)
	}
	if f := field(e, "card.time"); f == nil || f.Value != "9:05" {
		t.Errorf("time field = %+v", f)
	}
	if field(e, "card.server") != nil || field(e, "card.location") != nil {
		t.Error("empty optional fields should be omitted")
	}
	roster := e.Fields[len(e.Fields)-1]
	if roster.Inline || roster.Value != "1. <@a>\n2. <@b>" {
		t.Errorf("roster field = %+v", roster)
	}
	if !strings.Contains(roster.Name, "Count:2") || !strings.Contains(roster.Name, "Limit:3") {
		t.Errorf("roster header = %q", roster.Name)
	}
	if !strings.Contains(e.Footer.Text, "ev1") {
		t.Errorf("footer = %q", e.Footer.Text)
	}
}

func TestBuildCompletedEmbed(t *testing.T) {
	ev := &entities.Event{ID: "ev1", Name: "Raid", CreatorID: "42"}
	e := BuildCompletedEmbed(ev, palette, keyOnly, strings.Repeat("x", 300), "Merci")

	if n := len([]rune(e.Title)); n != maxTitleLen {
		t.Errorf("title length = %d", n)
	}
	if !strings.HasSuffix(e.Title, "…") {
		t.Errorf("title not ellipsized")
	}
	if !strings.Contains(e.Footer.Text, "Gratitude:Merci") {
		t.Errorf("footer = %q", e.Footer.Text)
	}
	if roster := e.Fields[len(e.Fields)-1]; roster.Value != "-" {
		t.Errorf("empty roster = %q", roster.Value)
	}
}
