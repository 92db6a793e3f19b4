package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestModalValues(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: "event_create_modal_1",
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "event_name", Value: "Raid"},
			}},
			&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				&discordgo.TextInput{CustomID: "event_time", Value: "17:5"},
			}},
		},
	}
	got := ModalValues(data)
	if got["event_name"] != "Raid" || got["event_time"] != "17:5" {
		t.Errorf("values = %v", got)
	}
	if _, ok := got["event_map"]; ok {
		t.Error("absent field reported")
	}
}
