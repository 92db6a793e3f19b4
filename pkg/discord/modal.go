package discord

import "github.com/bwmarrin/discordgo"

// ModalValues collects every text input of a submitted modal by CustomID.
func ModalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, c := range data.Components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if input, ok := rc.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}

// TextInputRow wraps a short text input in its own row.
func TextInputRow(customID, label, placeholder, value string, required bool, maxLength int) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    customID,
			Label:       label,
			Style:       discordgo.TextInputShort,
			Placeholder: placeholder,
			Value:       value,
			Required:    required,
			MaxLength:   maxLength,
		},
	}}
}
