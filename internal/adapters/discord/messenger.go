package discord

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
	pkgdiscord "eventbot/pkg/discord"
)

// Messenger is the Discord implementation of output.Messenger.
type Messenger struct {
	session   *discordgo.Session
	palette   pkgdiscord.Palette
	tr        output.T
	locale    string
	gratitude string
}

var _ output.Messenger = (*Messenger)(nil)

// NewMessenger builds the messenger. An empty gratitude uses the localized default.
func NewMessenger(session *discordgo.Session, palette pkgdiscord.Palette, tr output.T, locale, gratitude string) *Messenger {
	return &Messenger{session: session, palette: palette, tr: tr, locale: locale, gratitude: gratitude}
}

func (m *Messenger) translate(key string, data map[string]any) string {
	return m.tr.T(m.locale, key, data)
}

func (m *Messenger) SendText(ctx context.Context, channelID, content string) (string, error) {
	msg, err := m.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: allowRoleMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapRESTError(err)
	}
	return msg.ID, nil
}

func (m *Messenger) SendEvent(ctx context.Context, channelID string, em output.EventMessage) (string, error) {
	embed, components := m.card(em)
	msg, err := m.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         em.Content,
		Embeds:          []*discordgo.MessageEmbed{embed},
		Components:      components,
		AllowedMentions: allowRoleMentions(),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapRESTError(err)
	}
	return msg.ID, nil
}

func (m *Messenger) EditText(ctx context.Context, channelID, messageID, content string) error {
	_, err := m.session.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx))
	return mapRESTError(err)
}

func (m *Messenger) EditEvent(ctx context.Context, channelID, messageID string, em output.EventMessage) error {
	embed, components := m.card(em)
	embeds := []*discordgo.MessageEmbed{embed}
	edit := &discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &components,
	}
	if em.Content != "" {
		edit.Content = &em.Content
		edit.AllowedMentions = allowRoleMentions()
	}
	_, err := m.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return mapRESTError(err)
}

func (m *Messenger) MessageExists(ctx context.Context, channelID, messageID string) (bool, error) {
	_, err := m.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err == nil {
		return true, nil
	}
	if err = mapRESTError(err); errors.Is(err, output.ErrMessageNotFound) {
		return false, nil
	}
	return false, err
}

func (m *Messenger) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return mapRESTError(m.session.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)))
}

func (m *Messenger) FetchMember(ctx context.Context, guildID, userID string) (*entities.Member, error) {
	member, err := m.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if restCode(err) == discordgo.ErrCodeUnknownMember {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Member{
		UserID:      userID,
		DisplayName: resolveDisplayName(member),
		RoleIDs:     member.Roles,
	}, nil
}

// card renders the embed and the controls of an event message.
func (m *Messenger) card(em output.EventMessage) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	if em.Kind == output.CardCompleted {
		title := m.translate("notify.completed_title_"+string(em.Event.CompletionType), map[string]any{"Name": em.Event.Name})
		gratitude := m.gratitude
		if gratitude == "" {
			gratitude = m.translate("notify.gratitude", nil)
		}
		return pkgdiscord.BuildCompletedEmbed(em.Event, m.palette, m.translate, title, gratitude), []discordgo.MessageComponent{}
	}
	return pkgdiscord.BuildEventEmbed(em.Event, m.palette, m.translate), buildComponents(em.Event.ID, m.translate)
}

func allowRoleMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{
		Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeRoles, discordgo.AllowedMentionTypeUsers},
	}
}

func restCode(err error) int {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Message != nil {
		return rerr.Message.Code
	}
	return 0
}

// mapRESTError turns a missing message or channel into output.ErrMessageNotFound.
func mapRESTError(err error) error {
	switch restCode(err) {
	case discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownChannel:
		return output.ErrMessageNotFound
	}
	return err
}
