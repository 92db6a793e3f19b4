package entities

// Member is the membership context of an actor inside a guild.
type Member struct {
	UserID        string
	DisplayName   string
	RoleIDs       []string
	Administrator bool
}

// Actor identifies who triggered an interaction. Member is nil outside a guild (DM).
type Actor struct {
	UserID  string
	GuildID string
	Member  *Member
}

// InGuild reports whether the interaction came from a guild.
func (a Actor) InGuild() bool {
	return a.GuildID != ""
}
