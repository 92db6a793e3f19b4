package entities

// GuildSettings are the per-guild defaults used to prefill the creation flow.
type GuildSettings struct {
	Name             string `json:"name"`
	Server           string `json:"server,omitempty"`
	ParticipantLimit int    `json:"participantLimit"`
	Color            string `json:"color"`
	Group            string `json:"group"`
	Time             string `json:"time"`
}

// EventDraft holds the fields collected by the first step of the creation or
// reconfiguration flow.
type EventDraft struct {
	Name             string
	Server           string
	Time             string // normalisé HH:MM
	ParticipantLimit int
	Location         string
}

// EventExtras holds the optional fields collected by the second step.
type EventExtras struct {
	Color string
	Group string
	Map   string
}
