package domain

import "errors"

// Error is a domain error carrying a stable code used to look up the
// user-facing message (errors.<code>).
type Error struct {
	Code string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(code, msg string) *Error {
	return &Error{Code: code, msg: msg}
}

// Code returns the domain code of err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Domain errors.
var (
	ErrEventNotFound         = newError("event_not_found", "événement non trouvé")
	ErrEventClosed           = newError("event_closed", "événement déjà terminé ou annulé")
	ErrAlreadyJoined         = newError("already_joined", "participant déjà inscrit")
	ErrRosterFull            = newError("roster_full", "liste principale complète")
	ErrNotJoined             = newError("not_joined", "participant non inscrit")
	ErrNotAdmin              = newError("not_admin", "action réservée aux administrateurs")
	ErrNotCreator            = newError("not_creator", "seul le créateur peut effectuer cette action")
	ErrSessionExpired        = newError("session_expired", "session expirée")
	ErrGuildOnly             = newError("guild_only", "commande disponible uniquement sur un serveur")
	ErrInvalidCompletionType = newError("invalid_completion_type", "type de clôture invalide")
	ErrEmptyRoster           = newError("empty_roster", "liste principale vide")
	ErrChannelUnavailable    = newError("channel_unavailable", "salon indisponible")
	ErrCannotReduceLimit     = newError("cannot_reduce_limit", "limite inférieure au nombre d'inscrits")
)
