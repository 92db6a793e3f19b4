package application

import (
	"slices"

	"eventbot/internal/domain/entities"
)

// Authorizer decides whether an actor may run privileged operations.
type Authorizer struct {
	userIDs []string
	roleIDs []string
}

func NewAuthorizer(adminUserIDs, adminRoleIDs []string) *Authorizer {
	return &Authorizer{userIDs: adminUserIDs, roleIDs: adminRoleIDs}
}

// IsAdmin resolves, first match wins: user allowlist, Administrator
// permission, admin role allowlist. Without a membership context (DM) only
// the user allowlist applies.
func (a *Authorizer) IsAdmin(actor entities.Actor) bool {
	if actor.UserID != "" && slices.Contains(a.userIDs, actor.UserID) {
		return true
	}
	m := actor.Member
	if m == nil {
		return false
	}
	if m.Administrator {
		return true
	}
	for _, role := range m.RoleIDs {
		if slices.Contains(a.roleIDs, role) {
			return true
		}
	}
	return false
}
