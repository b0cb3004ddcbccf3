package auth

import (
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
)

// Principal is the verified (user, tenant) pair established for one request.
// It is only ever produced by the Resolver; no handler or service trusts a
// user or tenant id supplied by the client.
type Principal struct {
	User   model.User
	Tenant model.Tenant
}

// IsAdmin reports whether the principal holds the admin role in its tenant
func (p *Principal) IsAdmin() bool {
	return p.User.Role == model.RoleAdmin
}
