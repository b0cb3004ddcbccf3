package auth

import (
	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
)

// Action is an operation a principal may attempt within its tenant
type Action string

const (
	ActionReadNotes  Action = "notes:read"
	ActionCreateNote Action = "notes:create"
	ActionUpdateNote Action = "notes:update"
	ActionDeleteNote Action = "notes:delete"
	ActionPinNote    Action = "notes:pin"
	ActionInviteUser Action = "users:invite"
	ActionListUsers  Action = "users:list"
	ActionViewTenant Action = "tenant:view"
	ActionChangePlan Action = "tenant:change_plan"
)

// adminOnly lists tenant-administration actions that require the admin
// role regardless of resource ownership.
var adminOnly = map[Action]bool{
	ActionInviteUser: true,
	ActionChangePlan: true,
}

// Authorize decides whether the principal may perform the action. Resource
// actions on notes are open to any member role; tenant-admin actions need
// role admin. Denial is always forbidden, never unauthenticated: the caller
// holds a valid session, it just lacks privilege.
func Authorize(p *Principal, action Action) error {
	if adminOnly[action] {
		if !p.IsAdmin() {
			return apperr.Forbidden("administrator role required")
		}
		return nil
	}

	if !model.ValidRole(p.User.Role) {
		return apperr.Forbidden("insufficient role")
	}
	return nil
}

// CanDeleteNote applies the ownership rule on delete: an admin may delete
// any note in its tenant, a member only notes it authored. The note must
// already have been loaded through a tenant-scoped query.
func CanDeleteNote(p *Principal, note *model.Note) error {
	if p.IsAdmin() {
		return nil
	}
	if note.UserID != p.User.ID {
		return apperr.Forbidden("you can only delete your own notes")
	}
	return nil
}
