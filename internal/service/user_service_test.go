package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
)

func TestInviteCreatesMemberInTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := createTenant(t, db, "acme", model.PlanPro)
	admin := createUser(t, db, tenant, "admin@acme.test", model.RoleAdmin)

	invited, err := svc.Invite(context.Background(), asPrincipal(admin, tenant), "bob@acme.test", model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "bob@acme.test", invited.Email)
	assert.Equal(t, model.RoleUser, invited.Role)
	assert.Equal(t, tenant.ID, invited.TenantID)
	assert.NotEmpty(t, invited.Password)
	assert.NotEqual(t, "password", invited.Password)
}

func TestInviteDefaultsToUserRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := createTenant(t, db, "acme", model.PlanPro)
	admin := createUser(t, db, tenant, "admin@acme.test", model.RoleAdmin)

	invited, err := svc.Invite(context.Background(), asPrincipal(admin, tenant), "bob@acme.test", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, invited.Role)
}

func TestInviteRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := createTenant(t, db, "acme", model.PlanPro)
	member := createUser(t, db, tenant, "alice@acme.test", model.RoleUser)

	_, err := svc.Invite(context.Background(), asPrincipal(member, tenant), "bob@acme.test", model.RoleUser)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestInviteRejectsInvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := createTenant(t, db, "acme", model.PlanPro)
	admin := createUser(t, db, tenant, "admin@acme.test", model.RoleAdmin)

	_, err := svc.Invite(context.Background(), asPrincipal(admin, tenant), "bob@acme.test", "owner")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestInviteRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenantA := createTenant(t, db, "tenant-a", model.PlanPro)
	tenantB := createTenant(t, db, "tenant-b", model.PlanPro)
	adminA := createUser(t, db, tenantA, "admin@a.test", model.RoleAdmin)
	createUser(t, db, tenantB, "taken@b.test", model.RoleUser)

	// email uniqueness is global, matching registration
	_, err := svc.Invite(context.Background(), asPrincipal(adminA, tenantA), "taken@b.test", model.RoleUser)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestInviteEnforcesUserQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenant := createTenant(t, db, "acme", model.PlanFree)
	admin := createUser(t, db, tenant, "admin@acme.test", model.RoleAdmin)

	// free plan allows a single user, and the admin already is one
	_, err := svc.Invite(context.Background(), asPrincipal(admin, tenant), "bob@acme.test", model.RoleUser)
	require.Error(t, err)
	assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))
}

func TestListMembersIsTenantScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	tenantA := createTenant(t, db, "tenant-a", model.PlanPro)
	tenantB := createTenant(t, db, "tenant-b", model.PlanPro)
	alice := createUser(t, db, tenantA, "alice@a.test", model.RoleUser)
	createUser(t, db, tenantA, "bob@a.test", model.RoleUser)
	createUser(t, db, tenantB, "eve@b.test", model.RoleAdmin)

	members, err := svc.ListMembers(context.Background(), asPrincipal(alice, tenantA))
	require.NoError(t, err)
	require.Len(t, members, 2)
	for _, m := range members {
		assert.Equal(t, tenantA.ID, m.TenantID)
	}
}
