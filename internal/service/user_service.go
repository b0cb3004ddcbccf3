package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/quota"
)

// Password invited users start with until they log in and change it.
// A real deployment sends it by invitation mail instead of documenting it.
const invitedUserPassword = "password"

// UserService manages the members of a tenant
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService backed by the given store
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Invite creates a new member in the inviting admin's tenant. Email
// uniqueness is global, matching registration, and the tenant's user quota
// is applied before the insert.
func (s *UserService) Invite(ctx context.Context, p *auth.Principal, email, role string) (*model.User, error) {
	if err := auth.Authorize(p, auth.ActionInviteUser); err != nil {
		return nil, err
	}

	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	if role == "" {
		role = model.RoleUser
	}
	if !model.ValidRole(role) {
		return nil, apperr.Validation("invalid role specified")
	}

	var existing model.User
	if result := s.db.WithContext(ctx).Where("email = ?", email).First(&existing); result.Error == nil {
		return nil, apperr.Conflict("user with this email already exists")
	}

	var count int64
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("tenant_id = ?", p.Tenant.ID).Count(&count)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	if err := quota.CheckUserQuota(&p.Tenant, count); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(invitedUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := model.User{
		Email:    email,
		Password: string(hashed),
		Name:     fmt.Sprintf("Invited User (%s)", email),
		TenantID: p.Tenant.ID,
		Role:     role,
	}
	if result := s.db.WithContext(ctx).Create(&user); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	return &user, nil
}

// ListMembers returns the users of the principal's tenant
func (s *UserService) ListMembers(ctx context.Context, p *auth.Principal) ([]model.User, error) {
	if err := auth.Authorize(p, auth.ActionListUsers); err != nil {
		return nil, err
	}

	var users []model.User
	result := s.db.WithContext(ctx).Where("tenant_id = ?", p.Tenant.ID).Order("created_at asc").Find(&users)
	if result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// CountForTenant returns the number of users the tenant currently holds
func (s *UserService) CountForTenant(ctx context.Context, tenantID uint) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.User{}).Where("tenant_id = ?", tenantID).Count(&count)
	if result.Error != nil {
		return 0, apperr.Internal(result.Error)
	}
	return count, nil
}
