package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/quota"
)

// TenantService manages a tenant's plan and reports quota usage
type TenantService struct {
	db *gorm.DB
}

// NewTenantService creates a TenantService backed by the given store
func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// Get returns the principal's tenant
func (s *TenantService) Get(ctx context.Context, p *auth.Principal) (*model.Tenant, error) {
	if err := auth.Authorize(p, auth.ActionViewTenant); err != nil {
		return nil, err
	}

	var tenant model.Tenant
	result := s.db.WithContext(ctx).First(&tenant, p.Tenant.ID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tenant not found")
		}
		return nil, apperr.Internal(result.Error)
	}
	return &tenant, nil
}

// ChangePlan switches the tenant to the given plan and stores the quota
// settings derived from it. Re-selecting the current plan succeeds without
// writing anything, so the tenant's update time is untouched.
func (s *TenantService) ChangePlan(ctx context.Context, p *auth.Principal, newPlan string) (*model.Tenant, error) {
	if err := auth.Authorize(p, auth.ActionChangePlan); err != nil {
		return nil, err
	}

	settings, err := quota.SettingsForPlan(newPlan)
	if err != nil {
		return nil, err
	}

	tenant, err := s.Get(ctx, p)
	if err != nil {
		return nil, err
	}
	if tenant.Plan == newPlan {
		return tenant, nil
	}

	tenant.Plan = newPlan
	tenant.Settings = settings
	if result := s.db.WithContext(ctx).Save(tenant); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	return tenant, nil
}

// TenantUsage reports the tenant's current resource counts against its limits
type TenantUsage struct {
	Plan     string `json:"plan"`
	Notes    int64  `json:"notes"`
	MaxNotes int    `json:"max_notes"`
	Users    int64  `json:"users"`
	MaxUsers int    `json:"max_users"`
}

// Usage returns the tenant's note and user counts alongside its plan limits
func (s *TenantService) Usage(ctx context.Context, p *auth.Principal) (*TenantUsage, error) {
	if err := auth.Authorize(p, auth.ActionViewTenant); err != nil {
		return nil, err
	}

	var notes int64
	if result := s.db.WithContext(ctx).Model(&model.Note{}).Where("tenant_id = ?", p.Tenant.ID).Count(&notes); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}
	var users int64
	if result := s.db.WithContext(ctx).Model(&model.User{}).Where("tenant_id = ?", p.Tenant.ID).Count(&users); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}

	return &TenantUsage{
		Plan:     p.Tenant.Plan,
		Notes:    notes,
		MaxNotes: p.Tenant.Settings.MaxNotes,
		Users:    users,
		MaxUsers: p.Tenant.Settings.MaxUsers,
	}, nil
}
