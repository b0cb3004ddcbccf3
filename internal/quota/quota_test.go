package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
)

func TestSettingsForPlan(t *testing.T) {
	free, err := SettingsForPlan(model.PlanFree)
	require.NoError(t, err)
	assert.Equal(t, model.TenantSettings{MaxNotes: 3, MaxUsers: 1}, free)

	pro, err := SettingsForPlan(model.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, model.TenantSettings{MaxNotes: 999999, MaxUsers: 1000}, pro)
}

func TestSettingsForPlanRejectsUnknownPlan(t *testing.T) {
	_, err := SettingsForPlan("enterprise")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidPlan, apperr.KindOf(err))
}

func TestCheckNoteQuotaFreePlan(t *testing.T) {
	tenant := &model.Tenant{
		Plan:     model.PlanFree,
		Settings: model.TenantSettings{MaxNotes: 3, MaxUsers: 1},
	}

	assert.NoError(t, CheckNoteQuota(tenant, 0))
	assert.NoError(t, CheckNoteQuota(tenant, 2))

	err := CheckNoteQuota(tenant, 3)
	require.Error(t, err)
	assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))
}

func TestCheckNoteQuotaProPlanIsUnlimited(t *testing.T) {
	tenant := &model.Tenant{
		Plan:     model.PlanPro,
		Settings: model.TenantSettings{MaxNotes: 999999, MaxUsers: 1000},
	}

	// gated by plan, not by the stored sentinel
	assert.NoError(t, CheckNoteQuota(tenant, 999999))
	assert.NoError(t, CheckNoteQuota(tenant, 2000000))
}

func TestCheckUserQuota(t *testing.T) {
	tenant := &model.Tenant{
		Plan:     model.PlanFree,
		Settings: model.TenantSettings{MaxNotes: 3, MaxUsers: 1},
	}

	assert.NoError(t, CheckUserQuota(tenant, 0))

	err := CheckUserQuota(tenant, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))
}
