package quota

import (
	"fmt"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
)

// Per-plan limits. The pro note limit is a sentinel: pro tenants are gated
// by plan, not by count, but the stored settings always carry a value.
const (
	FreeMaxNotes = 3
	FreeMaxUsers = 1
	ProMaxNotes  = 999999
	ProMaxUsers  = 1000
)

// SettingsForPlan returns the quota settings a tenant stores when it is
// created on or switched to the given plan.
func SettingsForPlan(plan string) (model.TenantSettings, error) {
	switch plan {
	case model.PlanFree:
		return model.TenantSettings{MaxNotes: FreeMaxNotes, MaxUsers: FreeMaxUsers}, nil
	case model.PlanPro:
		return model.TenantSettings{MaxNotes: ProMaxNotes, MaxUsers: ProMaxUsers}, nil
	default:
		return model.TenantSettings{}, apperr.InvalidPlan(fmt.Sprintf("invalid plan: %s", plan))
	}
}

// CheckNoteQuota decides whether the tenant may create another note given
// its current note count. Pro tenants are effectively unlimited.
func CheckNoteQuota(tenant *model.Tenant, currentCount int64) error {
	if tenant.Plan == model.PlanPro {
		return nil
	}
	if currentCount < int64(tenant.Settings.MaxNotes) {
		return nil
	}
	return apperr.QuotaExceeded("note limit reached for your plan, upgrade to pro for unlimited notes")
}

// CheckUserQuota decides whether the tenant may add another user given its
// current member count.
func CheckUserQuota(tenant *model.Tenant, currentCount int64) error {
	if currentCount < int64(tenant.Settings.MaxUsers) {
		return nil
	}
	return apperr.QuotaExceeded("user limit reached for your plan")
}
