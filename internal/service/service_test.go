package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/quota"
)

// newTestDB opens a fresh in-memory database migrated with the full schema.
// Each test gets its own named database so tests can run in parallel.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Tenant{}, &model.User{}, &model.Note{}))
	return db
}

func createTenant(t *testing.T, db *gorm.DB, name, plan string) model.Tenant {
	t.Helper()

	settings, err := quota.SettingsForPlan(plan)
	require.NoError(t, err)

	tenant := model.Tenant{Name: name, Plan: plan, Settings: settings}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func createUser(t *testing.T, db *gorm.DB, tenant model.Tenant, email, role string) model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := model.User{
		Email:    email,
		Password: string(hashed),
		Name:     email,
		TenantID: tenant.ID,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func asPrincipal(user model.User, tenant model.Tenant) *auth.Principal {
	return &auth.Principal{User: user, Tenant: tenant}
}

// reloadTenant refreshes a tenant from the store, the way the resolver does
// for every request.
func reloadTenant(t *testing.T, db *gorm.DB, id uint) model.Tenant {
	t.Helper()

	var tenant model.Tenant
	require.NoError(t, db.First(&tenant, id).Error)
	return tenant
}
