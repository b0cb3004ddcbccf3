package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/config"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/jwtutil"
)

func newResolverFixture(t *testing.T) (*Resolver, *gorm.DB, *jwtutil.JWTUtil) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Tenant{}, &model.User{}, &model.Note{}))

	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 24})
	return NewResolver(db, jwt), db, jwt
}

func seedPrincipal(t *testing.T, db *gorm.DB) (model.User, model.Tenant) {
	t.Helper()

	tenant := model.Tenant{
		Name:     "acme",
		Plan:     model.PlanFree,
		Settings: model.TenantSettings{MaxNotes: 3, MaxUsers: 1},
	}
	require.NoError(t, db.Create(&tenant).Error)

	user := model.User{
		Email:    "alice@acme.test",
		Name:     "Alice",
		TenantID: tenant.ID,
		Role:     model.RoleAdmin,
	}
	require.NoError(t, db.Create(&user).Error)
	return user, tenant
}

func TestResolveReturnsMaterializedPrincipal(t *testing.T) {
	resolver, db, jwt := newResolverFixture(t)
	user, tenant := seedPrincipal(t, db)

	token, err := jwt.GenerateToken(user.Email, user.ID, tenant.ID)
	require.NoError(t, err)

	p, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.User.ID)
	assert.Equal(t, user.Role, p.User.Role)
	assert.Equal(t, tenant.ID, p.Tenant.ID)
	assert.Equal(t, tenant.Settings, p.Tenant.Settings)
}

func TestResolveFailureModesAreIndistinguishable(t *testing.T) {
	resolver, db, jwt := newResolverFixture(t)
	user, tenant := seedPrincipal(t, db)

	validToken, err := jwt.GenerateToken(user.Email, user.ID, tenant.ID)
	require.NoError(t, err)

	otherKey := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "other-key", ExpirationHours: 24})
	forgedToken, err := otherKey.GenerateToken(user.Email, user.ID, tenant.ID)
	require.NoError(t, err)

	expiredIssuer := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: -1})
	expiredToken, err := expiredIssuer.GenerateToken(user.Email, user.ID, tenant.ID)
	require.NoError(t, err)

	ghostToken, err := jwt.GenerateToken("ghost@acme.test", user.ID+100, tenant.ID)
	require.NoError(t, err)

	cases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-token"},
		{"forged signature", forgedToken},
		{"expired token", expiredToken},
		{"user record gone", ghostToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(context.Background(), tc.token)
			require.Error(t, err)
			assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
		})
	}

	// tenant record gone behaves the same as user record gone
	require.NoError(t, db.Delete(&model.Tenant{}, tenant.ID).Error)
	_, err = resolver.Resolve(context.Background(), validToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}
