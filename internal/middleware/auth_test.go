package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/config"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/jwtutil"
)

func newAuthFixture(t *testing.T) (echo.MiddlewareFunc, string) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Tenant{}, &model.User{}, &model.Note{}))

	tenant := model.Tenant{Name: "acme", Plan: model.PlanFree, Settings: model.TenantSettings{MaxNotes: 3, MaxUsers: 1}}
	require.NoError(t, db.Create(&tenant).Error)
	user := model.User{Email: "alice@acme.test", Name: "Alice", TenantID: tenant.ID, Role: model.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	jwt := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "test-key", ExpirationHours: 24})
	token, err := jwt.GenerateToken(user.Email, user.ID, tenant.ID)
	require.NoError(t, err)

	return Authenticate(auth.NewResolver(db, jwt)), token
}

func performRequest(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, *auth.Principal) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *auth.Principal
	handler := mw(func(c echo.Context) error {
		seen = PrincipalFromContext(c)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, seen
}

func TestAuthenticateStoresPrincipal(t *testing.T) {
	mw, token := newAuthFixture(t)

	rec, principal := performRequest(mw, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, principal)
	assert.Equal(t, "alice@acme.test", principal.User.Email)
	assert.Equal(t, model.RoleUser, principal.User.Role)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	mw, _ := newAuthFixture(t)

	rec, principal := performRequest(mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	mw, token := newAuthFixture(t)

	rec, principal := performRequest(mw, "Token "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, principal)
}

func TestAuthenticateRejectsInvalidToken(t *testing.T) {
	mw, _ := newAuthFixture(t)

	rec, principal := performRequest(mw, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, principal)
}
