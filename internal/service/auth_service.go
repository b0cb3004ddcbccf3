package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/quota"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/jwtutil"
)

// AuthService handles registration and login
type AuthService struct {
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

// NewAuthService creates an AuthService backed by the given store and signer
func NewAuthService(db *gorm.DB, jwt *jwtutil.JWTUtil) *AuthService {
	return &AuthService{db: db, jwt: jwt}
}

// Session is the result of a successful registration or login
type Session struct {
	User   model.User   `json:"user"`
	Tenant model.Tenant `json:"tenant"`
	Token  string       `json:"token"`
}

// RegisterInput carries the fields of a registration request
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new tenant on the free plan together with its founding
// admin user, then issues an identity token for the pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, apperr.Validation("email, password, and name are required")
	}

	var existing model.User
	if result := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&existing); result.Error == nil {
		return nil, apperr.Conflict("user with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	settings, err := quota.SettingsForPlan(model.PlanFree)
	if err != nil {
		return nil, err
	}

	tenant := model.Tenant{
		Name:     fmt.Sprintf("%s's Tenant", in.Name),
		Plan:     model.PlanFree,
		Settings: settings,
	}
	user := model.User{
		Email:    in.Email,
		Password: string(hashed),
		Name:     in.Name,
		Role:     model.RoleAdmin,
	}

	// Tenant first, then the user referencing it
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(&tenant); result.Error != nil {
			return result.Error
		}
		user.TenantID = tenant.ID
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	token, err := s.jwt.GenerateToken(user.Email, user.ID, tenant.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{User: user, Tenant: tenant, Token: token}, nil
}

// Login verifies the credentials and issues an identity token. Unknown email
// and wrong password report the same error so login cannot be used as an
// account oracle.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	var user model.User
	if result := s.db.WithContext(ctx).Where("email = ?", email).First(&user); result.Error != nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	var tenant model.Tenant
	if result := s.db.WithContext(ctx).First(&tenant, user.TenantID); result.Error != nil {
		return nil, apperr.Internal(result.Error)
	}

	token, err := s.jwt.GenerateToken(user.Email, user.ID, tenant.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &Session{User: user, Tenant: tenant, Token: token}, nil
}
