package auth

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/model"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/jwtutil"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
)

// Resolver turns an inbound bearer token into a verified Principal. It is
// the sole gateway between an ambient request and an authenticated
// user/tenant pair.
type Resolver struct {
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

// NewResolver creates a resolver backed by the given store and token verifier
func NewResolver(db *gorm.DB, jwt *jwtutil.JWTUtil) *Resolver {
	return &Resolver{db: db, jwt: jwt}
}

// Resolve verifies the raw token, loads the user and tenant it names, and
// returns the materialized Principal. Every failure mode reports the same
// unauthenticated error so a caller cannot distinguish an expired token from
// a deleted account.
func (r *Resolver) Resolve(ctx context.Context, rawToken string) (*Principal, error) {
	if rawToken == "" {
		return nil, apperr.Unauthenticated("authentication required")
	}

	claims, err := r.jwt.ValidateToken(rawToken)
	if err != nil {
		logger.GetLogger().Debug("token validation failed", zap.Error(err))
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	var user model.User
	if result := r.db.WithContext(ctx).First(&user, claims.UserID); result.Error != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	var tenant model.Tenant
	if result := r.db.WithContext(ctx).First(&tenant, claims.TenantID); result.Error != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	return &Principal{User: user, Tenant: tenant}, nil
}
