package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/auth"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

const principalKey = "principal"

// Authenticate returns a middleware that resolves the bearer token into a
// Principal and stores it in the request context. Requests without a valid
// principal never reach the handlers behind it.
func Authenticate(resolver *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)
			prometheus.RecordAuthAttempt()

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Warn("Invalid authorization header format")
				prometheus.RecordAuthError("malformed_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization header format"})
			}

			principal, err := resolver.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				log.Warn("Failed to resolve principal", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
			}

			prometheus.RecordAuthSuccess()

			c.Set(principalKey, principal)
			c.Set("logger", log.With(
				zap.Uint("user_id", principal.User.ID),
				zap.Uint("tenant_id", principal.Tenant.ID),
				zap.String("role", principal.User.Role),
			))

			return next(c)
		}
	}
}

// PrincipalFromContext returns the Principal the auth middleware stored for
// this request, or nil when the request was not authenticated.
func PrincipalFromContext(c echo.Context) *auth.Principal {
	p, ok := c.Get(principalKey).(*auth.Principal)
	if !ok {
		return nil
	}
	return p
}
