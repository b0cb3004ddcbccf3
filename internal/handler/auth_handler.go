package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/service"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	svc *service.AuthService
}

// NewAuthHandler creates an AuthHandler over the given service
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("register")

	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	session, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		log.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("registration_failed")
		return respondError(c, err)
	}

	log.Info("User registered",
		zap.String("email", session.User.Email),
		zap.Uint("tenant_id", session.Tenant.ID))
	return c.JSON(http.StatusCreated, session)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	session, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, err)
	}

	log.Info("User logged in",
		zap.String("email", session.User.Email),
		zap.Uint("tenant_id", session.Tenant.ID))
	return c.JSON(http.StatusOK, session)
}
