package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/middleware"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/service"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

// UserHandler serves tenant member management endpoints
type UserHandler struct {
	svc *service.UserService
}

// NewUserHandler creates a UserHandler over the given service
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Invite handles POST /api/users/invite (admin only)
func (h *UserHandler) Invite(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("invite")
	p := middleware.PrincipalFromContext(c)

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse invite request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	user, err := h.svc.Invite(c.Request().Context(), p, req.Email, req.Role)
	if err != nil {
		if apperr.IsKind(err, apperr.KindQuotaExceeded) {
			prometheus.RecordQuotaDenied("user")
		}
		log.Warn("Failed to invite user", zap.String("email", req.Email), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("User invited",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return c.JSON(http.StatusCreated, echo.Map{"user": user})
}

// List handles GET /api/users, listing the members of the caller's tenant
func (h *UserHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list")
	p := middleware.PrincipalFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := h.svc.ListMembers(c.Request().Context(), p)
	if err != nil {
		log.Error("Failed to list members", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, users)
}
