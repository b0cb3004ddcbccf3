package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/middleware"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/service"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

// TenantHandler serves tenant detail, usage, and plan management endpoints
type TenantHandler struct {
	svc *service.TenantService
}

// NewTenantHandler creates a TenantHandler over the given service
func NewTenantHandler(svc *service.TenantService) *TenantHandler {
	return &TenantHandler{svc: svc}
}

// Get handles GET /api/tenant
func (h *TenantHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("view")
	p := middleware.PrincipalFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	tenant, err := h.svc.Get(c.Request().Context(), p)
	if err != nil {
		log.Error("Failed to get tenant", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, tenant)
}

// Usage handles GET /api/tenant/usage
func (h *TenantHandler) Usage(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("usage")
	p := middleware.PrincipalFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	usage, err := h.svc.Usage(c.Request().Context(), p)
	if err != nil {
		log.Error("Failed to get tenant usage", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, usage)
}

// UpgradePlan handles POST /api/tenant/upgrade (admin only)
func (h *TenantHandler) UpgradePlan(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordTenantOperation("change_plan")
	p := middleware.PrincipalFromContext(c)

	var req struct {
		NewPlan string `json:"newPlan"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse plan change request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	tenant, err := h.svc.ChangePlan(c.Request().Context(), p, req.NewPlan)
	if err != nil {
		log.Warn("Failed to change plan", zap.String("new_plan", req.NewPlan), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Tenant plan changed",
		zap.Uint("tenant_id", tenant.ID),
		zap.String("plan", tenant.Plan))
	return c.JSON(http.StatusOK, echo.Map{"tenant": tenant})
}
