package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/middleware"
	"github.com/Pushkaraj-Palli/NotesFlow/internal/service"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
	"github.com/Pushkaraj-Palli/NotesFlow/prometheus"
)

// NoteHandler serves the tenant-scoped note CRUD endpoints
type NoteHandler struct {
	svc *service.NoteService
}

// NewNoteHandler creates a NoteHandler over the given service
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// List handles GET /api/notes with optional search and tags query params
func (h *NoteHandler) List(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("list")
	p := middleware.PrincipalFromContext(c)

	filter := service.NoteFilter{Search: c.QueryParam("search")}
	if tags := c.QueryParam("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	notes, err := h.svc.List(c.Request().Context(), p, filter)
	if err != nil {
		log.Error("Failed to list notes", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, notes)
}

// Create handles POST /api/notes
func (h *NoteHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("create")
	p := middleware.PrincipalFromContext(c)

	var req service.NoteInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse note creation request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	note, err := h.svc.Create(c.Request().Context(), p, req)
	if err != nil {
		if apperr.IsKind(err, apperr.KindQuotaExceeded) {
			prometheus.RecordQuotaDenied("note")
		}
		log.Warn("Failed to create note", zap.Error(err))
		return respondError(c, err)
	}

	go h.updateNoteCount(p.Tenant.ID)

	log.Info("Note created", zap.Uint("note_id", note.ID))
	return c.JSON(http.StatusCreated, note)
}

// Get handles GET /api/notes/:id
func (h *NoteHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("get")
	p := middleware.PrincipalFromContext(c)

	id, err := parseNoteID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	note, err := h.svc.Get(c.Request().Context(), p, id)
	if err != nil {
		log.Warn("Failed to get note", zap.Uint("note_id", id), zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, note)
}

// Update handles PUT /api/notes/:id with merge-patch semantics
func (h *NoteHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("update")
	p := middleware.PrincipalFromContext(c)

	id, err := parseNoteID(c)
	if err != nil {
		return respondError(c, err)
	}

	var patch service.NotePatch
	if err := c.Bind(&patch); err != nil {
		log.Error("Failed to parse note update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	note, err := h.svc.Update(c.Request().Context(), p, id, patch)
	if err != nil {
		log.Warn("Failed to update note", zap.Uint("note_id", id), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Note updated", zap.Uint("note_id", note.ID))
	return c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /api/notes/:id
func (h *NoteHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("delete")
	p := middleware.PrincipalFromContext(c)

	id, err := parseNoteID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := h.svc.Delete(c.Request().Context(), p, id); err != nil {
		log.Warn("Failed to delete note", zap.Uint("note_id", id), zap.Error(err))
		return respondError(c, err)
	}

	go h.updateNoteCount(p.Tenant.ID)

	log.Info("Note deleted", zap.Uint("note_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Note deleted successfully"})
}

// TogglePin handles PATCH /api/notes/:id/pin
func (h *NoteHandler) TogglePin(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordNoteOperation("pin")
	p := middleware.PrincipalFromContext(c)

	id, err := parseNoteID(c)
	if err != nil {
		return respondError(c, err)
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	note, err := h.svc.TogglePin(c.Request().Context(), p, id)
	if err != nil {
		log.Warn("Failed to toggle pin", zap.Uint("note_id", id), zap.Error(err))
		return respondError(c, err)
	}

	log.Info("Note pin toggled", zap.Uint("note_id", note.ID), zap.Bool("is_pinned", note.IsPinned))
	return c.JSON(http.StatusOK, note)
}

func (h *NoteHandler) updateNoteCount(tenantID uint) {
	count, err := h.svc.CountForTenant(context.Background(), tenantID)
	if err != nil {
		return
	}
	prometheus.UpdateNotesPerTenant(tenantID, int(count))
}

func parseNoteID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validation("invalid note ID")
	}
	return uint(id), nil
}
