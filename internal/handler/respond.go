package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Pushkaraj-Palli/NotesFlow/internal/apperr"
	"github.com/Pushkaraj-Palli/NotesFlow/pkg/logger"
)

// respondError maps an application error to its HTTP status and writes the
// client-facing message. Internal errors are logged with their cause; the
// client only ever sees the generic message.
func respondError(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		logger.FromContext(c).Error("Unexpected error", zap.Error(err))
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
