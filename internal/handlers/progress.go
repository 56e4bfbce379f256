package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ccomp-uerj/progress-backend/internal/pkg/errors"
	"github.com/ccomp-uerj/progress-backend/internal/pkg/logger"
	"github.com/ccomp-uerj/progress-backend/internal/services"
)

type ProgressHandler struct {
	log             *logger.Logger
	progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		log:             log.With("handler", "ProgressHandler"),
		progressService: progressService,
	}
}

// GetProgress returns the full resolved view for one student: graph,
// statuses, locked set, and credit totals.
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	snapshot, err := h.progressService.Snapshot(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidArgument):
			RespondError(c, http.StatusBadRequest, "invalid_registration", err)
		default:
			h.log.Error("Progress snapshot failed", "error", err)
			RespondError(c, http.StatusInternalServerError, "progress_failed", err)
		}
		return
	}
	RespondOK(c, snapshot)
}
