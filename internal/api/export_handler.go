package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workout-log/internal/service"
)

// ExportHandler holds the export service dependency.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportHistory snapshots the caller's full workout history to object storage
// and returns a short-lived download URL.
func (h *ExportHandler) ExportHistory(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}

	url, err := h.exportService.ExportHistory(c.Request.Context(), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// DeleteExport removes the caller's exported snapshot from object storage.
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller.")
		return
	}

	if err := h.exportService.DeleteExport(c.Request.Context(), identity); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
