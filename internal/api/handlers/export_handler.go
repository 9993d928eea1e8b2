package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/agristack/farmdash/internal/api/middleware"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/service"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exports *service.ExportService
}

func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportProjects uploads the filtered project list as CSV and returns the
// object key plus a time-limited download link.
func (h *ExportHandler) ExportProjects(c *gin.Context) {
	var filter domain.DashboardFilter
	// An empty body means an unfiltered export.
	if err := c.ShouldBindJSON(&filter); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter payload"})
		return
	}

	result, err := h.exports.ExportProjects(c.Request.Context(),
		middleware.UserID(c), middleware.CompanyID(c), &filter)
	if err != nil {
		if errors.Is(err, service.ErrExportDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage not configured"})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
