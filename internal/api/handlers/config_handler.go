package handlers

import (
	"net/http"

	"github.com/agristack/farmdash/internal/api/middleware"
	"github.com/agristack/farmdash/internal/service"
	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	configs *service.ConfigService
}

func NewConfigHandler(configs *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// Get returns the caller's dashboard config, creating the default on first use.
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configs.EnsureDefault(c.Request.Context(), middleware.UserID(c), middleware.CompanyID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg, err := h.configs.UpdateConfig(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg)
}

func (h *ConfigHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.configs.DeleteConfig(c.Request.Context(), middleware.UserID(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
