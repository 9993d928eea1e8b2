package handlers

import (
	"errors"
	"net/http"

	"github.com/agristack/farmdash/internal/api/middleware"
	"github.com/agristack/farmdash/internal/domain"
	"github.com/agristack/farmdash/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	resolver  service.PermissionResolver
}

func NewDashboardHandler(dashboard *service.DashboardService, resolver service.PermissionResolver) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, resolver: resolver}
}

// GetData serves one dashboard tab. Filters arrive as query parameters and
// unknown tab values fall back to the overview tab.
func (h *DashboardHandler) GetData(c *gin.Context) {
	var filter domain.DashboardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter parameters"})
		return
	}

	tab := c.DefaultQuery("tab", domain.TabOverview)

	payload, err := h.dashboard.GetTabData(c.Request.Context(),
		middleware.UserID(c), middleware.CompanyID(c), tab, &filter)
	if err != nil {
		if errors.Is(err, service.ErrAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access to this tab is denied"})
			return
		}
		log.Error().Err(err).Str("tab", tab).Msg("failed to build dashboard data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard data"})
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// GetPermissions returns the caller's resolved role and permission flags.
func (h *DashboardHandler) GetPermissions(c *gin.Context) {
	perms, err := h.resolver.Resolve(c.Request.Context(), middleware.UserID(c), middleware.CompanyID(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve permissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve permissions"})
		return
	}

	c.JSON(http.StatusOK, perms)
}

// GetTabs lists the tabs visible to the caller, in display order.
func (h *DashboardHandler) GetTabs(c *gin.Context) {
	tabs, err := h.resolver.AccessibleTabs(c.Request.Context(), middleware.UserID(c), middleware.CompanyID(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to list accessible tabs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accessible tabs"})
		return
	}
	if tabs == nil {
		tabs = []domain.TabInfo{}
	}

	c.JSON(http.StatusOK, gin.H{"tabs": tabs})
}

// CheckTabAccess reports whether the caller may open one tab.
func (h *DashboardHandler) CheckTabAccess(c *gin.Context) {
	tab := c.Param("tab")

	allowed, err := h.resolver.CheckTabAccess(c.Request.Context(),
		middleware.UserID(c), middleware.CompanyID(c), service.NormalizeTab(tab))
	if err != nil {
		log.Error().Err(err).Str("tab", tab).Msg("failed to check tab access")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check tab access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tab": service.NormalizeTab(tab), "allowed": allowed})
}
