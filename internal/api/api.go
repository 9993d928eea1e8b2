package api

import (
	"strings"
	"time"

	"github.com/agristack/farmdash/internal/api/handlers"
	"github.com/agristack/farmdash/internal/api/middleware"
	"github.com/agristack/farmdash/internal/bus"
	"github.com/agristack/farmdash/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Dashboard  *service.DashboardService
	Projects   *service.ProjectService
	Configs    *service.ConfigService
	Exports    *service.ExportService
	Resolver   service.PermissionResolver
	Subscriber bus.Subscriber
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-Company-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Identity())

	if services != nil {
		if services.Dashboard != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, services.Resolver)
			dashboardGroup := apiGroup.Group("/dashboard")
			{
				dashboardGroup.GET("/data", dashboardHandler.GetData)
				dashboardGroup.GET("/permissions", dashboardHandler.GetPermissions)
				dashboardGroup.GET("/tabs", dashboardHandler.GetTabs)
				dashboardGroup.GET("/tabs/:tab/access", dashboardHandler.CheckTabAccess)
			}
		}

		if services.Projects != nil {
			projectHandler := handlers.NewProjectHandler(services.Projects)
			projectGroup := apiGroup.Group("/projects")
			{
				projectGroup.POST("", projectHandler.Create)
				projectGroup.GET("/:id", projectHandler.Get)
				projectGroup.PUT("/:id", projectHandler.Update)
				projectGroup.DELETE("/:id", projectHandler.Delete)
				projectGroup.POST("/:id/status", projectHandler.UpdateStatus)
				projectGroup.GET("/:id/reports", projectHandler.GetReports)
			}
			apiGroup.POST("/crops", projectHandler.CreateCrop)
			apiGroup.GET("/crops", projectHandler.ListCrops)
		}

		if services.Configs != nil {
			configHandler := handlers.NewConfigHandler(services.Configs)
			configGroup := apiGroup.Group("/dashboard/config")
			{
				configGroup.GET("", configHandler.Get)
				configGroup.PUT("/:id", configHandler.Update)
				configGroup.DELETE("/:id", configHandler.Delete)
			}
		}

		if services.Exports != nil {
			exportHandler := handlers.NewExportHandler(services.Exports)
			apiGroup.POST("/export/projects", exportHandler.ExportProjects)
		}

		eventsHandler := handlers.NewEventsHandler(services.Subscriber)
		apiGroup.GET("/events", eventsHandler.Stream)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
