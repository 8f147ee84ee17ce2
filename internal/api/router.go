package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tiUlisses/securityvision-presence-backend/internal/config"
	"github.com/tiUlisses/securityvision-presence-backend/internal/handler"
	"github.com/tiUlisses/securityvision-presence-backend/internal/middleware"
)

// Handlers bundles the handlers mounted on the router.
type Handlers struct {
	Reports   *handler.ReportHandler
	Directory *handler.DirectoryHandler
	Alerts    *handler.AlertHandler
}

// SetupRouter builds the HTTP router.
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Presence Analytics API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateLimitWindow))
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}
	{
		api.GET("/overview", h.Reports.GetOverview)

		people := api.Group("/people")
		{
			people.GET("", h.Directory.ListPeople)
			people.GET("/:id/summary", h.Reports.GetPersonSummary)
			people.GET("/:id/distribution", h.Reports.GetPersonDistribution)
			people.GET("/:id/hour-by-gateway", h.Reports.GetPersonHourByGateway)
			people.GET("/:id/alerts", h.Reports.GetPersonAlerts)
		}

		groups := api.Group("/groups")
		{
			groups.GET("", h.Directory.ListGroups)
			groups.GET("/:id/summary", h.Reports.GetGroupSummary)
			groups.GET("/:id/distribution", h.Reports.GetGroupDistribution)
			groups.GET("/:id/hour-by-gateway", h.Reports.GetGroupHourByGateway)
			groups.GET("/:id/alerts", h.Reports.GetGroupAlerts)
		}

		gateways := api.Group("/gateways")
		{
			gateways.GET("", h.Directory.ListDevices)
			gateways.GET("/:id/summary", h.Reports.GetGatewaySummary)
			gateways.GET("/:id/time-of-day", h.Reports.GetGatewayTimeOfDay)
			gateways.GET("/:id/occupancy", h.Reports.GetGatewayOccupancy)
			gateways.GET("/:id/alerts", h.Reports.GetGatewayAlerts)
		}

		buildings := api.Group("/buildings")
		{
			buildings.GET("", h.Directory.ListBuildings)
			buildings.GET("/:id/summary", h.Reports.GetBuildingSummary)
			buildings.GET("/:id/distribution", h.Reports.GetBuildingDistribution)
			buildings.GET("/:id/alerts", h.Reports.GetBuildingAlerts)
		}

		api.GET("/alerts", h.Alerts.ListAlerts)
	}

	return r
}
