package server

import (
	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	e.GET("/", routes.GetIndexHandler)

	apiRoutes := e.Group("/api")

	apiRoutes.GET("/health", routes.GetHealthHandler)
	apiRoutes.GET("/documents", routes.GetDocumentsHandler)
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.GET("/insights", routes.GetInsightsHandler)
	apiRoutes.GET("/stats", routes.GetStatsHandler)
	apiRoutes.GET("/metrics", routes.GetMetricsHandler)
	apiRoutes.POST("/analyze", routes.PostAnalyzeHandler)
}
