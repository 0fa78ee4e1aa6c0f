package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const serviceVersion = "1.0.0"

func GetIndexHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "Transmute API",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"/api/graph":     "Get complete knowledge graph with insights",
			"/api/documents": "Get all processed documents",
			"/api/insights":  "Get contradictions and obsolete documents",
			"/api/stats":     "Get overall statistics",
			"/api/metrics":   "Get sustainability metrics",
			"/api/analyze":   "Queue a pipeline run (POST)",
			"/api/health":    "Health check",
		},
	})
}

func GetHealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Transmute API",
		"version": serviceVersion,
	})
}
