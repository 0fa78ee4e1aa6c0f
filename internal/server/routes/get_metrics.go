package routes

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/middleware"
)

func GetMetricsHandler(c echo.Context) error {
	store := c.(*middleware.AppContext).App.Store

	metrics, err := store.LoadMetrics()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Metrics not found. Run the metrics stage first.",
			})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, metrics)
}
