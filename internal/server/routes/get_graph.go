package routes

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/middleware"
)

func GetGraphHandler(c echo.Context) error {
	store := c.(*middleware.AppContext).App.Store

	graph, err := store.LoadGraph()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Graph not found. Run the build stage first.",
			})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, graph)
}
