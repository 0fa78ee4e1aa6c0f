package routes

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/middleware"
)

func GetDocumentsHandler(c echo.Context) error {
	store := c.(*middleware.AppContext).App.Store

	docs, err := store.LoadDocuments()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Documents not found. Run the ingest stage first.",
			})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, docs)
}
