package routes

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/transmutehq/transmute/internal/queue"
	"github.com/transmutehq/transmute/internal/server/middleware"
)

// AnalyzeRequest is the body of POST /api/analyze. Stage defaults to a full
// pipeline run.
type AnalyzeRequest struct {
	Stage string `json:"stage" validate:"omitempty,oneof=all ingest build analyze metrics"`
}

func PostAnalyzeHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	req := new(AnalyzeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	correlationID, err := gonanoid.New()
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	msg := queue.QueueAnalyzeJobMsg{
		Message:       "Analysis requested via API",
		CorrelationID: correlationID,
		DataDir:       app.DataDir,
		Stage:         req.Stage,
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	if err := queue.PublishFIFO(app.Queue, queue.AnalyzeQueue, msgBytes); err != nil {
		return c.String(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"status":         "queued",
		"correlation_id": correlationID,
	})
}
