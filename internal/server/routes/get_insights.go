package routes

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/middleware"
	"github.com/transmutehq/transmute/pkg/common"
)

func GetInsightsHandler(c echo.Context) error {
	type stats struct {
		Total          int `json:"total"`
		Contradictions int `json:"contradictions"`
		Obsolete       int `json:"obsolete"`
	}
	type response struct {
		Insights []common.Insight `json:"insights"`
		Stats    stats            `json:"stats"`
	}

	store := c.(*middleware.AppContext).App.Store

	graph, err := store.LoadGraph()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Graph not found. Run the analyze stage first.",
			})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	insights := graph.Insights
	if insights == nil {
		insights = []common.Insight{}
	}

	return c.JSON(http.StatusOK, response{
		Insights: insights,
		Stats: stats{
			Total:          len(insights),
			Contradictions: len(graph.InsightsOfType(common.InsightContradiction)),
			Obsolete:       len(graph.InsightsOfType(common.InsightObsolete)),
		},
	})
}
