package routes

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/transmutehq/transmute/internal/server/middleware"
	"github.com/transmutehq/transmute/pkg/common"
)

func GetStatsHandler(c echo.Context) error {
	type documentStats struct {
		Total      int `json:"total"`
		TotalWords int `json:"total_words"`
		AvgWords   int `json:"avg_words"`
	}
	type relationshipStats struct {
		Total  int            `json:"total"`
		ByType map[string]int `json:"by_type"`
	}
	type insightStats struct {
		Total          int `json:"total"`
		Contradictions int `json:"contradictions"`
		Obsolete       int `json:"obsolete"`
	}
	type response struct {
		Documents     documentStats     `json:"documents"`
		Relationships relationshipStats `json:"relationships"`
		Insights      insightStats      `json:"insights"`
	}

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

	docs, err := store.LoadDocuments()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": "Documents not found. Run the ingest stage first.",
			})
		}
		return c.String(http.StatusInternalServerError, err.Error())
	}

	totalWords := 0
	for _, doc := range docs {
		totalWords += doc.WordCount
	}
	avgWords := 0
	if len(docs) > 0 {
		avgWords = totalWords / len(docs)
	}

	byType := map[string]int{}
	for _, edge := range graph.Edges {
		byType[string(edge.Type)]++
	}

	return c.JSON(http.StatusOK, response{
		Documents: documentStats{
			Total:      len(docs),
			TotalWords: totalWords,
			AvgWords:   avgWords,
		},
		Relationships: relationshipStats{
			Total:  len(graph.Edges),
			ByType: byType,
		},
		Insights: insightStats{
			Total:          len(graph.Insights),
			Contradictions: len(graph.InsightsOfType(common.InsightContradiction)),
			Obsolete:       len(graph.InsightsOfType(common.InsightObsolete)),
		},
	})
}
