package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/transmutehq/transmute/internal/artifact"
	"github.com/transmutehq/transmute/internal/pipeline"
	"github.com/transmutehq/transmute/internal/util"
	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/graph"
	"github.com/transmutehq/transmute/pkg/ingest"
	"github.com/transmutehq/transmute/pkg/logger"
)

// QueueAnalyzeJobMsg is the payload for an analyze_queue job. Stage selects
// which part of the pipeline to run; "all" or empty runs every stage.
type QueueAnalyzeJobMsg struct {
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
	DataDir       string `json:"data_dir,omitempty"`
	Stage         string `json:"stage,omitempty"`
}

// ProcessAnalyzeMessage runs the pipeline for one analyze job. The returned
// error tells the worker to route the message through retry/DLQ handling.
func ProcessAnalyzeMessage(
	ctx context.Context,
	store *artifact.Store,
	aiClient ai.GraphAIClient,
	dataDir string,
	msg string,
) error {
	data := new(QueueAnalyzeJobMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to parse analyze job: %w", err)
	}

	if data.DataDir != "" {
		dataDir = data.DataDir
	}

	logger.Info("[Queue] Analyze job", "correlation_id", data.CorrelationID, "stage", data.Stage, "data_dir", dataDir)

	ingester, err := ingest.NewIngester(ingest.NewIngesterParams{DataDir: dataDir})
	if err != nil {
		return err
	}
	graphClient, err := graph.NewGraphClient(graph.NewGraphClientParams{
		SimilarityThreshold: util.GetEnvNumeric("SIMILARITY_THRESHOLD", 0.4),
		MaxEdges:            int(util.GetEnvNumeric("MAX_EDGES", 15)),
		MaxContradictions:   int(util.GetEnvNumeric("MAX_CONTRADICTIONS", 5)),
	})
	if err != nil {
		return err
	}
	p, err := pipeline.NewPipeline(pipeline.NewPipelineParams{
		Store:    store,
		Ingester: ingester,
		Graph:    graphClient,
		AIClient: aiClient,
	})
	if err != nil {
		return err
	}

	switch data.Stage {
	case "", "all":
		err = p.RunAll(ctx)
	case "ingest":
		err = p.RunIngest(ctx)
	case "build":
		err = p.RunBuild(ctx)
	case "analyze":
		err = p.RunAnalyze(ctx)
	case "metrics":
		err = p.RunMetrics(ctx)
	default:
		return fmt.Errorf("unknown pipeline stage: %q", data.Stage)
	}
	if err != nil {
		return err
	}

	logger.Info("[Queue] Analyze job completed", "correlation_id", data.CorrelationID)
	return nil
}
