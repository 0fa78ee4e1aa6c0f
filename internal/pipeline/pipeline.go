// Package pipeline orchestrates the four batch stages: ingest documents,
// build the relationship graph, analyze it for insights, and compute
// metrics. Every stage reads the previous stage's artifact and writes its
// own, so stages can be re-run individually.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/transmutehq/transmute/internal/artifact"
	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/graph"
	"github.com/transmutehq/transmute/pkg/ingest"
	"github.com/transmutehq/transmute/pkg/logger"
	"github.com/transmutehq/transmute/pkg/metrics"
)

// Pipeline runs the batch stages against an artifact store.
//
// A Pipeline should be created using NewPipeline.
type Pipeline struct {
	store    *artifact.Store
	ingester *ingest.Ingester
	graph    *graph.GraphClient
	aiClient ai.GraphAIClient
}

// NewPipelineParams defines the configuration parameters for creating a
// new Pipeline. All fields are required.
type NewPipelineParams struct {
	Store    *artifact.Store
	Ingester *ingest.Ingester
	Graph    *graph.GraphClient
	AIClient ai.GraphAIClient
}

// NewPipeline creates and returns a new Pipeline with the provided
// dependencies.
func NewPipeline(params NewPipelineParams) (*Pipeline, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("artifact store is required")
	}
	if params.Ingester == nil {
		return nil, fmt.Errorf("ingester is required")
	}
	if params.Graph == nil {
		return nil, fmt.Errorf("graph client is required")
	}
	if params.AIClient == nil {
		return nil, fmt.Errorf("ai client is required")
	}

	return &Pipeline{
		store:    params.Store,
		ingester: params.Ingester,
		graph:    params.Graph,
		aiClient: params.AIClient,
	}, nil
}

// RunIngest reads the data directory and writes the documents artifact.
func (p *Pipeline) RunIngest(ctx context.Context) error {
	start := time.Now()
	logger.Info("[Pipeline] Stage: ingest")

	docs, err := p.ingester.IngestDocuments(ctx, p.aiClient)
	if err != nil {
		return fmt.Errorf("ingest stage failed: %w", err)
	}
	if err := p.store.SaveDocuments(docs); err != nil {
		return fmt.Errorf("ingest stage failed: %w", err)
	}

	logger.Info("[Pipeline] Stage done: ingest", "documents", len(docs), "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunBuild reads the documents artifact and writes the graph artifact.
func (p *Pipeline) RunBuild(ctx context.Context) error {
	start := time.Now()
	logger.Info("[Pipeline] Stage: build")

	docs, err := p.store.LoadDocuments()
	if err != nil {
		return fmt.Errorf("build stage failed: %w", err)
	}

	g, err := p.graph.BuildGraph(ctx, docs, p.aiClient)
	if err != nil {
		return fmt.Errorf("build stage failed: %w", err)
	}
	if err := p.store.SaveGraph(g); err != nil {
		return fmt.Errorf("build stage failed: %w", err)
	}

	logger.Info("[Pipeline] Stage done: build", "nodes", len(g.Nodes), "edges", len(g.Edges), "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunAnalyze reads the graph and documents artifacts, derives insights and
// impact scores, and rewrites the graph artifact.
func (p *Pipeline) RunAnalyze(ctx context.Context) error {
	start := time.Now()
	logger.Info("[Pipeline] Stage: analyze")

	g, err := p.store.LoadGraph()
	if err != nil {
		return fmt.Errorf("analyze stage failed: %w", err)
	}
	docs, err := p.store.LoadDocuments()
	if err != nil {
		return fmt.Errorf("analyze stage failed: %w", err)
	}

	if err := p.graph.AnalyzeGraph(ctx, g, docs, p.aiClient); err != nil {
		return fmt.Errorf("analyze stage failed: %w", err)
	}
	if err := p.store.SaveGraph(g); err != nil {
		return fmt.Errorf("analyze stage failed: %w", err)
	}

	logger.Info("[Pipeline] Stage done: analyze", "insights", len(g.Insights), "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunMetrics reads the graph and documents artifacts and writes the metrics
// artifact.
func (p *Pipeline) RunMetrics(ctx context.Context) error {
	start := time.Now()
	logger.Info("[Pipeline] Stage: metrics")

	g, err := p.store.LoadGraph()
	if err != nil {
		return fmt.Errorf("metrics stage failed: %w", err)
	}
	docs, err := p.store.LoadDocuments()
	if err != nil {
		return fmt.Errorf("metrics stage failed: %w", err)
	}

	m := metrics.Compute(g, docs)
	if err := p.store.SaveMetrics(m); err != nil {
		return fmt.Errorf("metrics stage failed: %w", err)
	}

	logger.Info("[Pipeline] Stage done: metrics", "took", time.Since(start).Round(time.Millisecond))
	return nil
}

// RunAll runs every stage in order.
func (p *Pipeline) RunAll(ctx context.Context) error {
	start := time.Now()

	for _, stage := range []func(context.Context) error{
		p.RunIngest,
		p.RunBuild,
		p.RunAnalyze,
		p.RunMetrics,
	} {
		if err := stage(ctx); err != nil {
			return err
		}
	}

	logger.Info("[Pipeline] All stages completed", "took", time.Since(start).Round(time.Millisecond))
	return nil
}
