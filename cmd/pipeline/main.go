package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/transmutehq/transmute/internal/artifact"
	"github.com/transmutehq/transmute/internal/pipeline"
	"github.com/transmutehq/transmute/internal/util"
	"github.com/transmutehq/transmute/pkg/ai"
	oai "github.com/transmutehq/transmute/pkg/ai/ollama"
	gai "github.com/transmutehq/transmute/pkg/ai/openai"
	"github.com/transmutehq/transmute/pkg/graph"
	"github.com/transmutehq/transmute/pkg/ingest"
	"github.com/transmutehq/transmute/pkg/logger"
	"github.com/transmutehq/transmute/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	stage := flag.String("stage", "all", "pipeline stage to run: all, ingest, build, analyze, metrics")
	dataDir := flag.String("data", util.GetEnvString("DATA_DIR", "data"), "directory of source documents")
	artifactDir := flag.String("artifacts", util.GetEnvString("ARTIFACT_DIR", "artifacts"), "directory for pipeline artifacts")
	flag.Parse()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter := util.GetEnv("AI_ADAPTER")
	var aiClient ai.GraphAIClient

	switch adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			BaseURL: util.GetEnv("AI_CHAT_URL"),
			ApiKey:  util.GetEnv("AI_CHAT_KEY"),
		})
		if err != nil {
			logger.Fatal("Could not create Ollama client", "err", err)
		}
		aiClient = client
	default:
		aiClient = gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			EmbeddingModel: util.GetEnv("AI_EMBED_MODEL"),
			ChatModel:      util.GetEnv("AI_CHAT_MODEL"),

			EmbeddingURL: util.GetEnv("AI_EMBED_URL"),
			EmbeddingKey: util.GetEnv("AI_EMBED_KEY"),
			ChatURL:      util.GetEnv("AI_CHAT_URL"),
			ChatKey:      util.GetEnv("AI_CHAT_KEY"),
		})
	}

	store, err := artifact.NewStore(artifact.NewStoreParams{Dir: *artifactDir})
	if err != nil {
		logger.Fatal("Failed to open artifact store", "err", err)
	}
	ingester, err := ingest.NewIngester(ingest.NewIngesterParams{DataDir: *dataDir})
	if err != nil {
		logger.Fatal("Failed to create ingester", "err", err)
	}
	graphClient, err := graph.NewGraphClient(graph.NewGraphClientParams{
		SimilarityThreshold: util.GetEnvNumeric("SIMILARITY_THRESHOLD", 0.4),
		MaxEdges:            int(util.GetEnvNumeric("MAX_EDGES", 15)),
		MaxContradictions:   int(util.GetEnvNumeric("MAX_CONTRADICTIONS", 5)),
	})
	if err != nil {
		logger.Fatal("Failed to create graph client", "err", err)
	}

	p, err := pipeline.NewPipeline(pipeline.NewPipelineParams{
		Store:    store,
		Ingester: ingester,
		Graph:    graphClient,
		AIClient: aiClient,
	})
	if err != nil {
		logger.Fatal("Failed to create pipeline", "err", err)
	}

	switch *stage {
	case "all":
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
		logger.Fatal("Unknown pipeline stage", "stage", *stage)
	}
	if err != nil {
		logger.Fatal("Pipeline failed", "stage", *stage, "err", err)
	}
}
