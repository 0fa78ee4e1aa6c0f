package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/transmutehq/transmute/internal/util"
	"github.com/transmutehq/transmute/pkg/ai"

	"github.com/openai/openai-go/v3"
)

const defaultDimensions = 1536

// GenerateEmbedding creates a vector embedding for the given input text
// using the configured embedding model.
//
// Blank input yields an all-zero vector of the configured dimension
// (AI_EMBED_DIM) instead of a request; downstream cosine similarity treats
// zero vectors as having similarity 0 to everything.
func (c *GraphOpenAIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	client := c.EmbeddingClient
	if client == nil {
		return nil, errors.New("openai embedding client not configured, missing api key")
	}

	dim := int(util.GetEnvNumeric("AI_EMBED_DIM", defaultDimensions))
	if strings.TrimSpace(string(input)) == "" {
		return make([]float32, dim), nil
	}

	start := time.Now()
	res, err := client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embeddingModel),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(string(input)),
		},
	})
	if err != nil {
		return nil, err
	}
	duration := time.Since(start).Milliseconds()

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens: int(res.Usage.PromptTokens),
		TotalTokens: int(res.Usage.TotalTokens),
		DurationMs:  duration,
	})

	if len(res.Data) != 1 {
		return nil, fmt.Errorf("unexpected embedding result size: got %d want 1", len(res.Data))
	}

	out := make([]float32, 0, len(res.Data[0].Embedding))
	for _, v := range res.Data[0].Embedding {
		out = append(out, float32(v))
	}
	return out, nil
}
