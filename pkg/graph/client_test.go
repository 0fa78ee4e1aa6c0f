package graph

import (
	"context"
	"errors"

	"github.com/transmutehq/transmute/pkg/ai"
)

// fakeAIClient is a deterministic ai.GraphAIClient for tests. respond maps a
// prompt to the raw model text; embeddings are keyed by input text.
type fakeAIClient struct {
	respond    func(prompt string) (string, error)
	embeddings map[string][]float32
}

func (f *fakeAIClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	if f.respond == nil {
		return "", errors.New("no completion configured")
	}
	return f.respond(prompt)
}

func (f *fakeAIClient) GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error) {
	if emb, ok := f.embeddings[string(input)]; ok {
		return emb, nil
	}
	return nil, errors.New("no embedding configured")
}

func (f *fakeAIClient) LoadModel(ctx context.Context, opts ...ai.GenerateOption) error {
	return nil
}

func (f *fakeAIClient) ResetMetrics() {}

func (f *fakeAIClient) GetMetrics() ai.ModelMetrics {
	return ai.ModelMetrics{}
}
