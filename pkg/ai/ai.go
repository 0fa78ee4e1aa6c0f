package ai

import (
	"context"
)

// GenerateOptions holds configuration for AI generation requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
}

// GenerateOption is a functional option for configuring AI generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system prompts
// to prepend to the generation request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling temperature.
// Lower values make outputs more deterministic, which matters for
// classification and extraction calls.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ModelMetrics accumulates token usage and latency across AI calls.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// GraphAIClient is the AI surface the pipeline depends on: a completion model
// acting as the reasoning backend for relationship classification and
// contradiction extraction, and an embedding model used at ingestion.
//
// Implementations live in the openai and ollama subpackages. Tests substitute
// deterministic fakes; the pipeline never constructs a concrete client itself.
type GraphAIClient interface {
	// GenerateCompletion sends a single-turn prompt to the chat model and
	// returns the raw assistant text. Callers must treat the output as
	// untrusted free-form text and parse defensively.
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)

	// GenerateEmbedding creates a fixed-length vector embedding for the input.
	GenerateEmbedding(ctx context.Context, input []byte) ([]float32, error)

	// LoadModel asks the backend to warm the configured models, where supported.
	LoadModel(ctx context.Context, opts ...GenerateOption) error

	ResetMetrics()
	GetMetrics() ModelMetrics
}
