package graph

// GraphClient runs the document relationship pipeline: similarity-based
// candidate selection, AI relationship classification, graph assembly, and
// insight analysis. It holds only configuration; AI access is passed into
// each entry point so tests can substitute deterministic fakes.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	similarityThreshold float64
	maxEdges            int
	maxContradictions   int
	tokenEncoder        string
	promptTokenBudget   int
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// SimilarityThreshold is the minimum cosine similarity for a document pair
// to become an edge candidate. MaxEdges caps how many candidates are
// classified (each classification is one AI call). MaxContradictions caps
// how many contradiction edges get a detail-extraction AI call.
// PromptTokenBudget limits how much of each document's content is embedded
// in a prompt, counted with TokenEncoder.
type NewGraphClientParams struct {
	SimilarityThreshold float64
	MaxEdges            int
	MaxContradictions   int
	TokenEncoder        string
	PromptTokenBudget   int
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters. Zero values fall back to defaults.
//
// Example:
//
//	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
//		SimilarityThreshold: 0.4,
//		MaxEdges:            15,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	threshold := params.SimilarityThreshold
	if threshold == 0 {
		threshold = 0.4
	}
	maxEdges := params.MaxEdges
	if maxEdges <= 0 {
		maxEdges = 15
	}
	maxContradictions := params.MaxContradictions
	if maxContradictions <= 0 {
		maxContradictions = 5
	}
	encoder := params.TokenEncoder
	if encoder == "" {
		encoder = "o200k_base"
	}
	budget := params.PromptTokenBudget
	if budget <= 0 {
		budget = 3000
	}

	g := &GraphClient{
		similarityThreshold: threshold,
		maxEdges:            maxEdges,
		maxContradictions:   maxContradictions,
		tokenEncoder:        encoder,
		promptTokenBudget:   budget,
	}

	return g, nil
}

// SimilarityThreshold returns the configured candidate selection threshold.
func (g *GraphClient) SimilarityThreshold() float64 {
	return g.similarityThreshold
}
