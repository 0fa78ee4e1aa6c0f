package graph

import (
	"context"
	"fmt"

	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/common"
	"github.com/transmutehq/transmute/pkg/logger"
)

// BuildGraph constructs the document relationship graph: one node per
// document (ingestion order), one typed edge per surviving similarity
// candidate (descending similarity order).
//
// Classification calls run sequentially, one per candidate; the candidate
// cap bounds total AI cost. A failed classification degrades that edge to
// relates_to instead of failing the build.
func (g *GraphClient) BuildGraph(
	ctx context.Context,
	docs []common.Document,
	aiClient ai.GraphAIClient,
) (*common.Graph, error) {
	logger.Info("[Graph] Computing similarity matrix", "documents", len(docs))

	matrix, err := SimilarityMatrix(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute similarity matrix: %w", err)
	}

	nodes := make([]common.Node, 0, len(docs))
	for _, doc := range docs {
		nodes = append(nodes, common.Node{
			ID:        doc.ID,
			Label:     doc.Title,
			Date:      doc.Date,
			Content:   doc.Content,
			WordCount: doc.WordCount,
		})
	}

	candidates := g.SelectCandidates(docs, matrix)
	logger.Info("[Graph] Classifying top relationships", "candidates", len(candidates))

	edges := make([]common.Edge, 0, len(candidates))
	for idx, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc1 := docs[candidate.SourceIndex]
		doc2 := docs[candidate.TargetIndex]
		logger.Info(
			fmt.Sprintf("[Graph] %d/%d: %s <-> %s", idx+1, len(candidates), doc1.Title, doc2.Title),
			"similarity", fmt.Sprintf("%.3f", candidate.Similarity),
		)

		relType, explanation := g.classifyPair(ctx, doc1, doc2, aiClient)

		edges = append(edges, common.Edge{
			Source:      candidate.SourceID,
			Target:      candidate.TargetID,
			Type:        relType,
			Explanation: explanation,
			Similarity:  candidate.Similarity,
		})
	}

	graph := &common.Graph{
		Nodes: nodes,
		Edges: edges,
		Metadata: map[string]any{
			"total_documents":      len(docs),
			"total_relationships":  len(edges),
			"similarity_threshold": g.similarityThreshold,
		},
	}

	relCounts := map[common.RelationshipType]int{}
	for _, edge := range edges {
		relCounts[edge.Type]++
	}
	logger.Info("[Graph] Build completed", "nodes", len(nodes), "edges", len(edges))
	for relType, count := range relCounts {
		logger.Info("[Graph] Relationship summary", "type", relType, "count", count)
	}

	return graph, nil
}
