package graph

import (
	"github.com/transmutehq/transmute/pkg/common"
)

// calculateImpactScores scores every node by connectivity: +1 per incident
// edge, and +1 more when that edge is a contradiction or update. High-signal
// relationships weigh double because they are the ones a reader must act on.
func calculateImpactScores(graph *common.Graph) map[string]int {
	impact := make(map[string]int, len(graph.Nodes))
	for _, node := range graph.Nodes {
		impact[node.ID] = 0
	}

	for _, edge := range graph.Edges {
		impact[edge.Source]++
		impact[edge.Target]++

		if edge.Type == common.RelationshipContradicts || edge.Type == common.RelationshipUpdates {
			impact[edge.Source]++
			impact[edge.Target]++
		}
	}

	return impact
}

// mostImpactful returns the id of the highest-scoring node, taking the first
// maximum in node order. It returns "" when every score is zero.
func mostImpactful(graph *common.Graph, impact map[string]int) string {
	best := ""
	bestScore := 0
	for _, node := range graph.Nodes {
		if score := impact[node.ID]; score > bestScore {
			best = node.ID
			bestScore = score
		}
	}
	return best
}
