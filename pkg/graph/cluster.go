package graph

import (
	"github.com/transmutehq/transmute/pkg/common"
)

// detectClusters finds connected components over the graph's edges, treating
// every edge as undirected regardless of its relationship type. Components
// are discovered in node order; only components with more than one member
// are reported.
//
// Traversal uses an explicit stack rather than recursion so a large,
// densely-connected corpus cannot overflow the goroutine stack.
func detectClusters(graph *common.Graph) [][]string {
	adjacency := make(map[string][]string, len(graph.Nodes))
	for _, edge := range graph.Edges {
		adjacency[edge.Source] = append(adjacency[edge.Source], edge.Target)
		adjacency[edge.Target] = append(adjacency[edge.Target], edge.Source)
	}

	visited := make(map[string]bool, len(graph.Nodes))
	var clusters [][]string

	for _, node := range graph.Nodes {
		if visited[node.ID] {
			continue
		}

		var cluster []string
		stack := []string{node.ID}
		visited[node.ID] = true

		for len(stack) > 0 {
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cluster = append(cluster, current)

			// Neighbors are pushed in reverse so they pop in adjacency
			// order, matching depth-first visitation.
			neighbors := adjacency[current]
			for i := len(neighbors) - 1; i >= 0; i-- {
				neighbor := neighbors[i]
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}

		if len(cluster) > 1 {
			clusters = append(clusters, cluster)
		}
	}

	return clusters
}
