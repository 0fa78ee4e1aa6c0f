package graph

import (
	"reflect"
	"testing"

	"github.com/transmutehq/transmute/pkg/common"
)

func testGraph(nodeIDs []string, edges []common.Edge) *common.Graph {
	nodes := make([]common.Node, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		nodes = append(nodes, common.Node{ID: id, Label: id})
	}
	return &common.Graph{Nodes: nodes, Edges: edges}
}

func TestDetectClusters_IsolatedNodesExcluded(t *testing.T) {
	graph := testGraph(
		[]string{"a", "b", "c"},
		[]common.Edge{{Source: "a", Target: "b", Type: common.RelationshipSupports}},
	)

	clusters := detectClusters(graph)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, want 1", len(clusters))
	}
	if !reflect.DeepEqual(clusters[0], []string{"a", "b"}) {
		t.Errorf("cluster = %v, want [a b]", clusters[0])
	}
}

func TestDetectClusters_TypeIgnored(t *testing.T) {
	// Contradictions connect components just like any other edge.
	graph := testGraph(
		[]string{"a", "b"},
		[]common.Edge{{Source: "a", Target: "b", Type: common.RelationshipContradicts}},
	)

	clusters := detectClusters(graph)
	if len(clusters) != 1 || len(clusters[0]) != 2 {
		t.Fatalf("clusters = %v, want one cluster of two", clusters)
	}
}

func TestDetectClusters_MultipleComponents(t *testing.T) {
	graph := testGraph(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]common.Edge{
			{Source: "a", Target: "b", Type: common.RelationshipRelatesTo},
			{Source: "b", Target: "c", Type: common.RelationshipUpdates},
			{Source: "d", Target: "e", Type: common.RelationshipSupports},
		},
	)

	clusters := detectClusters(graph)
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2: %v", len(clusters), clusters)
	}

	// Components are discovered in node order; membership within each is
	// depth-first from the lowest-ordered node.
	if !reflect.DeepEqual(clusters[0], []string{"a", "b", "c"}) {
		t.Errorf("first cluster = %v, want [a b c]", clusters[0])
	}
	if !reflect.DeepEqual(clusters[1], []string{"d", "e"}) {
		t.Errorf("second cluster = %v, want [d e]", clusters[1])
	}
}

func TestDetectClusters_Deterministic(t *testing.T) {
	graph := testGraph(
		[]string{"a", "b", "c", "d"},
		[]common.Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "c"},
			{Source: "c", Target: "d"},
		},
	)

	first := detectClusters(graph)
	for i := 0; i < 10; i++ {
		if got := detectClusters(graph); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestDetectClusters_NoEdges(t *testing.T) {
	graph := testGraph([]string{"a", "b"}, nil)
	if clusters := detectClusters(graph); len(clusters) != 0 {
		t.Errorf("clusters = %v, want none", clusters)
	}
}
