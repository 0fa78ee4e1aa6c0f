package metrics

import (
	"strings"
	"testing"

	"github.com/transmutehq/transmute/pkg/common"
)

func TestCompute_EmptyCorpus(t *testing.T) {
	m := Compute(&common.Graph{}, nil)

	if m.Summary.TotalDocuments != 0 || m.Summary.TotalWords != 0 || m.Summary.TotalSizeKB != 0 {
		t.Errorf("summary = %+v, want all zero", m.Summary)
	}
	if m.CognitiveLoad.ReductionPercent != 0 {
		t.Errorf("reduction = %v, want 0 (guarded division)", m.CognitiveLoad.ReductionPercent)
	}
	if m.StorageSavings.SavingsPercent != 0 {
		t.Errorf("savings percent = %v, want 0 (guarded division)", m.StorageSavings.SavingsPercent)
	}
	if m.KnowledgePreservation.AvgConnectionsPerDoc != 0 {
		t.Errorf("avg connections = %v, want 0 (guarded division)", m.KnowledgePreservation.AvgConnectionsPerDoc)
	}
	if m.ImpactStatement == "" {
		t.Error("impact statement is empty")
	}
}

func TestCompute(t *testing.T) {
	// Four documents at 100, 200, 300 and 400 words. At 6 bytes per word the
	// corpus is 6000 bytes (5.859375 KB).
	docs := []common.Document{
		{ID: "doc1", Title: "A", WordCount: 100},
		{ID: "doc2", Title: "B", WordCount: 200},
		{ID: "doc3", Title: "C", WordCount: 300},
		{ID: "doc4", Title: "D", WordCount: 400},
	}

	graph := &common.Graph{
		Nodes: []common.Node{{ID: "doc1"}, {ID: "doc2"}, {ID: "doc3"}, {ID: "doc4"}},
		Edges: []common.Edge{
			// Near-duplicate pair: similarity above 0.8.
			{Source: "doc1", Target: "doc2", Type: common.RelationshipRelatesTo, Similarity: 0.9},
			{Source: "doc2", Target: "doc3", Type: common.RelationshipUpdates, Similarity: 0.6},
			{Source: "doc3", Target: "doc4", Type: common.RelationshipContradicts, Similarity: 0.5},
		},
		Insights: []common.Insight{
			{Type: common.InsightContradiction, Nodes: []string{"doc3", "doc4"}},
			{Type: common.InsightObsolete, Nodes: []string{"doc2", "doc3"}, ObsoleteDoc: "doc3", SupersededBy: "doc2"},
			{Type: common.InsightCluster, Nodes: []string{"doc1", "doc2", "doc3", "doc4"}, Size: 4},
		},
	}

	m := Compute(graph, docs)

	if m.Summary.TotalDocuments != 4 {
		t.Errorf("total documents = %d, want 4", m.Summary.TotalDocuments)
	}
	if m.Summary.TotalWords != 1000 {
		t.Errorf("total words = %d, want 1000", m.Summary.TotalWords)
	}
	if m.Summary.TotalSizeKB != 5.86 {
		t.Errorf("total size = %v KB, want 5.86", m.Summary.TotalSizeKB)
	}

	// One obsolete, one duplicate edge, one contradiction: 3 of 4 documents.
	cl := m.CognitiveLoad
	if cl.ObsoleteDocs != 1 || cl.Duplicates != 1 || cl.Contradictions != 1 {
		t.Errorf("cognitive load counts = %+v", cl)
	}
	if cl.TotalProblematic != 3 {
		t.Errorf("total problematic = %d, want 3", cl.TotalProblematic)
	}
	if cl.ReductionPercent != 75.0 {
		t.Errorf("reduction = %v, want 75.0", cl.ReductionPercent)
	}

	// Obsolete doc3 is 1800 bytes; archiving reclaims 70% = 1260 bytes =
	// 1.23046875 KB. The duplicate pair's smaller document (doc1, 600 bytes)
	// deduplicates at 50% = 300 bytes = 0.29296875 KB.
	ss := m.StorageSavings
	if ss.ObsoleteSavingsKB != 1.23 {
		t.Errorf("obsolete savings = %v KB, want 1.23", ss.ObsoleteSavingsKB)
	}
	if ss.DuplicateSavingsKB != 0.29 {
		t.Errorf("duplicate savings = %v KB, want 0.29", ss.DuplicateSavingsKB)
	}
	if ss.TotalSavingsKB != 1.52 {
		t.Errorf("total savings = %v KB, want 1.52", ss.TotalSavingsKB)
	}
	// 1.5234375 / 5.859375 = 26%.
	if ss.SavingsPercent != 26.0 {
		t.Errorf("savings percent = %v, want 26.0", ss.SavingsPercent)
	}

	kp := m.KnowledgePreservation
	if kp.RelationshipsDiscovered != 3 {
		t.Errorf("relationships = %d, want 3", kp.RelationshipsDiscovered)
	}
	if kp.ClustersFormed != 1 {
		t.Errorf("clusters = %d, want 1", kp.ClustersFormed)
	}
	if kp.AvgConnectionsPerDoc != 0.8 {
		t.Errorf("avg connections = %v, want 0.8", kp.AvgConnectionsPerDoc)
	}

	if !strings.Contains(m.ImpactStatement, "3 knowledge relationships") {
		t.Errorf("impact statement = %q", m.ImpactStatement)
	}
	if !strings.Contains(m.ImpactStatement, "75%") {
		t.Errorf("impact statement = %q", m.ImpactStatement)
	}
}

func TestFindDuplicateEdges_ThresholdIsStrict(t *testing.T) {
	graph := &common.Graph{
		Edges: []common.Edge{
			{Source: "a", Target: "b", Similarity: 0.8},
			{Source: "b", Target: "c", Similarity: 0.81},
		},
	}

	duplicates := findDuplicateEdges(graph)
	if len(duplicates) != 1 {
		t.Fatalf("got %d duplicates, want 1 (0.8 itself does not qualify)", len(duplicates))
	}
	if duplicates[0].Source != "b" || duplicates[0].Target != "c" {
		t.Errorf("duplicate = %s-%s, want b-c", duplicates[0].Source, duplicates[0].Target)
	}
}

func TestCompute_GraphNotMutated(t *testing.T) {
	graph := &common.Graph{
		Nodes: []common.Node{{ID: "a"}},
		Edges: []common.Edge{{Source: "a", Target: "a", Similarity: 0.95}},
	}
	docs := []common.Document{{ID: "a", WordCount: 50}}

	Compute(graph, docs)

	if len(graph.Insights) != 0 || graph.Metadata != nil {
		t.Errorf("graph mutated: %+v", graph)
	}
}
