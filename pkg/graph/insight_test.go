package graph

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/transmutehq/transmute/pkg/common"
)

func TestNormalizeContradictionResult(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   contradictionDetails
	}{
		{
			name: "complete object",
			result: map[string]any{
				"doc1_claim":       "Rollout is in March",
				"doc2_claim":       "Rollout is in June",
				"conflict_summary": "The documents disagree on the rollout date",
			},
			want: contradictionDetails{
				Doc1Claim:       "Rollout is in March",
				Doc2Claim:       "Rollout is in June",
				ConflictSummary: "The documents disagree on the rollout date",
			},
		},
		{
			name:   "nil",
			result: nil,
			want: contradictionDetails{
				Doc1Claim:       unableToExtract,
				Doc2Claim:       unableToExtract,
				ConflictSummary: defaultConflictSummary,
			},
		},
		{
			name:   "empty object",
			result: map[string]any{},
			want: contradictionDetails{
				Doc1Claim:       unableToExtract,
				Doc2Claim:       unableToExtract,
				ConflictSummary: defaultConflictSummary,
			},
		},
		{
			name:   "empty array",
			result: []any{},
			want: contradictionDetails{
				Doc1Claim:       unableToExtract,
				Doc2Claim:       unableToExtract,
				ConflictSummary: defaultConflictSummary,
			},
		},
		{
			name: "array takes first object element",
			result: []any{
				"noise",
				map[string]any{"doc1_claim": "First claim"},
				map[string]any{"doc1_claim": "Second claim"},
			},
			want: contradictionDetails{
				Doc1Claim:       "First claim",
				Doc2Claim:       unableToExtract,
				ConflictSummary: defaultConflictSummary,
			},
		},
		{
			name:   "scalar treated as empty",
			result: "just a string",
			want: contradictionDetails{
				Doc1Claim:       unableToExtract,
				Doc2Claim:       unableToExtract,
				ConflictSummary: defaultConflictSummary,
			},
		},
		{
			name: "blank fields fall back",
			result: map[string]any{
				"doc1_claim":       "",
				"doc2_claim":       "Conflicting claim",
				"conflict_summary": 42,
			},
			want: contradictionDetails{
				Doc1Claim:       unableToExtract,
				Doc2Claim:       "Conflicting claim",
				ConflictSummary: defaultConflictSummary,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeContradictionResult(tt.result)
			if got != tt.want {
				t.Errorf("normalizeContradictionResult() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func insightTestDocs() []common.Document {
	return []common.Document{
		{ID: "doc1", Title: "Policy 2024", Date: "2024-03-01"},
		{ID: "doc2", Title: "Policy 2023", Date: "2023-03-01"},
		{ID: "doc3", Title: "Rollout Plan", Date: "2024-01-15"},
	}
}

func TestAnalyzeGraph_ObsoleteInsights(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "doc2", "doc3"},
		[]common.Edge{
			{Source: "doc1", Target: "doc2", Type: common.RelationshipUpdates, Explanation: "2024 policy replaces 2023"},
		},
	)

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), &fakeAIClient{}); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	obsolete := graph.InsightsOfType(common.InsightObsolete)
	if len(obsolete) != 1 {
		t.Fatalf("got %d obsolete insights, want 1", len(obsolete))
	}

	ins := obsolete[0]
	if ins.ObsoleteDoc != "doc2" || ins.SupersededBy != "doc1" {
		t.Errorf("obsolete=%s superseded_by=%s, want doc2/doc1", ins.ObsoleteDoc, ins.SupersededBy)
	}
	if ins.ObsoleteTitle != "Policy 2023" || ins.SupersededTitle != "Policy 2024" {
		t.Errorf("titles = %q/%q", ins.ObsoleteTitle, ins.SupersededTitle)
	}
	if ins.Reason != "2024 policy replaces 2023" {
		t.Errorf("reason = %q, want the edge explanation", ins.Reason)
	}
}

func TestAnalyzeGraph_ContradictionWithAIDetails(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "doc2", "doc3"},
		[]common.Edge{
			{Source: "doc1", Target: "doc3", Type: common.RelationshipContradicts, Explanation: "Dates disagree"},
		},
	)

	aiClient := &fakeAIClient{
		respond: func(prompt string) (string, error) {
			return `{"doc1_claim": "March rollout", "doc2_claim": "June rollout", "conflict_summary": "Rollout dates conflict"}`, nil
		},
	}

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), aiClient); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	contradictions := graph.InsightsOfType(common.InsightContradiction)
	if len(contradictions) != 1 {
		t.Fatalf("got %d contradiction insights, want 1", len(contradictions))
	}

	ins := contradictions[0]
	if ins.Doc1Claim != "March rollout" || ins.Doc2Claim != "June rollout" {
		t.Errorf("claims = %q/%q", ins.Doc1Claim, ins.Doc2Claim)
	}
	if ins.ConflictSummary != "Rollout dates conflict" {
		t.Errorf("conflict_summary = %q", ins.ConflictSummary)
	}
	if ins.Doc1Title != "Policy 2024" || ins.Doc2Title != "Rollout Plan" {
		t.Errorf("titles = %q/%q", ins.Doc1Title, ins.Doc2Title)
	}
}

func TestAnalyzeGraph_ContradictionAIFailureUsesPlaceholders(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "doc2", "doc3"},
		[]common.Edge{
			{Source: "doc1", Target: "doc2", Type: common.RelationshipContradicts},
		},
	)

	aiClient := &fakeAIClient{
		respond: func(prompt string) (string, error) {
			return "", errors.New("backend down")
		},
	}

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), aiClient); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	contradictions := graph.InsightsOfType(common.InsightContradiction)
	if len(contradictions) != 1 {
		t.Fatalf("got %d contradiction insights, want 1", len(contradictions))
	}
	ins := contradictions[0]
	if ins.Doc1Claim != unableToExtract || ins.Doc2Claim != unableToExtract {
		t.Errorf("claims = %q/%q, want placeholders", ins.Doc1Claim, ins.Doc2Claim)
	}
	if ins.ConflictSummary != defaultConflictSummary {
		t.Errorf("conflict_summary = %q, want placeholder", ins.ConflictSummary)
	}
}

func TestAnalyzeGraph_ContradictionCap(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{MaxContradictions: 2})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	ids := []string{"doc1", "doc2", "doc3", "doc4", "doc5", "doc6"}
	docs := make([]common.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, common.Document{ID: id, Title: id})
	}

	graph := testGraph(ids, []common.Edge{
		{Source: "doc1", Target: "doc2", Type: common.RelationshipContradicts},
		{Source: "doc3", Target: "doc4", Type: common.RelationshipContradicts},
		{Source: "doc5", Target: "doc6", Type: common.RelationshipContradicts},
	})

	calls := 0
	aiClient := &fakeAIClient{
		respond: func(prompt string) (string, error) {
			calls++
			return "{}", nil
		},
	}

	if err := client.AnalyzeGraph(context.Background(), graph, docs, aiClient); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("AI calls = %d, want 2 (cap)", calls)
	}
	if got := len(graph.InsightsOfType(common.InsightContradiction)); got != 2 {
		t.Errorf("contradiction insights = %d, want 2", got)
	}

	// Capping applies to insights only; edges stay intact.
	if got := len(graph.EdgesOfType(common.RelationshipContradicts)); got != 3 {
		t.Errorf("contradiction edges = %d, want 3", got)
	}
}

func TestAnalyzeGraph_InsightOrdering(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "doc2", "doc3"},
		[]common.Edge{
			{Source: "doc1", Target: "doc2", Type: common.RelationshipUpdates, Explanation: "replaces"},
			{Source: "doc2", Target: "doc3", Type: common.RelationshipContradicts},
		},
	)

	aiClient := &fakeAIClient{
		respond: func(prompt string) (string, error) { return "{}", nil },
	}

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), aiClient); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	var types []string
	for _, ins := range graph.Insights {
		types = append(types, ins.Type)
	}
	want := []string{common.InsightContradiction, common.InsightObsolete, common.InsightCluster}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("insight types = %v, want %v", types, want)
	}

	cluster := graph.Insights[2]
	if cluster.Size != 3 || len(cluster.Nodes) != 3 {
		t.Errorf("cluster size = %d nodes = %v, want 3 members", cluster.Size, cluster.Nodes)
	}
	if !reflect.DeepEqual(cluster.Documents, []string{"Policy 2024", "Policy 2023", "Rollout Plan"}) {
		t.Errorf("cluster documents = %v", cluster.Documents)
	}
}

func TestAnalyzeGraph_MetadataAndImpact(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "doc2", "doc3"},
		[]common.Edge{
			{Source: "doc1", Target: "doc2", Type: common.RelationshipUpdates, Explanation: "replaces"},
		},
	)

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), &fakeAIClient{}); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	if got := graph.Metadata["clusters"]; got != 1 {
		t.Errorf("metadata clusters = %v, want 1", got)
	}
	// doc1 and doc2 tie at 2; the first in node order wins.
	if got := graph.Metadata["most_impactful"]; got != "doc1" {
		t.Errorf("metadata most_impactful = %v, want doc1", got)
	}

	scores := map[string]int{}
	for _, node := range graph.Nodes {
		scores[node.ID] = node.ImpactScore
	}
	if scores["doc1"] != 2 || scores["doc2"] != 2 || scores["doc3"] != 0 {
		t.Errorf("impact scores = %v", scores)
	}
}

func TestAnalyzeGraph_NilMostImpactfulWhenNoEdges(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph([]string{"doc1", "doc2", "doc3"}, nil)

	if err := client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), &fakeAIClient{}); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	if got, ok := graph.Metadata["most_impactful"]; !ok || got != nil {
		t.Errorf("metadata most_impactful = %v (present %v), want explicit nil", got, ok)
	}
	if len(graph.Insights) != 0 {
		t.Errorf("insights = %v, want none", graph.Insights)
	}
}

func TestAnalyzeGraph_MissingDocumentAborts(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	graph := testGraph(
		[]string{"doc1", "ghost"},
		[]common.Edge{
			{Source: "doc1", Target: "ghost", Type: common.RelationshipUpdates},
		},
	)

	err = client.AnalyzeGraph(context.Background(), graph, insightTestDocs(), &fakeAIClient{})
	var notFound *common.DocumentNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("AnalyzeGraph() error = %v, want DocumentNotFoundError", err)
	}
	if notFound.DocumentID != "ghost" {
		t.Errorf("missing id = %q, want ghost", notFound.DocumentID)
	}
}

func TestAnalyzeGraph_OneInsightPerUpdateEdge(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	ids := []string{"doc1", "doc2", "doc3"}
	docs := make([]common.Document, 0, len(ids))
	for i, id := range ids {
		docs = append(docs, common.Document{ID: id, Title: fmt.Sprintf("Version %d", len(ids)-i)})
	}

	// An update chain: doc1 supersedes doc2, doc2 supersedes doc3.
	graph := testGraph(ids, []common.Edge{
		{Source: "doc1", Target: "doc2", Type: common.RelationshipUpdates, Explanation: "v3 replaces v2"},
		{Source: "doc2", Target: "doc3", Type: common.RelationshipUpdates, Explanation: "v2 replaces v1"},
	})

	if err := client.AnalyzeGraph(context.Background(), graph, docs, &fakeAIClient{}); err != nil {
		t.Fatalf("AnalyzeGraph() error = %v", err)
	}

	obsolete := graph.InsightsOfType(common.InsightObsolete)
	if len(obsolete) != 2 {
		t.Fatalf("got %d obsolete insights, want 2 (one per edge)", len(obsolete))
	}
	if obsolete[0].ObsoleteDoc != "doc2" || obsolete[1].ObsoleteDoc != "doc3" {
		t.Errorf("obsolete docs = %s,%s, want doc2,doc3", obsolete[0].ObsoleteDoc, obsolete[1].ObsoleteDoc)
	}
}
