package common

// RelationshipType labels the semantic relationship between two documents.
type RelationshipType string

const (
	// RelationshipContradicts marks documents that make opposing claims.
	RelationshipContradicts RelationshipType = "contradicts"
	// RelationshipUpdates marks a newer document superseding an older one.
	// The edge source is the superseding document, the target the superseded one.
	RelationshipUpdates RelationshipType = "updates"
	// RelationshipSupports marks documents that reinforce the same idea.
	RelationshipSupports RelationshipType = "supports"
	// RelationshipRelatesTo marks a general topical connection. It is also
	// the fallback when classification fails.
	RelationshipRelatesTo RelationshipType = "relates_to"
)

// Insight type discriminators used in Insight.Type.
const (
	InsightContradiction = "contradiction"
	InsightObsolete      = "obsolete"
	InsightCluster       = "cluster"
)

// Document is one ingested document with its embedding vector.
// Documents are immutable once created by ingestion.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	WordCount int       `json:"word_count"`
	Filename  string    `json:"filename,omitempty"`
	Embedding []float32 `json:"embedding"`
}

// EdgeCandidate is a document pair whose cosine similarity cleared the
// selection threshold. Candidates are transient: the classifier turns the
// surviving ones into typed edges. Source and target follow the original
// document order (source index < target index).
type EdgeCandidate struct {
	SourceIndex int
	TargetIndex int
	SourceID    string
	TargetID    string
	Similarity  float64
}

// Edge is a typed, weighted relationship between two documents.
// Direction matters only for "updates" (source supersedes target).
type Edge struct {
	Source      string           `json:"source"`
	Target      string           `json:"target"`
	Type        RelationshipType `json:"type"`
	Explanation string           `json:"explanation"`
	Similarity  float64          `json:"similarity"`
}

// Node is one document's representation inside the graph. ImpactScore is
// zero until the insight analysis writes it.
type Node struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Date        string `json:"date"`
	Content     string `json:"content"`
	WordCount   int    `json:"word_count"`
	ImpactScore int    `json:"impact_score"`
}

// Insight is one derived finding attached to a graph. Type selects which
// fields are populated:
//
//   - "contradiction": Nodes (two ids), Doc1*/Doc2* titles, dates and claims,
//     ConflictSummary
//   - "obsolete": Nodes (two ids), Obsolete*/Superseded* fields, Reason
//   - "cluster": Nodes (all member ids), Size, Documents (member titles)
type Insight struct {
	Type  string   `json:"type"`
	Nodes []string `json:"nodes"`

	Doc1Title       string `json:"doc1_title,omitempty"`
	Doc2Title       string `json:"doc2_title,omitempty"`
	Doc1Date        string `json:"doc1_date,omitempty"`
	Doc2Date        string `json:"doc2_date,omitempty"`
	Doc1Claim       string `json:"doc1_claim,omitempty"`
	Doc2Claim       string `json:"doc2_claim,omitempty"`
	ConflictSummary string `json:"conflict_summary,omitempty"`

	ObsoleteDoc     string `json:"obsolete_doc,omitempty"`
	ObsoleteTitle   string `json:"obsolete_title,omitempty"`
	ObsoleteDate    string `json:"obsolete_date,omitempty"`
	SupersededBy    string `json:"superseded_by,omitempty"`
	SupersededTitle string `json:"superseded_title,omitempty"`
	SupersededDate  string `json:"superseded_date,omitempty"`
	Reason          string `json:"reason,omitempty"`

	Size      int      `json:"size,omitempty"`
	Documents []string `json:"documents,omitempty"`
}

// Graph is the sole durable artifact produced by graph construction and
// consumed by every downstream stage and the API.
//
// Nodes keep ingestion order, edges descending similarity order. Insights
// are absent until the analysis stage runs; it is the only stage allowed to
// mutate a graph after construction (node impact scores, metadata, insights).
type Graph struct {
	Nodes    []Node         `json:"nodes"`
	Edges    []Edge         `json:"edges"`
	Metadata map[string]any `json:"metadata"`
	Insights []Insight      `json:"insights,omitempty"`
}

// EdgesOfType returns the graph's edges with the given relationship type,
// preserving edge order.
func (g *Graph) EdgesOfType(t RelationshipType) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// InsightsOfType returns the graph's insights with the given type,
// preserving insight order.
func (g *Graph) InsightsOfType(t string) []Insight {
	var out []Insight
	for _, i := range g.Insights {
		if i.Type == t {
			out = append(out, i)
		}
	}
	return out
}

// Metrics is a derived snapshot computed from a graph and its documents.
// It is written as its own artifact and never folded back into the graph.
type Metrics struct {
	Summary               MetricsSummary        `json:"summary"`
	CognitiveLoad         CognitiveLoad         `json:"cognitive_load"`
	StorageSavings        StorageSavings        `json:"storage_savings"`
	KnowledgePreservation KnowledgePreservation `json:"knowledge_preservation"`
	ImpactStatement       string                `json:"impact_statement"`
}

// MetricsSummary holds corpus-wide totals.
type MetricsSummary struct {
	TotalDocuments int     `json:"total_documents"`
	TotalWords     int     `json:"total_words"`
	TotalSizeKB    float64 `json:"total_size_kb"`
}

// CognitiveLoad counts documents that create confusion or redundancy.
type CognitiveLoad struct {
	ReductionPercent float64 `json:"reduction_percent"`
	ObsoleteDocs     int     `json:"obsolete_docs"`
	Duplicates       int     `json:"duplicates"`
	Contradictions   int     `json:"contradictions"`
	TotalProblematic int     `json:"total_problematic"`
}

// StorageSavings estimates reclaimable storage from archiving and deduplication.
type StorageSavings struct {
	TotalSavingsKB     float64 `json:"total_savings_kb"`
	SavingsPercent     float64 `json:"savings_percent"`
	ObsoleteSavingsKB  float64 `json:"obsolete_savings_kb"`
	DuplicateSavingsKB float64 `json:"duplicate_savings_kb"`
}

// KnowledgePreservation counts the relationships and clusters the graph keeps.
type KnowledgePreservation struct {
	RelationshipsDiscovered int     `json:"relationships_discovered"`
	ClustersFormed          int     `json:"clusters_formed"`
	AvgConnectionsPerDoc    float64 `json:"avg_connections_per_doc"`
}
