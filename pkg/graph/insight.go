package graph

import (
	"context"
	"fmt"

	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/common"
	"github.com/transmutehq/transmute/pkg/logger"
)

// Placeholder strings used when contradiction detail extraction returns
// nothing usable for a field.
const (
	unableToExtract        = "Unable to extract"
	defaultConflictSummary = "Documents have conflicting information"
)

type contradictionDetails struct {
	Doc1Claim       string `json:"doc1_claim" jsonschema_description:"Specific claim from document 1"`
	Doc2Claim       string `json:"doc2_claim" jsonschema_description:"Specific conflicting claim from document 2"`
	ConflictSummary string `json:"conflict_summary" jsonschema_description:"One sentence explaining the core conflict"`
}

// AnalyzeGraph derives insights from a built graph and writes them back onto
// it: contradiction details (AI-extracted, capped), obsolescence findings
// (one per updates edge), document clusters, and per-node impact scores.
// Insights are appended in exactly that order.
//
// AI failures degrade to placeholder details and never abort the analysis.
// An edge referencing a document id missing from docs aborts with
// *common.DocumentNotFoundError: the graph and document artifacts no longer
// describe the same corpus.
func (g *GraphClient) AnalyzeGraph(
	ctx context.Context,
	graph *common.Graph,
	docs []common.Document,
	aiClient ai.GraphAIClient,
) error {
	docsByID := make(map[string]common.Document, len(docs))
	for _, doc := range docs {
		docsByID[doc.ID] = doc
	}
	getDoc := func(id string) (common.Document, error) {
		doc, ok := docsByID[id]
		if !ok {
			return common.Document{}, &common.DocumentNotFoundError{DocumentID: id}
		}
		return doc, nil
	}

	insights := make([]common.Insight, 0)

	// Contradictions first: each one costs an AI call, so the cap applies
	// to edge order (descending similarity).
	contradictionEdges := graph.EdgesOfType(common.RelationshipContradicts)
	logger.Info("[Insights] Contradiction edges", "count", len(contradictionEdges))

	capped := contradictionEdges
	if len(capped) > g.maxContradictions {
		capped = capped[:g.maxContradictions]
	}
	for idx, edge := range capped {
		doc1, err := getDoc(edge.Source)
		if err != nil {
			return err
		}
		doc2, err := getDoc(edge.Target)
		if err != nil {
			return err
		}

		logger.Info(
			fmt.Sprintf("[Insights] %d/%d extracting conflict: %s vs %s", idx+1, len(capped), doc1.Title, doc2.Title),
		)
		details := g.extractContradictionDetails(ctx, doc1, doc2, aiClient)

		insights = append(insights, common.Insight{
			Type:            common.InsightContradiction,
			Nodes:           []string{edge.Source, edge.Target},
			Doc1Title:       doc1.Title,
			Doc2Title:       doc2.Title,
			Doc1Date:        doc1.Date,
			Doc2Date:        doc2.Date,
			Doc1Claim:       details.Doc1Claim,
			Doc2Claim:       details.Doc2Claim,
			ConflictSummary: details.ConflictSummary,
		})
	}

	// Obsolescence: every updates edge yields one finding, no AI call, the
	// edge explanation doubles as the reason. Chains and cycles of updates
	// intentionally produce one finding per edge.
	updateEdges := graph.EdgesOfType(common.RelationshipUpdates)
	logger.Info("[Insights] Update edges", "count", len(updateEdges))

	for _, edge := range updateEdges {
		docNew, err := getDoc(edge.Source)
		if err != nil {
			return err
		}
		docOld, err := getDoc(edge.Target)
		if err != nil {
			return err
		}

		insights = append(insights, common.Insight{
			Type:            common.InsightObsolete,
			Nodes:           []string{edge.Source, edge.Target},
			ObsoleteDoc:     edge.Target,
			ObsoleteTitle:   docOld.Title,
			ObsoleteDate:    docOld.Date,
			SupersededBy:    edge.Source,
			SupersededTitle: docNew.Title,
			SupersededDate:  docNew.Date,
			Reason:          edge.Explanation,
		})
	}

	// Clusters: connectivity only, edge type ignored.
	clusters := detectClusters(graph)
	logger.Info("[Insights] Clusters", "count", len(clusters))

	for _, cluster := range clusters {
		titles := make([]string, 0, len(cluster))
		for _, id := range cluster {
			doc, err := getDoc(id)
			if err != nil {
				return err
			}
			titles = append(titles, doc.Title)
		}

		insights = append(insights, common.Insight{
			Type:      common.InsightCluster,
			Nodes:     cluster,
			Size:      len(cluster),
			Documents: titles,
		})
	}

	// Impact scores go onto the nodes, not into insights.
	impact := calculateImpactScores(graph)
	for i := range graph.Nodes {
		graph.Nodes[i].ImpactScore = impact[graph.Nodes[i].ID]
	}

	graph.Insights = insights
	if graph.Metadata == nil {
		graph.Metadata = map[string]any{}
	}
	graph.Metadata["clusters"] = len(clusters)
	if top := mostImpactful(graph, impact); top != "" {
		graph.Metadata["most_impactful"] = top
	} else {
		graph.Metadata["most_impactful"] = nil
	}

	logger.Info(
		"[Insights] Analysis completed",
		"insights", len(insights),
		"contradictions", len(capped),
		"obsolete", len(updateEdges),
		"clusters", len(clusters),
	)

	return nil
}

// extractContradictionDetails asks the AI backend for the specific
// conflicting claims behind a contradiction edge. It always returns usable
// details: whatever goes wrong, every field is filled with its placeholder.
func (g *GraphClient) extractContradictionDetails(
	ctx context.Context,
	doc1, doc2 common.Document,
	aiClient ai.GraphAIClient,
) contradictionDetails {
	prompt := fmt.Sprintf(
		ai.ContradictionPrompt,
		doc1.Title, doc1.Date, g.truncateForPrompt(doc1.Content),
		doc2.Title, doc2.Date, g.truncateForPrompt(doc2.Content),
		ai.SchemaString(contradictionDetails{}),
	)

	text, err := aiClient.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.1))
	if err != nil {
		logger.Warn("[Insights] Conflict extraction failed", "doc1", doc1.ID, "doc2", doc2.ID, "err", err)
		return normalizeContradictionResult(nil)
	}

	var raw any
	if err := ai.UnmarshalFlexible(text, &raw); err != nil {
		logger.Warn("[Insights] Unusable conflict response", "doc1", doc1.ID, "doc2", doc2.ID, "err", err)
		return normalizeContradictionResult(nil)
	}

	return normalizeContradictionResult(raw)
}

// normalizeContradictionResult coerces arbitrary decoded JSON into complete
// contradiction details. Arrays contribute their first object element;
// anything that is not an object is treated as empty; missing or blank
// fields fall back to placeholders.
func normalizeContradictionResult(result any) contradictionDetails {
	if arr, ok := result.([]any); ok {
		result = nil
		for _, item := range arr {
			if obj, ok := item.(map[string]any); ok {
				result = obj
				break
			}
		}
	}

	obj, _ := result.(map[string]any)
	field := func(key, fallback string) string {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}

	return contradictionDetails{
		Doc1Claim:       field("doc1_claim", unableToExtract),
		Doc2Claim:       field("doc2_claim", unableToExtract),
		ConflictSummary: field("conflict_summary", defaultConflictSummary),
	}
}
