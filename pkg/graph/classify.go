package graph

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/common"
	"github.com/transmutehq/transmute/pkg/logger"
)

// FallbackExplanation is attached to an edge whenever classification fails
// and the pair falls back to relates_to.
const FallbackExplanation = "Documents share common topics"

type parsedRelationship struct {
	Relationship string `json:"relationship" jsonschema:"enum=contradicts,enum=updates,enum=supports,enum=relates_to" jsonschema_description:"The single relationship label for the document pair"`
	Explanation  string `json:"explanation" jsonschema_description:"One sentence explaining the relationship"`
}

// classifyPair asks the AI backend for the relationship between two
// documents. It never fails: any error along the way (request, parse,
// unknown label) degrades to relates_to with the fallback explanation, so a
// single bad classification cannot abort a pipeline run.
func (g *GraphClient) classifyPair(
	ctx context.Context,
	doc1, doc2 common.Document,
	aiClient ai.GraphAIClient,
) (common.RelationshipType, string) {
	prompt := fmt.Sprintf(
		ai.RelationshipPrompt,
		doc1.Title, doc1.Date, g.truncateForPrompt(doc1.Content),
		doc2.Title, doc2.Date, g.truncateForPrompt(doc2.Content),
		ai.SchemaString(parsedRelationship{}),
	)

	text, err := aiClient.GenerateCompletion(ctx, prompt, ai.WithTemperature(0.1))
	if err != nil {
		logger.Warn("[Classify] Completion failed, using fallback", "doc1", doc1.ID, "doc2", doc2.ID, "err", err)
		return common.RelationshipRelatesTo, FallbackExplanation
	}

	parsed, err := parseRelationship(text)
	if err != nil {
		logger.Warn("[Classify] Unusable response, using fallback", "doc1", doc1.ID, "doc2", doc2.ID, "err", err)
		return common.RelationshipRelatesTo, FallbackExplanation
	}

	return common.RelationshipType(parsed.Relationship), parsed.Explanation
}

// parseRelationship parses raw model output into a relationship, rejecting
// responses that are missing fields or carry a label outside the four known
// relationship types.
func parseRelationship(text string) (parsedRelationship, error) {
	var parsed parsedRelationship
	if err := ai.UnmarshalFlexible(text, &parsed); err != nil {
		return parsedRelationship{}, err
	}

	switch common.RelationshipType(parsed.Relationship) {
	case common.RelationshipContradicts,
		common.RelationshipUpdates,
		common.RelationshipSupports,
		common.RelationshipRelatesTo:
	default:
		return parsedRelationship{}, fmt.Errorf("unknown relationship label: %q", parsed.Relationship)
	}

	if parsed.Explanation == "" {
		return parsedRelationship{}, fmt.Errorf("relationship response missing explanation")
	}

	return parsed, nil
}

// truncateForPrompt cuts document content down to the prompt token budget.
// Whole-document prompts work for typical knowledge-base notes, but a single
// oversized PDF must not blow up every classification request it appears in.
func (g *GraphClient) truncateForPrompt(text string) string {
	enc, err := tiktoken.GetEncoding(g.tokenEncoder)
	if err != nil {
		return text
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= g.promptTokenBudget {
		return text
	}
	return enc.Decode(tokens[:g.promptTokenBudget])
}
