package ai

// RelationshipPrompt asks the model to classify how two documents relate.
// Format arguments: doc1 title, doc1 date, doc1 content, doc2 title,
// doc2 date, doc2 content, JSON schema of the expected response.
const RelationshipPrompt = `
# Task Context
You are an assistant that analyzes two documents from the same knowledge base and determines their semantic relationship.

# Background Data
Document 1 (%s, %s):
%s

Document 2 (%s, %s):
%s

# Detailed Task Description & Rules
Pick exactly one relationship:
- "contradicts": the documents make opposing claims
- "updates": the newer document supersedes or revises the older one
- "supports": the documents reinforce the same idea
- "relates_to": general topical connection

Write a one-sentence explanation for your choice.

# Output Formatting
IMPORTANT: Return ONLY a single valid JSON object, no markdown, no code blocks, no surrounding prose.
The object must match this schema:
%s

Example:
{"relationship": "contradicts", "explanation": "one sentence"}
`

// ContradictionPrompt asks the model to extract the specific conflicting
// claims from two documents already classified as contradictory.
// Format arguments: doc1 title, doc1 date, doc1 content, doc2 title,
// doc2 date, doc2 content, JSON schema of the expected response.
const ContradictionPrompt = `
# Task Context
You are an assistant that analyzes two documents known to contradict each other and extracts the specific conflicting claims.

# Background Data
Document 1 (%s, %s):
%s

Document 2 (%s, %s):
%s

# Detailed Task Description & Rules
- Quote or closely paraphrase the specific claim each document makes.
- Summarize the core conflict in one sentence.

# Output Formatting
IMPORTANT: Return ONLY a single valid JSON object, no markdown, no code blocks, no surrounding prose.
The object must match this schema:
%s

Example:
{
  "doc1_claim": "specific claim from document 1",
  "doc2_claim": "specific conflicting claim from document 2",
  "conflict_summary": "one sentence explaining the core conflict"
}
`
