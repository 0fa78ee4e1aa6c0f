package graph

import (
	"math"
	"sort"

	"github.com/transmutehq/transmute/pkg/common"
)

// SimilarityMatrix computes the full pairwise cosine similarity matrix for
// the documents' embeddings. The matrix is symmetric with 1.0 on the
// diagonal. A zero vector has similarity 0 to every other vector.
//
// All embeddings must share one dimension; a mismatch returns a
// *common.DimensionMismatchError since it means the document artifact mixes
// embeddings from different models.
func SimilarityMatrix(docs []common.Document) ([][]float64, error) {
	if len(docs) == 0 {
		return nil, nil
	}

	dim := len(docs[0].Embedding)
	for _, doc := range docs {
		if len(doc.Embedding) != dim {
			return nil, &common.DimensionMismatchError{
				DocumentID: doc.ID,
				Want:       dim,
				Got:        len(doc.Embedding),
			}
		}
	}

	norms := make([]float64, len(docs))
	for i, doc := range docs {
		norms[i] = vectorNorm(doc.Embedding)
	}

	matrix := make([][]float64, len(docs))
	for i := range matrix {
		matrix[i] = make([]float64, len(docs))
		matrix[i][i] = 1.0
	}

	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			sim := 0.0
			if norms[i] > 0 && norms[j] > 0 {
				sim = dotProduct(docs[i].Embedding, docs[j].Embedding) / (norms[i] * norms[j])
			}
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}

	return matrix, nil
}

// SelectCandidates picks the edge candidates from a similarity matrix: every
// unordered pair above the similarity threshold, sorted descending by
// similarity (stable, so ties keep original pair order), truncated to the
// configured maximum. The returned candidates carry the lower document index
// as source.
func (g *GraphClient) SelectCandidates(docs []common.Document, matrix [][]float64) []common.EdgeCandidate {
	candidates := make([]common.EdgeCandidate, 0)
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			similarity := matrix[i][j]
			if similarity > g.similarityThreshold {
				candidates = append(candidates, common.EdgeCandidate{
					SourceIndex: i,
					TargetIndex: j,
					SourceID:    docs[i].ID,
					TargetID:    docs[j].ID,
					Similarity:  similarity,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Similarity > candidates[b].Similarity
	})

	if len(candidates) > g.maxEdges {
		candidates = candidates[:g.maxEdges]
	}

	return candidates
}

func dotProduct(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func vectorNorm(v []float32) float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
