package graph

import (
	"errors"
	"math"
	"testing"

	"github.com/transmutehq/transmute/pkg/common"
)

func doc(id string, embedding ...float32) common.Document {
	return common.Document{ID: id, Title: id, Embedding: embedding}
}

func TestSimilarityMatrix_SymmetricWithUnitDiagonal(t *testing.T) {
	docs := []common.Document{
		doc("a", 1, 0, 0),
		doc("b", 0.5, 0.5, 0),
		doc("c", 0, 1, 1),
	}

	matrix, err := SimilarityMatrix(docs)
	if err != nil {
		t.Fatalf("SimilarityMatrix() error = %v", err)
	}

	for i := range docs {
		if matrix[i][i] != 1.0 {
			t.Errorf("matrix[%d][%d] = %v, want 1.0", i, i, matrix[i][i])
		}
		for j := range docs {
			if matrix[i][j] != matrix[j][i] {
				t.Errorf("matrix not symmetric at (%d,%d): %v vs %v", i, j, matrix[i][j], matrix[j][i])
			}
			if matrix[i][j] < -1.0000001 || matrix[i][j] > 1.0000001 {
				t.Errorf("matrix[%d][%d] = %v outside [-1,1]", i, j, matrix[i][j])
			}
		}
	}

	// Hand-checked value: cos((1,0,0),(0.5,0.5,0)) = 1/sqrt(2).
	want := 1 / math.Sqrt2
	if diff := math.Abs(matrix[0][1] - want); diff > 1e-9 {
		t.Errorf("matrix[0][1] = %v, want %v", matrix[0][1], want)
	}
}

func TestSimilarityMatrix_ZeroVector(t *testing.T) {
	docs := []common.Document{
		doc("a", 0, 0),
		doc("b", 1, 0),
	}

	matrix, err := SimilarityMatrix(docs)
	if err != nil {
		t.Fatalf("SimilarityMatrix() error = %v", err)
	}
	if matrix[0][1] != 0 {
		t.Errorf("zero vector similarity = %v, want 0", matrix[0][1])
	}
	if matrix[0][0] != 1.0 {
		t.Errorf("zero vector self-similarity = %v, want 1.0", matrix[0][0])
	}
}

func TestSimilarityMatrix_DimensionMismatch(t *testing.T) {
	docs := []common.Document{
		doc("a", 1, 0, 0),
		doc("b", 1, 0),
	}

	_, err := SimilarityMatrix(docs)
	var mismatch *common.DimensionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("SimilarityMatrix() error = %v, want DimensionMismatchError", err)
	}
	if mismatch.DocumentID != "b" || mismatch.Want != 3 || mismatch.Got != 2 {
		t.Fatalf("unexpected mismatch details: %+v", mismatch)
	}
}

func TestSelectCandidates(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{
		SimilarityThreshold: 0.4,
		MaxEdges:            2,
	})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	docs := []common.Document{doc("a"), doc("b"), doc("c"), doc("d")}
	matrix := [][]float64{
		{1.0, 0.5, 0.9, 0.2},
		{0.5, 1.0, 0.3, 0.7},
		{0.9, 0.3, 1.0, 0.1},
		{0.2, 0.7, 0.1, 1.0},
	}

	candidates := client.SelectCandidates(docs, matrix)

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 (max_edges)", len(candidates))
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Similarity > candidates[i-1].Similarity {
			t.Fatalf("candidates not sorted descending: %v", candidates)
		}
	}
	if candidates[0].SourceID != "a" || candidates[0].TargetID != "c" {
		t.Errorf("top candidate = %s-%s, want a-c", candidates[0].SourceID, candidates[0].TargetID)
	}
	if candidates[1].SourceID != "b" || candidates[1].TargetID != "d" {
		t.Errorf("second candidate = %s-%s, want b-d", candidates[1].SourceID, candidates[1].TargetID)
	}
	for _, c := range candidates {
		if c.Similarity <= client.SimilarityThreshold() {
			t.Errorf("candidate %s-%s similarity %v not above threshold", c.SourceID, c.TargetID, c.Similarity)
		}
	}
}

func TestSelectCandidates_StableTies(t *testing.T) {
	client, err := NewGraphClient(NewGraphClientParams{SimilarityThreshold: 0.4})
	if err != nil {
		t.Fatalf("NewGraphClient() error = %v", err)
	}

	docs := []common.Document{doc("a"), doc("b"), doc("c")}
	matrix := [][]float64{
		{1.0, 0.6, 0.6},
		{0.6, 1.0, 0.6},
		{0.6, 0.6, 1.0},
	}

	candidates := client.SelectCandidates(docs, matrix)
	if len(candidates) != 3 {
		t.Fatalf("got %d candidates, want 3", len(candidates))
	}
	// Equal similarity keeps original pair order: (a,b), (a,c), (b,c).
	wantPairs := [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	for i, want := range wantPairs {
		if candidates[i].SourceID != want[0] || candidates[i].TargetID != want[1] {
			t.Errorf("candidate %d = %s-%s, want %s-%s",
				i, candidates[i].SourceID, candidates[i].TargetID, want[0], want[1])
		}
	}
}
