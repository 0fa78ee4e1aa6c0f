package common

import "fmt"

// DimensionMismatchError reports a document whose embedding dimension differs
// from the rest of the corpus. It indicates corrupted or mixed-model
// artifacts and is fatal to the stage that detects it.
type DimensionMismatchError struct {
	DocumentID string
	Want       int
	Got        int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf(
		"embedding dimension mismatch for document %s: got %d, want %d",
		e.DocumentID, e.Got, e.Want,
	)
}

// DocumentNotFoundError reports a graph edge referencing a document id that
// is absent from the document set. The graph and document artifacts are out
// of sync, so the stage must abort rather than skip.
type DocumentNotFoundError struct {
	DocumentID string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %s referenced by graph but not found in document set", e.DocumentID)
}
