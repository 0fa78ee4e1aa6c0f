// Package artifact persists pipeline outputs as JSON files. Each stage
// writes exactly one artifact; the API server only ever reads them.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/transmutehq/transmute/pkg/common"
)

// Artifact file names inside the store directory.
const (
	DocumentsFile = "documents.json"
	GraphFile     = "graph.json"
	MetricsFile   = "metrics.json"
)

// Store reads and writes pipeline artifacts under a single directory.
//
// A Store should be created using NewStore.
type Store struct {
	dir string
}

// NewStoreParams defines the configuration parameters for creating a
// new Store. Dir is created if it does not exist.
type NewStoreParams struct {
	Dir string
}

// NewStore creates and returns a new Store rooted at the given directory.
func NewStore(params NewStoreParams) (*Store, error) {
	if params.Dir == "" {
		return nil, fmt.Errorf("artifact directory is required")
	}
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &Store{dir: params.Dir}, nil
}

// SaveDocuments writes the document set artifact.
func (s *Store) SaveDocuments(docs []common.Document) error {
	return s.save(DocumentsFile, docs)
}

// LoadDocuments reads the document set artifact. A missing artifact
// satisfies errors.Is(err, os.ErrNotExist).
func (s *Store) LoadDocuments() ([]common.Document, error) {
	var docs []common.Document
	if err := s.load(DocumentsFile, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// SaveGraph writes the graph artifact.
func (s *Store) SaveGraph(graph *common.Graph) error {
	return s.save(GraphFile, graph)
}

// LoadGraph reads the graph artifact. A missing artifact satisfies
// errors.Is(err, os.ErrNotExist).
func (s *Store) LoadGraph() (*common.Graph, error) {
	var graph common.Graph
	if err := s.load(GraphFile, &graph); err != nil {
		return nil, err
	}
	return &graph, nil
}

// SaveMetrics writes the metrics artifact.
func (s *Store) SaveMetrics(m common.Metrics) error {
	return s.save(MetricsFile, m)
}

// LoadMetrics reads the metrics artifact. A missing artifact satisfies
// errors.Is(err, os.ErrNotExist).
func (s *Store) LoadMetrics() (common.Metrics, error) {
	var m common.Metrics
	if err := s.load(MetricsFile, &m); err != nil {
		return common.Metrics{}, err
	}
	return m, nil
}

// save writes an artifact atomically: marshal to a temp file in the same
// directory, then rename over the target. A crash mid-write never leaves a
// truncated artifact for the API to serve.
func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}

func (s *Store) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
