// Package ingest reads documents from a data directory, extracts their text
// and metadata, and attaches embedding vectors. Its output is the document
// set every later pipeline stage consumes.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/transmutehq/transmute/internal/util"
	"github.com/transmutehq/transmute/pkg/ai"
	"github.com/transmutehq/transmute/pkg/common"
	"github.com/transmutehq/transmute/pkg/logger"
)

const (
	defaultUntitled   = "Untitled Document"
	unknownDate       = "unknown"
	embeddingMaxTries = 3
	embedParallelMax  = 4
)

var (
	contentDateRe  = regexp.MustCompile(`\*\*Date:\*\*\s*(\d{4}-\d{2}-\d{2})`)
	filenameDateRe = regexp.MustCompile(`^(\d{4}-\d{2})-`)
)

// Ingester turns a directory of source files into embedded documents.
//
// An Ingester should be created using NewIngester.
type Ingester struct {
	dataDir string
}

// NewIngesterParams defines the configuration parameters for creating a
// new Ingester. DataDir is the directory scanned for source files.
type NewIngesterParams struct {
	DataDir string
}

// NewIngester creates and returns a new Ingester for the given directory.
func NewIngester(params NewIngesterParams) (*Ingester, error) {
	if params.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	return &Ingester{dataDir: params.DataDir}, nil
}

// IngestDocuments reads every supported file in the data directory, extracts
// text and metadata, and generates an embedding per document. Files are
// processed in sorted filename order so document order is reproducible.
//
// Embedding calls run in parallel with a bounded group and per-call retry.
// A provider returning vectors of inconsistent dimensions fails the whole
// run with *common.DimensionMismatchError.
func (i *Ingester) IngestDocuments(ctx context.Context, aiClient ai.GraphAIClient) ([]common.Document, error) {
	entries, err := os.ReadDir(i.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtension(filepath.Ext(entry.Name())) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("no supported documents in %s", i.dataDir)
	}
	logger.Info("[Ingest] Found documents", "count", len(names), "dir", i.dataDir)

	docs := make([]common.Document, 0, len(names))
	for idx, name := range names {
		path := filepath.Join(i.dataDir, name)
		content, err := extractText(path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", name, err)
		}

		id, err := gonanoid.New()
		if err != nil {
			return nil, err
		}

		doc := common.Document{
			ID:        id,
			Title:     extractTitle(content),
			Date:      extractDate(content, name),
			Content:   content,
			WordCount: len(strings.Fields(content)),
			Filename:  name,
		}
		logger.Info(
			fmt.Sprintf("[Ingest] %d/%d: %s", idx+1, len(names), name),
			"title", doc.Title,
			"date", doc.Date,
			"words", doc.WordCount,
		)

		docs = append(docs, doc)
	}

	if err := i.embedDocuments(ctx, docs, aiClient); err != nil {
		return nil, err
	}

	totalWords := 0
	for _, doc := range docs {
		totalWords += doc.WordCount
	}
	logger.Info("[Ingest] Completed", "documents", len(docs), "total_words", totalWords)

	return docs, nil
}

// embedDocuments fills in the Embedding field of every document in place.
func (i *Ingester) embedDocuments(ctx context.Context, docs []common.Document, aiClient ai.GraphAIClient) error {
	logger.Info("[Ingest] Generating embeddings", "documents", len(docs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(embedParallelMax)

	for idx := range docs {
		g.Go(func() error {
			doc := &docs[idx]
			embedding, err := util.RetryWithContext(gCtx, embeddingMaxTries, func(ctx context.Context) ([]float32, error) {
				return aiClient.GenerateEmbedding(ctx, []byte(doc.Content))
			})
			if err != nil {
				return fmt.Errorf("failed to embed %s: %w", doc.Filename, err)
			}
			doc.Embedding = embedding
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	want := len(docs[0].Embedding)
	for _, doc := range docs {
		if len(doc.Embedding) != want {
			return &common.DimensionMismatchError{
				DocumentID: doc.ID,
				Want:       want,
				Got:        len(doc.Embedding),
			}
		}
	}

	return nil
}

func supportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".txt", ".pdf", ".docx":
		return true
	}
	return false
}

// extractText reads a file and returns its plain-text content. Markdown and
// plain text pass through unchanged.
func extractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFText(path)
	case ".docx":
		return extractDocxText(path)
	default:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
}

// extractTitle returns the first markdown h1 heading, falling back to a
// default title.
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return defaultUntitled
}

// extractDate prefers an explicit "**Date:** 2024-01-15" marker in the
// content, then a "2024-01-" filename prefix, then "unknown".
func extractDate(content, filename string) string {
	if m := contentDateRe.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	if m := filenameDateRe.FindStringSubmatch(filename); m != nil {
		return m[1]
	}
	return unknownDate
}
