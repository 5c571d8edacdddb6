// Package ingest runs the document ingestion pipeline: extract text,
// chunk it, embed the chunks, persist them, and extract the topic map.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/socratic/internal/chunker"
	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/textsource"
	"github.com/abhisek/socratic/internal/topics"
	"github.com/abhisek/socratic/internal/vectorstore"
)

// Stats summarizes one ingestion run.
type Stats struct {
	DocName       string
	RunID         string
	TextChars     int
	Chunks        chunker.Stats
	EmbedUsage    llm.EmbedUsage
	TopicCount    int
	TopicsSkipped bool
}

// Progress receives staged pipeline notifications for terminal output.
// Any method may be a no-op.
type Progress interface {
	Stage(name string)
	Embedding(done, total int)
}

// NopProgress discards all notifications.
type NopProgress struct{}

func (NopProgress) Stage(string)       {}
func (NopProgress) Embedding(int, int) {}

// Pipeline wires the ingestion stages together.
type Pipeline struct {
	chunker   *chunker.Chunker
	embedder  llm.Embedder
	store     *vectorstore.Store
	extractor *topics.Extractor

	// SkipTopics disables topic-map extraction, for re-embedding runs.
	SkipTopics bool
}

// New creates a Pipeline. extractor may be nil only when SkipTopics is
// set before Run.
func New(c *chunker.Chunker, embedder llm.Embedder, store *vectorstore.Store, extractor *topics.Extractor) *Pipeline {
	return &Pipeline{chunker: c, embedder: embedder, store: store, extractor: extractor}
}

// Run ingests the document at path end to end. The document name is
// derived from the file name; every LLM round trip in the run shares one
// run ID in the telemetry log.
func (p *Pipeline) Run(ctx context.Context, path string, progress Progress) (*Stats, error) {
	if progress == nil {
		progress = NopProgress{}
	}

	docName := textsource.DocName(path)
	runID := uuid.NewString()
	ctx = llm.WithRunID(ctx, runID)
	ctx = llm.WithDoc(ctx, docName)

	stats := &Stats{DocName: docName, RunID: runID}

	progress.Stage("extracting text")
	text, err := textsource.ExtractText(path)
	if err != nil {
		return nil, err
	}
	stats.TextChars = len(text)

	progress.Stage("chunking")
	chunks, chunkStats := p.chunker.Chunk(text)
	stats.Chunks = chunkStats
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s produced no chunks; is the file empty?", path)
	}

	progress.Stage("embedding")
	ctx = llm.WithStage(ctx, "ingest-embed")
	embeddings, usage, err := p.embedder.EmbedBatch(ctx, chunks, progress.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	stats.EmbedUsage = usage

	progress.Stage("saving chunks")
	if err := p.store.Save(docName, chunks, embeddings); err != nil {
		return nil, err
	}

	if p.SkipTopics {
		stats.TopicsSkipped = true
		return stats, nil
	}

	progress.Stage("extracting topics")
	tm, err := p.extractor.Extract(ctx, docName, text)
	if err != nil {
		return nil, fmt.Errorf("extract topics: %w", err)
	}
	if err := p.store.SaveTopics(docName, tm); err != nil {
		return nil, err
	}
	stats.TopicCount = len(tm.Topics)

	return stats, nil
}
