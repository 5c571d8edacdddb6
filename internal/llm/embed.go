package llm

import (
	"context"
	"strings"
)

// Embedder converts text into a fixed-dimension semantic vector.
type Embedder interface {
	// Embed returns the embedding vector for a single text plus usage
	// metadata. Newlines are normalized to spaces before submission.
	Embed(ctx context.Context, text string) ([]float64, EmbedUsage, error)

	// EmbedBatch embeds texts one by one in order. The optional progress
	// callback is invoked after each text. Usage is accumulated across
	// the whole batch.
	EmbedBatch(ctx context.Context, texts []string, progress func(done, total int)) ([][]float64, EmbedUsage, error)

	// ModelID returns the embedding model identifier.
	ModelID() string
}

// EmbedUsage tracks tokens and cost for embedding calls.
// Cost degrades to zero for unrecognized models.
type EmbedUsage struct {
	Tokens int
	Cost   float64
	Model  string
}

// Add accumulates another usage record into u.
func (u *EmbedUsage) Add(other EmbedUsage) {
	u.Tokens += other.Tokens
	u.Cost += other.Cost
	if u.Model == "" {
		u.Model = other.Model
	}
}

// normalizeForEmbedding replaces newlines with spaces; the embedding API
// performs better without them.
func normalizeForEmbedding(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}
