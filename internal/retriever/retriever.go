// Package retriever ranks stored chunks against a query by cosine
// similarity over their embeddings.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/vectorstore"
)

// ScoredChunk is a chunk paired with its similarity to the query.
type ScoredChunk struct {
	ID    int
	Text  string
	Score float64
}

// Retriever finds the stored chunks most similar to a query.
type Retriever struct {
	store    *vectorstore.Store
	embedder llm.Embedder
}

// New creates a Retriever over the given store and embedder.
func New(store *vectorstore.Store, embedder llm.Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve embeds the query once and returns the topK most similar chunks
// of docName, highest score first. Ties break toward the lower chunk ID.
// Asking for more chunks than exist returns all of them.
func (r *Retriever) Retrieve(ctx context.Context, query, docName string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	chunks, err := r.store.Load(docName)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	queryVec, _, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored := make([]ScoredChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = ScoredChunk{
			ID:    c.ID,
			Text:  c.Text,
			Score: CosineSimilarity(queryVec, c.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})

	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

// CosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero-magnitude vectors score 0, never NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
