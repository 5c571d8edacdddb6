package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/vectorstore"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5}
	b := []float64{2.1, 0.4, -0.9}
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-12)
}

func TestCosineSimilarityBounded(t *testing.T) {
	a := []float64{3, 4, 5}
	b := []float64{-1, 7, 2}
	got := CosineSimilarity(a, b)
	assert.GreaterOrEqual(t, got, -1.0)
	assert.LessOrEqual(t, got, 1.0)
}

// saveDoc stores chunks whose embeddings come from the mock embedder, so
// retrieval with an identical query text scores that chunk at 1.
func saveDoc(t *testing.T, store *vectorstore.Store, embedder llm.Embedder, docName string, texts []string) {
	t.Helper()
	embeddings := make([][]float64, len(texts))
	for i, txt := range texts {
		vec, _, err := embedder.Embed(context.Background(), txt)
		require.NoError(t, err)
		embeddings[i] = vec
	}
	require.NoError(t, store.Save(docName, texts, embeddings))
}

func TestRetrieveRanksExactMatchFirst(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)
	embedder := llm.NewMockEmbedder(8)

	texts := []string{"alpha beta gamma", "delta epsilon", "zeta eta theta"}
	saveDoc(t, store, embedder, "doc", texts)

	r := New(store, embedder)
	results, err := r.Retrieve(context.Background(), "delta epsilon", "doc", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "delta epsilon", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestRetrieveTopKLargerThanCorpus(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)
	embedder := llm.NewMockEmbedder(8)
	saveDoc(t, store, embedder, "doc", []string{"one", "two"})

	r := New(store, embedder)
	results, err := r.Retrieve(context.Background(), "one", "doc", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetrieveTieBreaksByID(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)
	// Duplicate texts produce identical embeddings and identical scores.
	embedder := llm.NewMockEmbedder(8)
	saveDoc(t, store, embedder, "doc", []string{"same text", "same text", "same text"})

	r := New(store, embedder)
	results, err := r.Retrieve(context.Background(), "same text", "doc", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 0, results[0].ID)
	assert.Equal(t, 1, results[1].ID)
	assert.Equal(t, 2, results[2].ID)
}

func TestRetrieveMissingDocument(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)

	r := New(store, llm.NewMockEmbedder(8))
	_, err = r.Retrieve(context.Background(), "query", "ghost", 3)
	require.Error(t, err)
	assert.True(t, vectorstore.IsNotFound(err))
}

func TestRetrieveInvalidTopK(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)

	r := New(store, llm.NewMockEmbedder(8))
	_, err = r.Retrieve(context.Background(), "query", "doc", 0)
	assert.Error(t, err)
}
