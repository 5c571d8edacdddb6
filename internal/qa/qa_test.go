package qa

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/retriever"
	"github.com/abhisek/socratic/internal/vectorstore"
)

func setupAnswerer(t *testing.T, responses ...llm.MockResponse) (*Answerer, *llm.MockProvider) {
	t.Helper()
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)

	embedder := llm.NewMockEmbedder(8)
	texts := []string{"photosynthesis converts light to sugar", "mitochondria produce ATP", "cells divide by mitosis"}
	embeddings := make([][]float64, len(texts))
	for i, txt := range texts {
		vec, _, err := embedder.Embed(context.Background(), txt)
		require.NoError(t, err)
		embeddings[i] = vec
	}
	require.NoError(t, store.Save("biology", texts, embeddings))

	provider := llm.NewMockProvider(responses...)
	return New(retriever.New(store, embedder), provider), provider
}

func TestAnswer(t *testing.T) {
	a, provider := setupAnswerer(t, llm.MockResponse{
		Content: json.RawMessage(`"Photosynthesis converts light into sugar."`),
	})

	ans, err := a.Answer(context.Background(), "what does photosynthesis do?", "biology", 2)
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis converts light into sugar.", ans.Text)
	assert.False(t, ans.Refused())
	assert.Len(t, ans.Sources, 2)

	require.Len(t, provider.Calls, 1)
	req := provider.Calls[0]
	assert.Nil(t, req.Schema)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Equal(t, 500, req.MaxTokens)
	assert.Contains(t, req.Messages[0].Content, "CONTEXT:")
	assert.Contains(t, req.Messages[0].Content, "\n\n---\n\n")
	assert.Contains(t, req.Messages[0].Content, "what does photosynthesis do?")
}

func TestAnswerRefusal(t *testing.T) {
	a, _ := setupAnswerer(t, llm.MockResponse{
		Content: json.RawMessage(`"` + RefusalPhrase + `."`),
	})

	ans, err := a.Answer(context.Background(), "who won the world cup?", "biology", 0)
	require.NoError(t, err)
	assert.True(t, ans.Refused())
	assert.Len(t, ans.Sources, DefaultTopK)
}

func TestAnswerMissingDocument(t *testing.T) {
	a, provider := setupAnswerer(t)

	_, err := a.Answer(context.Background(), "anything", "ghost", 3)
	require.Error(t, err)
	assert.True(t, vectorstore.IsNotFound(err))
	assert.Zero(t, provider.CallCount(), "no completion call expected when retrieval fails")
}
