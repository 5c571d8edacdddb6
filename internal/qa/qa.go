// Package qa answers free-form questions about an ingested document,
// grounded on retrieved chunks.
package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/retriever"
)

// DefaultTopK is how many chunks ground an answer when the caller does
// not choose.
const DefaultTopK = 3

// Answer is a grounded response with the chunks that informed it.
type Answer struct {
	Text    string
	Sources []retriever.ScoredChunk
}

// Refused reports whether the model declined to answer from the material.
func (a *Answer) Refused() bool {
	return strings.Contains(a.Text, RefusalPhrase)
}

// Answerer composes answers from retrieved context.
type Answerer struct {
	retriever *retriever.Retriever
	provider  llm.Provider
}

// New creates an Answerer over the given retriever and provider.
func New(r *retriever.Retriever, provider llm.Provider) *Answerer {
	return &Answerer{retriever: r, provider: provider}
}

// Answer retrieves the topK chunks for the query and asks the model to
// answer strictly from them. Retrieval errors, including a missing
// document, propagate unchanged.
func (a *Answerer) Answer(ctx context.Context, query, docName string, topK int) (*Answer, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	ctx = llm.WithStage(ctx, "qa")
	ctx = llm.WithDoc(ctx, docName)

	chunks, err := a.retriever.Retrieve(ctx, query, docName, topK)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(query, chunks)},
		},
		MaxTokens:   500,
		Temperature: 0.3,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	return &Answer{Text: resp.Text(), Sources: chunks}, nil
}
