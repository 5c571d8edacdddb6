package topics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/socratic/internal/llm"
)

// Extractor builds a TopicMap from document text using an LLM provider.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates an Extractor backed by the given provider.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract derives the topic map for a document from its full text.
func (e *Extractor) Extract(ctx context.Context, docName, fullText string) (*TopicMap, error) {
	ctx = llm.WithStage(ctx, "topic-extraction")
	ctx = llm.WithDoc(ctx, docName)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(docName, fullText)},
		},
		Schema:      TopicMapSchema,
		MaxTokens:   4000,
		Temperature: 0.3,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("topic extraction failed: %w", err)
	}

	var tm TopicMap
	if err := json.Unmarshal(resp.Content, &tm); err != nil {
		return nil, fmt.Errorf("failed to parse topic map: %w", err)
	}
	if len(tm.Topics) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("no topics extracted")}
	}
	return &tm, nil
}
