package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedding gateway.
func NewOpenAIEmbedder(cfg EmbeddingConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, EmbedUsage, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{normalizeForEmbedding(text)},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, EmbedUsage{}, mapOpenAIError(err)
	}
	if len(resp.Data) == 0 {
		return nil, EmbedUsage{}, &ErrInvalidResponse{
			Err: fmt.Errorf("no data in embeddings response"),
		}
	}

	vec := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float64(v)
	}

	usage := EmbedUsage{
		Tokens: resp.Usage.PromptTokens,
		Cost:   EmbeddingCost(e.model, resp.Usage.PromptTokens),
		Model:  e.model,
	}
	return vec, usage, nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string, progress func(done, total int)) ([][]float64, EmbedUsage, error) {
	out := make([][]float64, 0, len(texts))
	var total EmbedUsage
	for i, t := range texts {
		vec, usage, err := e.Embed(ctx, t)
		if err != nil {
			return nil, total, fmt.Errorf("embed text %d/%d: %w", i+1, len(texts), err)
		}
		out = append(out, vec)
		total.Add(usage)
		if progress != nil {
			progress(i+1, len(texts))
		}
	}
	return out, total, nil
}

func (e *OpenAIEmbedder) ModelID() string {
	return e.model
}
