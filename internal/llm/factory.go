package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/socratic/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, timeout, and logging
// middleware: caller → retry → timeout → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, eventRepo, cfg.Provider)
	bounded := WithTimeout(logged, cfg.Timeout)
	retried := WithRetry(bounded, cfg.Retry)

	return retried, nil
}

// NewEmbedder creates the embedding gateway from configuration, wrapped
// with event logging.
func NewEmbedder(cfg Config, eventRepo store.EventRepo) (Embedder, error) {
	if cfg.Provider == "mock" {
		return NewMockEmbedder(8), nil
	}

	base, err := NewOpenAIEmbedder(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("initializing embedding gateway: %w", err)
	}
	return WithEmbedderLogging(base, eventRepo, "openai"), nil
}
