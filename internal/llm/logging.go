package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/socratic/internal/store"
)

// LoggingProvider is a decorator that records every completion round trip
// as a telemetry event, including its USD cost.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	provider  string
}

// WithLogging wraps a Provider with event logging. The provider label is
// the configured provider name ("openai", "anthropic", ...).
func WithLogging(p Provider, repo store.EventRepo, provider string) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo, provider: provider}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMEventData{
		RunID:     RunIDFrom(ctx),
		Stage:     StageFrom(ctx),
		Kind:      store.KindCompletion,
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		DocName:   DocFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.CostUSD = CompletionCost(resp.Model, resp.Usage)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendLLMEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM event: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// LoggingEmbedder is a decorator that records embedding round trips.
// A batch is recorded as a single event with accumulated usage.
type LoggingEmbedder struct {
	inner     Embedder
	eventRepo store.EventRepo
	provider  string
}

// WithEmbedderLogging wraps an Embedder with event logging.
func WithEmbedderLogging(e Embedder, repo store.EventRepo, provider string) Embedder {
	return &LoggingEmbedder{inner: e, eventRepo: repo, provider: provider}
}

func (l *LoggingEmbedder) Embed(ctx context.Context, text string) ([]float64, EmbedUsage, error) {
	start := time.Now()
	vec, usage, err := l.inner.Embed(ctx, text)
	l.log(ctx, usage, time.Since(start), err)
	return vec, usage, err
}

func (l *LoggingEmbedder) EmbedBatch(ctx context.Context, texts []string, progress func(done, total int)) ([][]float64, EmbedUsage, error) {
	start := time.Now()
	vecs, usage, err := l.inner.EmbedBatch(ctx, texts, progress)
	l.log(ctx, usage, time.Since(start), err)
	return vecs, usage, err
}

func (l *LoggingEmbedder) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingEmbedder) log(ctx context.Context, usage EmbedUsage, elapsed time.Duration, err error) {
	data := store.LLMEventData{
		RunID:       RunIDFrom(ctx),
		Stage:       StageFrom(ctx),
		Kind:        store.KindEmbedding,
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		DocName:     DocFrom(ctx),
		InputTokens: usage.Tokens,
		CostUSD:     usage.Cost,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	if logErr := l.eventRepo.AppendLLMEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log embedding event: %v\n", logErr)
	}
}
