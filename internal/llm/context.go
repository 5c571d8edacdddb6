package llm

import "context"

type contextKey string

const (
	stageKey contextKey = "llm_stage"
	runIDKey contextKey = "llm_run_id"
	docKey   contextKey = "llm_doc"
)

// WithStage attaches a pipeline stage label to the context for telemetry.
// Callers pass the stage explicitly; routing is never inferred from the
// execution context.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFrom extracts the stage label from the context.
func StageFrom(ctx context.Context) string {
	if v, ok := ctx.Value(stageKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithRunID attaches a run identifier to the context for telemetry.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFrom extracts the run identifier from the context.
func RunIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey).(string); ok {
		return v
	}
	return ""
}

// WithDoc attaches the document name being operated on to the context.
func WithDoc(ctx context.Context, doc string) context.Context {
	return context.WithValue(ctx, docKey, doc)
}

// DocFrom extracts the document name from the context.
func DocFrom(ctx context.Context) string {
	if v, ok := ctx.Value(docKey).(string); ok {
		return v
	}
	return ""
}
