package store

import (
	"context"
	"time"
)

// Event kinds.
const (
	KindCompletion = "completion"
	KindEmbedding  = "embedding"
)

// LLMEventData describes one model or embedding round trip for telemetry.
// One row is appended per call, keyed by the run ID of the enclosing
// pipeline stage.
type LLMEventData struct {
	RunID        string
	Stage        string // e.g. "ingest", "qa", "teach-question", "teach-eval", "topics"
	Kind         string // KindCompletion or KindEmbedding
	Provider     string
	Model        string
	DocName      string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is a stored telemetry row.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMEventData
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int    // max results (0 = default 50)
	Stage string // filter by stage when non-empty
	RunID string // filter by run ID when non-empty
}

// EventRepo is the append-only telemetry log. Logging failures must never
// block the primary operation; callers warn and continue.
type EventRepo interface {
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
}
