package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockEmbedder is a deterministic Embedder for testing. It produces a
// fixed-dimension vector derived from the text bytes, so equal texts embed
// equally and round-trips are reproducible.
type MockEmbedder struct {
	Dim   int
	mu    sync.Mutex
	Texts []string
}

// NewMockEmbedder creates a MockEmbedder with the given dimension.
func NewMockEmbedder(dim int) *MockEmbedder {
	if dim <= 0 {
		dim = 8
	}
	return &MockEmbedder{Dim: dim}
}

func (m *MockEmbedder) Embed(_ context.Context, text string) ([]float64, EmbedUsage, error) {
	m.mu.Lock()
	m.Texts = append(m.Texts, text)
	m.mu.Unlock()

	vec := make([]float64, m.Dim)
	for i, b := range []byte(normalizeForEmbedding(text)) {
		vec[i%m.Dim] += float64(b) / 255.0
	}
	usage := EmbedUsage{Tokens: len(text) / 4, Model: "mock"}
	return vec, usage, nil
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string, progress func(done, total int)) ([][]float64, EmbedUsage, error) {
	out := make([][]float64, 0, len(texts))
	var total EmbedUsage
	for i, t := range texts {
		vec, usage, err := m.Embed(ctx, t)
		if err != nil {
			return nil, total, err
		}
		out = append(out, vec)
		total.Add(usage)
		if progress != nil {
			progress(i+1, len(texts))
		}
	}
	return out, total, nil
}

// ModelID returns "mock".
func (m *MockEmbedder) ModelID() string {
	return "mock"
}
