package llm

import "testing"

func TestCompletionCost_KnownModel(t *testing.T) {
	cost := CompletionCost("gpt-4o-mini", Usage{InputTokens: 1_000_000, OutputTokens: 1_000_000})
	want := 0.15 + 0.6
	if cost != want {
		t.Fatalf("expected %f, got %f", want, cost)
	}
}

func TestCompletionCost_UnknownModelIsZero(t *testing.T) {
	cost := CompletionCost("some-future-model", Usage{InputTokens: 1000, OutputTokens: 1000})
	if cost != 0 {
		t.Fatalf("unknown model must cost zero, got %f", cost)
	}
}

func TestEmbeddingCost(t *testing.T) {
	cost := EmbeddingCost("text-embedding-3-small", 1_000_000)
	if cost != 0.02 {
		t.Fatalf("expected 0.02, got %f", cost)
	}
	if EmbeddingCost("mystery-embedder", 1_000_000) != 0 {
		t.Fatal("unknown embedding model must cost zero")
	}
}

func TestLookupCost_Unknown(t *testing.T) {
	if LookupCost("nope") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
