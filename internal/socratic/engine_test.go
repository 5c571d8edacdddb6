package socratic

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/retriever"
	"github.com/abhisek/socratic/internal/vectorstore"
)

func questionJSON(question string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(fmt.Sprintf(
		`{"question": %q, "teaching_goal": "understand the idea", "hint_if_stuck": "think about waves"}`,
		question,
	))}
}

func evalJSON(correctness string, next *string) llm.MockResponse {
	nextField := "null"
	if next != nil {
		nextField = fmt.Sprintf("%q", *next)
	}
	return llm.MockResponse{Content: json.RawMessage(fmt.Sprintf(
		`{"correctness": %q, "strengths": ["engaged with the material"], "gaps": [], "misconceptions": [], "feedback": "good effort", "next_question": %s}`,
		correctness, nextField,
	))}
}

func strptr(s string) *string { return &s }

// newTestRetriever builds a retriever over a three-chunk document whose
// embeddings come from the mock embedder.
func newTestRetriever(t *testing.T) *retriever.Retriever {
	t.Helper()
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)

	embedder := llm.NewMockEmbedder(8)
	texts := []string{"waves interfere by superposition", "diffraction bends waves", "standing waves have nodes"}
	embeddings := make([][]float64, len(texts))
	for i, txt := range texts {
		vec, _, err := embedder.Embed(context.Background(), txt)
		require.NoError(t, err)
		embeddings[i] = vec
	}
	require.NoError(t, store.Save("physics", texts, embeddings))
	return retriever.New(store, embedder)
}

func TestGenerateQuestionRetrievesWhenContextEmpty(t *testing.T) {
	mock := llm.NewMockProvider(questionJSON("Why do waves interfere?"))
	e := NewEngine(mock, newTestRetriever(t))

	q, err := e.GenerateQuestion(context.Background(), "Interference", "physics", DifficultyBeginner, "")
	require.NoError(t, err)

	assert.Equal(t, "Why do waves interfere?", q.Question)
	assert.NotEmpty(t, q.TeachingGoal)
	assert.NotEmpty(t, q.ContextUsed, "retrieved context should be attached to the question")

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, QuestionSchema, req.Schema)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "Interference")
	assert.Contains(t, req.Messages[0].Content, "beginner")
}

func TestGenerateQuestionUsesProvidedContext(t *testing.T) {
	mock := llm.NewMockProvider(questionJSON("What is a node?"))
	e := NewEngine(mock, newTestRetriever(t))

	q, err := e.GenerateQuestion(context.Background(), "Standing waves", "physics", DifficultyAdvanced, "nodes are points of zero amplitude")
	require.NoError(t, err)

	assert.Equal(t, "nodes are points of zero amplitude", q.ContextUsed)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "nodes are points of zero amplitude")
}

func TestGenerateQuestionMissingDocument(t *testing.T) {
	store, err := vectorstore.New(t.TempDir())
	require.NoError(t, err)
	e := NewEngine(llm.NewMockProvider(), retriever.New(store, llm.NewMockEmbedder(8)))

	_, err = e.GenerateQuestion(context.Background(), "Anything", "ghost", DifficultyBeginner, "")
	require.Error(t, err)
	assert.True(t, vectorstore.IsNotFound(err))
}

func TestEvaluateAnswer(t *testing.T) {
	mock := llm.NewMockProvider(evalJSON("partial", strptr("What about phase?")))
	e := NewEngine(mock, newTestRetriever(t))

	ev, err := e.EvaluateAnswer(context.Background(), "Why do waves interfere?", "they add up", "material", "understand superposition")
	require.NoError(t, err)

	assert.Equal(t, CorrectnessPartial, ev.Correctness)
	require.NotNil(t, ev.NextQuestion)
	assert.Equal(t, "What about phase?", *ev.NextQuestion)
	assert.NotEmpty(t, ev.Strengths)

	req := mock.Calls[0]
	assert.Equal(t, EvaluationSchema, req.Schema)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9, "evaluation runs at teaching temperature")
	assert.Contains(t, req.Messages[0].Content, "they add up")
	assert.Contains(t, req.Messages[0].Content, "understand superposition")
}

func TestEvaluateAnswerNullFollowUp(t *testing.T) {
	mock := llm.NewMockProvider(evalJSON("correct", nil))
	e := NewEngine(mock, newTestRetriever(t))

	ev, err := e.EvaluateAnswer(context.Background(), "q", "a", "ctx", "goal")
	require.NoError(t, err)
	assert.Equal(t, CorrectnessCorrect, ev.Correctness)
	assert.Nil(t, ev.NextQuestion)
}

func TestDifficultyEscalation(t *testing.T) {
	assert.Equal(t, DifficultyIntermediate, DifficultyBeginner.Escalate())
	assert.Equal(t, DifficultyAdvanced, DifficultyIntermediate.Escalate())
	assert.Equal(t, DifficultyAdvanced, DifficultyAdvanced.Escalate(), "advanced is the cap")
}
