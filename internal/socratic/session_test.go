package socratic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/llm"
)

func newTestSession(t *testing.T, maxTurns int, responses ...llm.MockResponse) (*Session, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	engine := NewEngine(mock, newTestRetriever(t))
	return NewSession(engine, "Interference", "physics", maxTurns), mock
}

func TestSessionMastery(t *testing.T) {
	s, _ := newTestSession(t, 5,
		questionJSON("Why do waves interfere?"),
		evalJSON("correct", nil),
	)

	q, err := s.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingAnswer, s.State())
	assert.Equal(t, "Why do waves interfere?", q.Question)

	ev, err := s.SubmitAnswer(context.Background(), "superposition adds their amplitudes")
	require.NoError(t, err)
	assert.Equal(t, CorrectnessCorrect, ev.Correctness)
	assert.Equal(t, StateDone, s.State())
	assert.Equal(t, AssessmentMastered, s.FinalAssessment)
	assert.Nil(t, s.CurrentQuestion())
	assert.Len(t, s.Transcript, 1)
}

func TestSessionCorrectWithFollowUpIsNotMastery(t *testing.T) {
	s, _ := newTestSession(t, 5,
		questionJSON("Why do waves interfere?"),
		evalJSON("correct", strptr("And what about destructive interference?")),
	)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	_, err = s.SubmitAnswer(context.Background(), "they add up")
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingAnswer, s.State(), "a correct answer with a follow-up keeps the session open")
	require.NotNil(t, s.CurrentQuestion())
	assert.Equal(t, "And what about destructive interference?", s.CurrentQuestion().Question)
}

func TestSessionMaxTurnsEndsInProgress(t *testing.T) {
	s, _ := newTestSession(t, 1,
		questionJSON("Why do waves interfere?"),
		evalJSON("partial", strptr("What about phase?")),
	)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	ev, err := s.SubmitAnswer(context.Background(), "something vague")
	require.NoError(t, err)
	assert.Equal(t, CorrectnessPartial, ev.Correctness)
	assert.Equal(t, StateDone, s.State())
	assert.Equal(t, AssessmentInProgress, s.FinalAssessment)
}

func TestSessionEmptyAnswerDoesNotConsumeTurn(t *testing.T) {
	s, mock := newTestSession(t, 1,
		questionJSON("Why do waves interfere?"),
		evalJSON("correct", nil),
	)

	_, err := s.Start(context.Background())
	require.NoError(t, err)
	callsAfterStart := mock.CallCount()

	_, err = s.SubmitAnswer(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Equal(t, StateAwaitingAnswer, s.State())
	assert.Empty(t, s.Transcript)
	assert.Equal(t, callsAfterStart, mock.CallCount(), "no evaluation call for a blank answer")

	// The turn budget is still available for a real answer.
	_, err = s.SubmitAnswer(context.Background(), "superposition")
	require.NoError(t, err)
	assert.Equal(t, AssessmentMastered, s.FinalAssessment)
}

func TestSessionEscalatesWhenNoFollowUp(t *testing.T) {
	s, mock := newTestSession(t, 5,
		questionJSON("Why do waves interfere?"),
		evalJSON("incorrect", nil),
		questionJSON("How does path difference relate to interference?"),
	)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	_, err = s.SubmitAnswer(context.Background(), "magnets")
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingAnswer, s.State())
	require.NotNil(t, s.CurrentQuestion())
	assert.Equal(t, "How does path difference relate to interference?", s.CurrentQuestion().Question)

	// The regeneration request asked for the escalated difficulty.
	regen := mock.Calls[len(mock.Calls)-1]
	assert.Contains(t, regen.Messages[0].Content, "intermediate")
}

func TestSessionQuitMarksIncomplete(t *testing.T) {
	s, _ := newTestSession(t, 5,
		questionJSON("Why do waves interfere?"),
	)

	_, err := s.Start(context.Background())
	require.NoError(t, err)

	s.Quit()
	assert.Equal(t, StateDone, s.State())
	assert.Equal(t, AssessmentIncomplete, s.FinalAssessment)
}

func TestSessionSubmitBeforeStart(t *testing.T) {
	s, _ := newTestSession(t, 5)
	_, err := s.SubmitAnswer(context.Background(), "hello")
	assert.Error(t, err)
}
