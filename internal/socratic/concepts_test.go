package socratic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/profile"
)

// scriptedPrompter answers from a fixed list and quits when it runs out
// of script if quitAtEnd is set.
type scriptedPrompter struct {
	answers   []string
	quitAfter int // quit on the Nth Ask call; 0 means never
	asks      int
	feedbacks []Correctness
}

func (p *scriptedPrompter) Ask(_ string, _ *TeachingQuestion, _, _ int) (string, error) {
	p.asks++
	if p.quitAfter > 0 && p.asks >= p.quitAfter {
		return "", ErrQuit
	}
	if len(p.answers) == 0 {
		return "", ErrQuit
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompter) Feedback(_ string, ev *Evaluation) {
	p.feedbacks = append(p.feedbacks, ev.Correctness)
}

func newConceptLoop(t *testing.T, maxTurns int, responses ...llm.MockResponse) (*ConceptLoop, *profile.Store, *profile.Profile) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	engine := NewEngine(mock, newTestRetriever(t))

	profiles, err := profile.NewStore(t.TempDir())
	require.NoError(t, err)
	prof, err := profiles.Load("student")
	require.NoError(t, err)

	return NewConceptLoop(engine, profiles, maxTurns), profiles, prof
}

func TestConceptLoopLearnsOnPartial(t *testing.T) {
	loop, profiles, prof := newConceptLoop(t, 3,
		questionJSON("What is superposition?"),
		evalJSON("partial", strptr("go deeper")),
	)

	outcomes, err := loop.Run(context.Background(), "Waves", "physics",
		[]string{"superposition"}, prof, &scriptedPrompter{answers: []string{"waves add"}})
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, profile.StatusLearned, outcomes[0].Status)
	assert.False(t, outcomes[0].Skipped)

	// Write-through: the status survives a reload.
	reloaded, err := profiles.Load("student")
	require.NoError(t, err)
	assert.Equal(t, []string{"superposition"}, reloaded.GetTopicProgress("Waves").Learned())
}

func TestConceptLoopWeakOnBudgetExhaustion(t *testing.T) {
	loop, _, prof := newConceptLoop(t, 2,
		questionJSON("What is superposition?"),
		evalJSON("incorrect", strptr("try again")),
		evalJSON("incorrect", nil),
	)

	outcomes, err := loop.Run(context.Background(), "Waves", "physics",
		[]string{"superposition"}, prof, &scriptedPrompter{answers: []string{"magnets", "still magnets"}})
	require.NoError(t, err)

	require.Len(t, outcomes, 1)
	assert.Equal(t, profile.StatusWeak, outcomes[0].Status)
	assert.Equal(t, []string{"superposition"}, prof.GetTopicProgress("Waves").Weak())
}

func TestConceptLoopSkipsLearned(t *testing.T) {
	loop, profiles, prof := newConceptLoop(t, 3,
		questionJSON("What is diffraction?"),
		evalJSON("correct", nil),
	)
	require.NoError(t, profiles.UpdateConceptProgress(prof, "Waves", "superposition", profile.StatusLearned))

	outcomes, err := loop.Run(context.Background(), "Waves", "physics",
		[]string{"superposition", "diffraction"}, prof, &scriptedPrompter{answers: []string{"bending around edges"}})
	require.NoError(t, err)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Skipped)
	assert.Equal(t, profile.StatusLearned, outcomes[1].Status)
}

func TestConceptLoopQuitHaltsAndRetainsCommits(t *testing.T) {
	loop, profiles, prof := newConceptLoop(t, 3,
		questionJSON("What is superposition?"),
		evalJSON("correct", nil),
		questionJSON("What is diffraction?"),
	)

	prompter := &scriptedPrompter{answers: []string{"waves add"}, quitAfter: 2}
	outcomes, err := loop.Run(context.Background(), "Waves", "physics",
		[]string{"superposition", "diffraction"}, prof, prompter)

	assert.ErrorIs(t, err, ErrQuit)
	require.Len(t, outcomes, 2)
	assert.Equal(t, profile.StatusLearned, outcomes[0].Status)
	assert.True(t, outcomes[1].Incomplete)

	// The first concept's commit survived the quit.
	reloaded, err := profiles.Load("student")
	require.NoError(t, err)
	assert.Equal(t, []string{"superposition"}, reloaded.GetTopicProgress("Waves").Learned())
	assert.Empty(t, reloaded.GetTopicProgress("Waves").Weak())
}

func TestConceptLoopEmptyAnswerDoesNotConsumeTurn(t *testing.T) {
	loop, _, prof := newConceptLoop(t, 1,
		questionJSON("What is superposition?"),
		evalJSON("correct", nil),
	)

	prompter := &scriptedPrompter{answers: []string{"  ", "waves add"}}
	outcomes, err := loop.Run(context.Background(), "Waves", "physics",
		[]string{"superposition"}, prof, prompter)
	require.NoError(t, err)
	assert.Equal(t, profile.StatusLearned, outcomes[0].Status)
}
