package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/socratic/internal/topics"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoadCreatesEmptyProfile(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.StudentID)
	assert.NotEmpty(t, p.CreatedAt)
	assert.Empty(t, p.Topics)
}

func TestUpdateConceptProgressPersists(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load("alice")
	require.NoError(t, err)
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusLearned))
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "diffraction", StatusWeak))

	reloaded, err := s.Load("alice")
	require.NoError(t, err)
	tp := reloaded.GetTopicProgress("Waves")
	assert.Equal(t, []string{"interference"}, tp.Learned())
	assert.Equal(t, []string{"diffraction"}, tp.Weak())
	assert.False(t, tp.LastStudied.IsZero())
}

func TestConceptMovesBetweenLists(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load("bob")
	require.NoError(t, err)
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusWeak))
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusLearned))

	tp := p.GetTopicProgress("Waves")
	assert.Equal(t, []string{"interference"}, tp.Learned())
	assert.Empty(t, tp.Weak(), "a concept holds exactly one status")
}

func TestUpdateIdempotent(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load("bob")
	require.NoError(t, err)
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusLearned))
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusLearned))

	tp := p.GetTopicProgress("Waves")
	assert.Equal(t, []string{"interference"}, tp.Learned())
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Load("bob")
	require.NoError(t, err)
	assert.Error(t, s.UpdateConceptProgress(p, "Waves", "interference", ConceptStatus("mastered")))
}

func TestGetTopicProgressSentinel(t *testing.T) {
	p := &Profile{StudentID: "x", Topics: map[string]*TopicProgress{}}
	tp := p.GetTopicProgress("never")
	require.NotNil(t, tp)
	assert.Empty(t, tp.Learned())
	assert.Empty(t, tp.Weak())
}

func TestSerializedShape(t *testing.T) {
	s := newTestStore(t)
	dir := s.dir

	p, err := s.Load("carol")
	require.NoError(t, err)
	require.NoError(t, s.UpdateConceptProgress(p, "Optics", "refraction", StatusLearned))
	require.NoError(t, s.UpdateConceptProgress(p, "Optics", "lenses", StatusWeak))

	data, err := os.ReadFile(filepath.Join(dir, "carol.json"))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "carol", raw["student_id"])

	topicsRaw := raw["topics"].(map[string]any)
	optics := topicsRaw["Optics"].(map[string]any)
	assert.Equal(t, []any{"refraction"}, optics["concepts_learned"])
	assert.Equal(t, []any{"lenses"}, optics["concepts_weak"])
	assert.NotEmpty(t, optics["last_studied"])
}

func TestMasteryFractionPrefersTopicMap(t *testing.T) {
	tp := &TopicProgress{}
	tp.set("a", StatusLearned)
	tp.set("b", StatusWeak)

	tm := &topics.TopicMap{Topics: map[string]topics.Topic{
		"Optics": {Concepts: []string{"a", "b", "c", "d"}},
	}}

	learned, total, fraction := masteryFraction(tp, tm, "Optics")
	assert.Equal(t, 1, learned)
	assert.Equal(t, 4, total)
	assert.InDelta(t, 0.25, fraction, 1e-9)

	// Unknown to the topic map: falls back to learned+weak.
	learned, total, fraction = masteryFraction(tp, tm, "Mystery")
	assert.Equal(t, 1, learned)
	assert.Equal(t, 2, total)
	assert.InDelta(t, 0.5, fraction, 1e-9)
}

func TestRenderIncludesBars(t *testing.T) {
	s := newTestStore(t)
	p, err := s.Load("dave")
	require.NoError(t, err)
	require.NoError(t, s.UpdateConceptProgress(p, "Waves", "interference", StatusLearned))

	out := Render(p, nil)
	assert.Contains(t, out, "dave")
	assert.Contains(t, out, "Waves")
	assert.Contains(t, out, "interference")
}
