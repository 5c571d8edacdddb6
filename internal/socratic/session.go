package socratic

import (
	"context"
	"errors"
	"strings"
	"time"
)

// State is the session's position in the teaching loop.
type State string

const (
	StateAwaitingAnswer State = "AWAITING_ANSWER"
	StateEvaluating     State = "EVALUATING"
	StateDone           State = "DONE"
)

// ErrEmptyAnswer signals a blank or whitespace-only answer. The turn is
// not consumed; the caller should re-prompt.
var ErrEmptyAnswer = errors.New("empty answer")

// DefaultMaxTurns bounds a session when the caller does not choose.
const DefaultMaxTurns = 5

// Session drives one teaching conversation about a topic. Not safe for
// concurrent use; the loop is strictly ask, answer, evaluate.
type Session struct {
	Topic           string     `json:"topic"`
	DocName         string     `json:"doc_name"`
	StartedAt       time.Time  `json:"started_at"`
	Transcript      []Turn     `json:"transcript"`
	FinalAssessment Assessment `json:"final_assessment,omitempty"`

	engine     *Engine
	maxTurns   int
	difficulty Difficulty
	state      State
	current    *TeachingQuestion
}

// NewSession creates a session for topic over docName's material.
// maxTurns <= 0 uses DefaultMaxTurns.
func NewSession(engine *Engine, topic, docName string, maxTurns int) *Session {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Session{
		Topic:      topic,
		DocName:    docName,
		StartedAt:  time.Now(),
		engine:     engine,
		maxTurns:   maxTurns,
		difficulty: DifficultyBeginner,
	}
}

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// CurrentQuestion returns the question awaiting an answer, nil when the
// session has not started or is done.
func (s *Session) CurrentQuestion() *TeachingQuestion { return s.current }

// Start generates the opening question at beginner difficulty and moves
// the session to awaiting an answer.
func (s *Session) Start(ctx context.Context) (*TeachingQuestion, error) {
	if s.state != "" {
		return nil, errors.New("session already started")
	}

	q, err := s.engine.GenerateQuestion(ctx, s.Topic, s.DocName, s.difficulty, "")
	if err != nil {
		return nil, err
	}
	s.current = q
	s.state = StateAwaitingAnswer
	return q, nil
}

// SubmitAnswer evaluates the answer to the current question and advances
// the session. A blank answer returns ErrEmptyAnswer without consuming a
// turn. After a successful call the session is either awaiting the next
// question's answer or done; check State and FinalAssessment.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) (*Evaluation, error) {
	if s.state != StateAwaitingAnswer {
		return nil, errors.New("no question awaiting an answer")
	}
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	s.state = StateEvaluating
	ev, err := s.engine.EvaluateAnswer(ctx, s.current.Question, answer, s.current.ContextUsed, s.current.TeachingGoal)
	if err != nil {
		s.state = StateAwaitingAnswer
		return nil, err
	}

	s.Transcript = append(s.Transcript, Turn{
		Question:   *s.current,
		Answer:     answer,
		Evaluation: *ev,
		Difficulty: s.difficulty,
	})

	// Mastery requires a correct answer with no remaining follow-up.
	if ev.Correctness == CorrectnessCorrect && ev.NextQuestion == nil {
		s.finish(AssessmentMastered)
		return ev, nil
	}
	if len(s.Transcript) >= s.maxTurns {
		s.finish(AssessmentInProgress)
		return ev, nil
	}

	if ev.NextQuestion != nil {
		// Use the evaluator's follow-up verbatim, carrying the prior
		// question's grounding forward.
		s.current = &TeachingQuestion{
			Question:     *ev.NextQuestion,
			TeachingGoal: s.current.TeachingGoal,
			ContextUsed:  s.current.ContextUsed,
		}
	} else {
		s.difficulty = s.difficulty.Escalate()
		q, err := s.engine.GenerateQuestion(ctx, s.Topic, s.DocName, s.difficulty, s.current.ContextUsed)
		if err != nil {
			s.state = StateAwaitingAnswer
			return ev, err
		}
		s.current = q
	}
	s.state = StateAwaitingAnswer
	return ev, nil
}

// Quit ends the session early. The transcript so far is retained.
func (s *Session) Quit() {
	if s.state != StateDone {
		s.finish(AssessmentIncomplete)
	}
}

func (s *Session) finish(a Assessment) {
	s.FinalAssessment = a
	s.state = StateDone
	s.current = nil
}
