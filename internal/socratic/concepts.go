package socratic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/socratic/internal/profile"
)

// ErrQuit signals the student chose to stop mid-loop.
var ErrQuit = errors.New("student quit")

// Prompter supplies student answers during a concept loop. A terminal
// implementation lives in the CLI; tests use scripted answers.
type Prompter interface {
	// Ask presents a question for a concept and returns the student's
	// answer. Return ErrQuit to halt the loop.
	Ask(concept string, q *TeachingQuestion, turn, maxTurns int) (string, error)

	// Feedback shows the evaluation of the student's answer.
	Feedback(concept string, ev *Evaluation)
}

// ConceptOutcome is the result for one concept in a loop.
type ConceptOutcome struct {
	Concept string
	Status  profile.ConceptStatus

	// Skipped is set when the concept was already learned and not taught.
	Skipped bool

	// Incomplete is set when the student quit mid-concept; no status was
	// recorded for it.
	Incomplete bool
}

// ConceptLoop teaches a topic one concept at a time and writes each
// result through to the student profile as it is decided.
type ConceptLoop struct {
	engine   *Engine
	profiles *profile.Store
	maxTurns int
}

// NewConceptLoop creates a loop with a per-concept turn budget.
// maxTurns <= 0 uses DefaultMaxTurns.
func NewConceptLoop(engine *Engine, profiles *profile.Store, maxTurns int) *ConceptLoop {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &ConceptLoop{engine: engine, profiles: profiles, maxTurns: maxTurns}
}

// Run teaches each concept in order. Already-learned concepts are
// skipped. A concept becomes learned on the first correct or partial
// answer and weak when the turn budget runs out without one. Quitting
// halts the loop immediately; statuses committed so far are retained and
// the in-flight concept is reported incomplete.
func (l *ConceptLoop) Run(ctx context.Context, topic, docName string, concepts []string, prof *profile.Profile, prompter Prompter) ([]ConceptOutcome, error) {
	outcomes := make([]ConceptOutcome, 0, len(concepts))
	tp := prof.GetTopicProgress(topic)

	for _, concept := range concepts {
		if status, ok := tp.StatusOf(concept); ok && status == profile.StatusLearned {
			outcomes = append(outcomes, ConceptOutcome{Concept: concept, Status: status, Skipped: true})
			continue
		}

		outcome, err := l.teachConcept(ctx, topic, docName, concept, prof, prompter)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				outcomes = append(outcomes, ConceptOutcome{Concept: concept, Incomplete: true})
				return outcomes, ErrQuit
			}
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// teachConcept runs the question loop for one concept and commits its
// final status to the profile.
func (l *ConceptLoop) teachConcept(ctx context.Context, topic, docName, concept string, prof *profile.Profile, prompter Prompter) (ConceptOutcome, error) {
	subject := fmt.Sprintf("%s (within %s)", concept, topic)
	difficulty := DifficultyBeginner

	q, err := l.engine.GenerateQuestion(ctx, subject, docName, difficulty, "")
	if err != nil {
		return ConceptOutcome{}, err
	}

	for turn := 1; turn <= l.maxTurns; {
		answer, err := prompter.Ask(concept, q, turn, l.maxTurns)
		if err != nil {
			return ConceptOutcome{}, err
		}
		if strings.TrimSpace(answer) == "" {
			continue
		}

		ev, err := l.engine.EvaluateAnswer(ctx, q.Question, answer, q.ContextUsed, q.TeachingGoal)
		if err != nil {
			return ConceptOutcome{}, err
		}
		prompter.Feedback(concept, ev)

		if ev.Correctness == CorrectnessCorrect || ev.Correctness == CorrectnessPartial {
			if err := l.profiles.UpdateConceptProgress(prof, topic, concept, profile.StatusLearned); err != nil {
				return ConceptOutcome{}, err
			}
			return ConceptOutcome{Concept: concept, Status: profile.StatusLearned}, nil
		}

		turn++
		if turn > l.maxTurns {
			break
		}

		if ev.NextQuestion != nil {
			q = &TeachingQuestion{
				Question:     *ev.NextQuestion,
				TeachingGoal: q.TeachingGoal,
				ContextUsed:  q.ContextUsed,
			}
		} else {
			difficulty = difficulty.Escalate()
			q, err = l.engine.GenerateQuestion(ctx, subject, docName, difficulty, q.ContextUsed)
			if err != nil {
				return ConceptOutcome{}, err
			}
		}
	}

	if err := l.profiles.UpdateConceptProgress(prof, topic, concept, profile.StatusWeak); err != nil {
		return ConceptOutcome{}, err
	}
	return ConceptOutcome{Concept: concept, Status: profile.StatusWeak}, nil
}
