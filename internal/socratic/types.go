// Package socratic generates probing questions about ingested material,
// evaluates free-form answers, and drives teaching sessions.
package socratic

// Difficulty is the question difficulty level. Sessions escalate one
// level after each completed turn that yields no follow-up.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Escalate returns the next difficulty up, capped at advanced.
func (d Difficulty) Escalate() Difficulty {
	switch d {
	case DifficultyBeginner:
		return DifficultyIntermediate
	case DifficultyIntermediate:
		return DifficultyAdvanced
	default:
		return DifficultyAdvanced
	}
}

// Correctness is the evaluator's verdict on an answer. Exactly one level
// per evaluation.
type Correctness string

const (
	CorrectnessCorrect   Correctness = "correct"
	CorrectnessPartial   Correctness = "partial"
	CorrectnessIncorrect Correctness = "incorrect"
)

// TeachingQuestion is one generated question with its pedagogy metadata.
type TeachingQuestion struct {
	Question     string `json:"question"`
	TeachingGoal string `json:"teaching_goal"`
	HintIfStuck  string `json:"hint_if_stuck"`

	// ContextUsed is the retrieved material the question was grounded on.
	// Follow-up questions reuse the originating question's context.
	ContextUsed string `json:"-"`
}

// Evaluation is the structured verdict on one answer.
type Evaluation struct {
	Correctness    Correctness `json:"correctness"`
	Strengths      []string    `json:"strengths"`
	Gaps           []string    `json:"gaps"`
	Misconceptions []string    `json:"misconceptions"`
	Feedback       string      `json:"feedback"`

	// NextQuestion is the evaluator's follow-up probe. Absent (nil) when
	// the evaluator considers the thread complete.
	NextQuestion *string `json:"next_question"`
}

// Turn is one question/answer/evaluation exchange in a session transcript.
type Turn struct {
	Question   TeachingQuestion `json:"question"`
	Answer     string           `json:"answer"`
	Evaluation Evaluation       `json:"evaluation"`
	Difficulty Difficulty       `json:"difficulty"`
}

// Assessment is the final outcome of a teaching session.
type Assessment string

const (
	AssessmentMastered   Assessment = "mastered"
	AssessmentInProgress Assessment = "in_progress"
	AssessmentIncomplete Assessment = "incomplete"
)
