package socratic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/socratic/internal/llm"
	"github.com/abhisek/socratic/internal/retriever"
)

// questionTopK is how many chunks ground a generated question.
const questionTopK = 3

// teachingTemperature applies to both question generation and answer
// evaluation. Feedback should read like a tutor, not a grader.
const teachingTemperature = 0.7

// Engine generates questions and evaluates answers against ingested
// material.
type Engine struct {
	provider  llm.Provider
	retriever *retriever.Retriever
}

// NewEngine creates an Engine over the given provider and retriever.
func NewEngine(provider llm.Provider, r *retriever.Retriever) *Engine {
	return &Engine{provider: provider, retriever: r}
}

// GenerateQuestion produces one Socratic question about topic at the given
// difficulty. When contextText is empty the engine retrieves the top
// chunks for "Explain <topic> in detail" from docName; otherwise the
// provided context is used as-is.
func (e *Engine) GenerateQuestion(ctx context.Context, topic, docName string, difficulty Difficulty, contextText string) (*TeachingQuestion, error) {
	ctx = llm.WithStage(ctx, "question-gen")
	ctx = llm.WithDoc(ctx, docName)

	if contextText == "" {
		chunks, err := e.retriever.Retrieve(ctx, fmt.Sprintf("Explain %s in detail", topic), docName, questionTopK)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(chunks))
		for i, c := range chunks {
			parts[i] = c.Text
		}
		contextText = strings.Join(parts, "\n\n---\n\n")
	}

	req := llm.Request{
		System: questionSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuestionMessage(topic, difficulty, contextText)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   1000,
		Temperature: teachingTemperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var q TeachingQuestion
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	q.ContextUsed = contextText
	return &q, nil
}

// EvaluateAnswer judges one answer against the material and the question's
// teaching goal.
func (e *Engine) EvaluateAnswer(ctx context.Context, question, answer, contextText, teachingGoal string) (*Evaluation, error) {
	ctx = llm.WithStage(ctx, "evaluation")

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(question, answer, contextText, teachingGoal)},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   1000,
		Temperature: teachingTemperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	var ev Evaluation
	if err := json.Unmarshal(resp.Content, &ev); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &ev, nil
}
