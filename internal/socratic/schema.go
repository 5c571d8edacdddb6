package socratic

import "github.com/abhisek/socratic/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "teaching-question",
	Description: "A single Socratic question probing understanding of the material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question posed to the student, answerable from the material",
			},
			"teaching_goal": map[string]any{
				"type":        "string",
				"description": "What understanding a good answer would demonstrate",
			},
			"hint_if_stuck": map[string]any{
				"type":        "string",
				"description": "A short nudge toward the answer without giving it away",
			},
		},
		"required":             []any{"question", "teaching_goal", "hint_if_stuck"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A structured assessment of a student's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correctness": map[string]any{
				"type":        "string",
				"enum":        []any{"correct", "partial", "incorrect"},
				"description": "Overall verdict on the answer. Exactly one level.",
			},
			"strengths": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    1,
				"description": "What the answer got right. Always find at least one, even for incorrect answers.",
			},
			"gaps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "What the answer missed",
			},
			"misconceptions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Things the answer got actively wrong",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Encouraging 2-3 sentence feedback spoken directly to the student",
			},
			"next_question": map[string]any{
				"type":        []any{"string", "null"},
				"description": "A single follow-up question targeting the biggest gap, or null when the student has demonstrated understanding",
			},
		},
		"required":             []any{"correctness", "strengths", "gaps", "misconceptions", "feedback", "next_question"},
		"additionalProperties": false,
	},
}
