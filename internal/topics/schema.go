package topics

import "github.com/abhisek/socratic/internal/llm"

// TopicMapSchema defines the JSON schema for LLM topic extraction responses.
var TopicMapSchema = &llm.Schema{
	Name:        "topic-map",
	Description: "A structured map of the major topics covered by a document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"pdf_summary": map[string]any{
				"type":        "string",
				"description": "A 2-3 sentence summary of the whole document",
			},
			"topics": map[string]any{
				"type":        "object",
				"description": "Major topics keyed by a short human-readable topic name",
				"additionalProperties": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"summary": map[string]any{
							"type":        "string",
							"description": "A 1-2 sentence summary of what this topic covers",
						},
						"key_points": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "The most important takeaways of this topic",
						},
						"concepts": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Individually teachable concepts within this topic, ordered from foundational to advanced",
						},
					},
					"required":             []any{"summary", "key_points", "concepts"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"pdf_summary", "topics"},
		"additionalProperties": false,
	},
}
