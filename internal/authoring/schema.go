package authoring

import "github.com/alevelmaths/alevel/internal/schema"

// DraftSchema defines the JSON schema for LLM problem drafting responses.
// Every property is required so the schema works with strict structured
// output; optional fields are returned as empty strings.
var DraftSchema = &schema.Document{
	Name:        "problem-draft",
	Description: "A batch of A-Level Mathematics practice problems with short exact answers and worked solutions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the learner, in plain text",
						},
						"latex": map[string]any{
							"type":        "string",
							"description": "Optional LaTeX for the key expression, without $ delimiters. Empty string if none.",
						},
						"hint": map[string]any{
							"type":        "string",
							"description": "A short nudge towards the method. Empty string if none.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The single canonical answer the learner must type exactly, e.g. \"4\", \"3x^2\", \"1/2\"",
						},
						"solution": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Ordered worked-solution steps",
						},
					},
					"required":             []any{"question", "latex", "hint", "answer", "solution"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}
