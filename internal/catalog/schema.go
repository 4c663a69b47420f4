package catalog

import (
	"fmt"

	"github.com/alevelmaths/alevel/internal/schema"
)

// bankSchema is the JSON Schema every question bank document must satisfy.
var bankSchema = &schema.Document{
	Name:        "alevel-bank",
	Description: "A question bank of levels, topics and problems",
	Definition:  bankDefinition,
}

var bankDefinition = map[string]any{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type":    "object",
	"properties": map[string]any{
		"version": map[string]any{"type": "integer", "minimum": 1},
		"levels": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    map[string]any{"$ref": "#/$defs/level"},
		},
	},
	"required":             []any{"levels"},
	"additionalProperties": false,
	"$defs": map[string]any{
		"level": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":     map[string]any{"type": "string", "enum": []any{string(LevelALevel), string(LevelFurther)}},
				"name":   map[string]any{"type": "string"},
				"topics": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/topic"}},
			},
			"required":             []any{"id", "topics"},
			"additionalProperties": false,
		},
		"topic": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "pattern": topicIDPattern},
				"name":        map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
				"problems":    map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/problem"}},
			},
			"required":             []any{"id", "name", "problems"},
			"additionalProperties": false,
		},
		"problem": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"latex":    map[string]any{"type": "string"},
				"hint":     map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string", "minLength": 1},
				"solution": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string"},
				},
			},
			"required":             []any{"question", "answer", "solution"},
			"additionalProperties": false,
		},
	},
}

// validateBankSchema checks raw JSON against the bank schema.
func validateBankSchema(raw []byte) error {
	if err := bankSchema.Validate(raw); err != nil {
		return fmt.Errorf("bank schema validation failed: %w", err)
	}
	return nil
}
