package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"answer":   map[string]any{"type": "string", "description": "exact answer"},
						"solution": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"level":    map[string]any{"type": "string", "enum": []any{"alevel", "further"}},
					},
					"required":             []any{"answer", "solution"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{"problems"},
	}

	s := geminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"problems"}, s.Required)

	items := s.Properties["problems"].Items
	require.NotNil(t, items)
	assert.Equal(t, genai.TypeObject, items.Type)
	assert.ElementsMatch(t, []string{"answer", "solution"}, items.Required)
	assert.Equal(t, "exact answer", items.Properties["answer"].Description)
	assert.Equal(t, genai.TypeString, items.Properties["solution"].Items.Type)
	assert.Equal(t, []string{"alevel", "further"}, items.Properties["level"].Enum)
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{"type": "null"}).Type)
	assert.Equal(t, genai.TypeString, geminiSchema(map[string]any{}).Type)
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{0, KindUnavailable},
		{400, KindRejected},
		{403, KindRejected},
		{429, KindRateLimited},
		{503, KindUnavailable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusError(ProviderGemini, tt.status, nil).Kind, "status %d", tt.status)
	}
}
