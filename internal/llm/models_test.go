package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModel(t *testing.T) {
	tests := []struct {
		provider, name, want string
	}{
		{ProviderAnthropic, "claude-haiku", "claude-haiku-4-5-20251001"},
		{ProviderGemini, "gemini-flash", "gemini-2.0-flash"},
		{ProviderGemini, "gemini-2.5-flash", "gemini-2.5-flash"},
		// Aliases belong to one provider.
		{ProviderOpenAI, "claude-haiku", "claude-haiku"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.provider, tt.name), "%s/%s", tt.provider, tt.name)
	}
}

func TestEveryDefaultModelIsPriced(t *testing.T) {
	for _, p := range discoveryOrder {
		id := resolveModel(p, defaultModel(p))
		assert.NotNil(t, LookupCost(id), "default model %s for %s", id, p)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini-2024-07-18")
	require.NotNil(t, c)
	assert.Equal(t, 0.15, c.InputPerMTok)

	c = LookupCost("gpt-4o-2024-11-20")
	require.NotNil(t, c)
	assert.Equal(t, 2.5, c.InputPerMTok)

	c = LookupCost("google/gemini-2.0-flash-exp:free")
	require.NotNil(t, c)
	assert.Zero(t, c.Cost(1000, 1000))

	assert.Nil(t, LookupCost("gpt-4"))
	assert.Nil(t, LookupCost("unknown-model"))
}

func TestModelCost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.006, c.Cost(1000, 1000), 1e-12)
}
