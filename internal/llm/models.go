package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

type model struct {
	provider string
	alias    string // empty when the ID is used directly
	id       string
	cost     ModelCost
}

// models lists the defaults and aliases the config can pick, with prices
// from models.dev as of 2026-02.
var models = []model{
	{ProviderAnthropic, "claude-haiku", "claude-haiku-4-5-20251001", ModelCost{1, 5}},
	{ProviderAnthropic, "claude-sonnet", "claude-sonnet-4-20250514", ModelCost{3, 15}},
	{ProviderOpenAI, "gpt-4o-mini", "gpt-4o-mini", ModelCost{0.15, 0.6}},
	{ProviderOpenAI, "gpt-4o", "gpt-4o", ModelCost{2.5, 10}},
	{ProviderGemini, "gemini-flash", "gemini-2.0-flash", ModelCost{0.1, 0.4}},
	{ProviderGemini, "gemini-pro", "gemini-2.5-pro", ModelCost{1.25, 10}},
	{ProviderOpenRouter, "", "google/gemini-2.0-flash-exp", ModelCost{0, 0}},
}

func defaultModel(provider string) string {
	for _, m := range models {
		if m.provider == provider {
			if m.alias != "" {
				return m.alias
			}
			return m.id
		}
	}
	return ""
}

// resolveModel maps an alias to its model ID. Anything else is passed
// through so concrete IDs keep working.
func resolveModel(provider, name string) string {
	for _, m := range models {
		if m.provider == provider && m.alias != "" && m.alias == name {
			return m.id
		}
	}
	return name
}

// LookupCost returns pricing for the model ID a provider reported, or nil.
// Dated snapshots ("gpt-4o-mini-2024-07-18") and OpenRouter variants
// ("...:free") are priced as their base model.
func LookupCost(modelID string) *ModelCost {
	var best *model
	for i := range models {
		m := &models[i]
		if modelID == m.id {
			c := m.cost
			return &c
		}
		rest, ok := strings.CutPrefix(modelID, m.id)
		if ok && (rest[0] == '-' || rest[0] == ':') {
			if best == nil || len(m.id) > len(best.id) {
				best = m
			}
		}
	}
	if best == nil {
		return nil
	}
	c := best.cost
	return &c
}
