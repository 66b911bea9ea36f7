package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProvider(t *testing.T) {
	cases := map[string]string{
		"gemini":    ProviderGemini,
		"Google":    ProviderGemini,
		"OPENAI":    ProviderOpenAI,
		"gpt":       ProviderOpenAI,
		"claude":    ProviderAnthropic,
		"Anthropic": ProviderAnthropic,
		" openai ":  ProviderOpenAI,
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeProvider(in), "input %q", in)
	}
}

func TestNormalizeProviderKeepsUnknownVerbatim(t *testing.T) {
	// Unknown providers are stored as-is (lowercased); the router rejects
	// them later.
	assert.Equal(t, "mistral", NormalizeProvider("Mistral"))
	assert.Equal(t, "", NormalizeProvider("  "))
}
