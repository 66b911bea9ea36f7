package domain

import (
	"strings"
	"time"
)

// Credential is the single saved provider slot. A non-empty key means
// external routing is active; an empty or absent key means the local
// fallback serves all generation requests.
type Credential struct {
	Provider  string    `json:"provider"`
	APIKey    string    `json:"-"` // never serialized
	UpdatedAt time.Time `json:"updated_at"`
}

// Recognized external providers. Unknown names are stored verbatim and
// rejected at routing time, not at save time.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderLocal     = "local"
)

// NormalizeProvider maps user-entered aliases onto the closed provider set,
// case-insensitively. Anything unrecognized is returned lowercased as-is.
func NormalizeProvider(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "gemini", "google":
		return ProviderGemini
	case "openai", "gpt":
		return ProviderOpenAI
	case "claude", "anthropic":
		return ProviderAnthropic
	default:
		return strings.ToLower(strings.TrimSpace(p))
	}
}
