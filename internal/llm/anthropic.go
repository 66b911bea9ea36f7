package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/personaliz/agentd/internal/domain"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	anthropicMaxTok  = 800
)

type AnthropicAdapter struct {
	model  string
	client *http.Client
}

func NewAnthropicAdapter(model string, timeout time.Duration) *AnthropicAdapter {
	return &AnthropicAdapter{model: model, client: newHTTPClient(timeout)}
}

func (a *AnthropicAdapter) Name() string { return domain.ProviderAnthropic }

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (a *AnthropicAdapter) Generate(ctx context.Context, key, prompt string) (string, error) {
	reqBody := anthropicRequest{
		Model:     a.model,
		MaxTokens: anthropicMaxTok,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{
		"x-api-key":         key,
		"anthropic-version": anthropicVersion,
	}
	body, err := postJSON(ctx, a.client, a.Name(), anthropicURL, headers, reqBody)
	if err != nil {
		return "", err
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ParseError{Provider: a.Name(), Err: err, Body: Redact(string(body))}
	}

	for _, block := range parsed.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &EmptyResponseError{Provider: a.Name()}
}
