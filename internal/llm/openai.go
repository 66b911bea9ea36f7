package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/personaliz/agentd/internal/domain"
)

const openaiURL = "https://api.openai.com/v1/chat/completions"

type OpenAIAdapter struct {
	model  string
	client *http.Client
}

func NewOpenAIAdapter(model string, timeout time.Duration) *OpenAIAdapter {
	return &OpenAIAdapter{model: model, client: newHTTPClient(timeout)}
}

func (a *OpenAIAdapter) Name() string { return domain.ProviderOpenAI }

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *OpenAIAdapter) Generate(ctx context.Context, key, prompt string) (string, error) {
	reqBody := openaiRequest{
		Model:    a.model,
		Messages: []openaiMessage{{Role: "user", Content: prompt}},
	}

	headers := map[string]string{"Authorization": "Bearer " + key}
	body, err := postJSON(ctx, a.client, a.Name(), openaiURL, headers, reqBody)
	if err != nil {
		return "", err
	}

	var parsed openaiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ParseError{Provider: a.Name(), Err: err, Body: Redact(string(body))}
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &EmptyResponseError{Provider: a.Name()}
	}
	return parsed.Choices[0].Message.Content, nil
}
