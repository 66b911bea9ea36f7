package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/personaliz/agentd/internal/domain"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type GeminiAdapter struct {
	model  string
	client *http.Client
}

func NewGeminiAdapter(model string, timeout time.Duration) *GeminiAdapter {
	return &GeminiAdapter{model: model, client: newHTTPClient(timeout)}
}

func (a *GeminiAdapter) Name() string { return domain.ProviderGemini }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (a *GeminiAdapter) Generate(ctx context.Context, key, prompt string) (string, error) {
	// The API key travels as a query parameter.
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, a.model, url.QueryEscape(key))

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}

	body, err := postJSON(ctx, a.client, a.Name(), endpoint, nil, reqBody)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ParseError{Provider: a.Name(), Err: err, Body: Redact(string(body))}
	}
	if parsed.Error != nil {
		return "", &HTTPError{Provider: a.Name(), Status: http.StatusOK, Body: Redact(parsed.Error.Message)}
	}

	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", &EmptyResponseError{Provider: a.Name()}
}
