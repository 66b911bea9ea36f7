package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/personaliz/agentd/internal/domain"
)

// LocalAdapter talks to an Ollama-style endpoint on the local machine. It
// serves every generation request while no external credential is saved.
type LocalAdapter struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewLocalAdapter(endpoint, model string, timeout time.Duration) *LocalAdapter {
	return &LocalAdapter{endpoint: endpoint, model: model, client: newHTTPClient(timeout)}
}

func (a *LocalAdapter) Name() string { return domain.ProviderLocal }

type localRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type localResponse struct {
	Response string `json:"response"`
}

// Generate ignores key: the local model needs none.
func (a *LocalAdapter) Generate(ctx context.Context, _, prompt string) (string, error) {
	reqBody := localRequest{Model: a.model, Prompt: prompt, Stream: false}

	body, err := postJSON(ctx, a.client, a.Name(), a.endpoint, nil, reqBody)
	if err != nil {
		return "", err
	}

	var parsed localResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &ParseError{Provider: a.Name(), Err: err, Body: Redact(string(body))}
	}

	if strings.TrimSpace(parsed.Response) == "" {
		return "", &EmptyResponseError{Provider: a.Name()}
	}
	return parsed.Response, nil
}
