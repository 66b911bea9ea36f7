package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// Adapter is one interchangeable generation backend: a single synchronous
// HTTP exchange, answer text out or a classified failure.
type Adapter interface {
	// Name returns the provider label attached to routed results.
	Name() string
	// Generate performs one request. key is ignored by the local adapter.
	Generate(ctx context.Context, key, prompt string) (string, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// postJSON performs the shared request/response legwork: marshal, POST,
// read, and classify transport and HTTP-status failures. The returned body
// is raw; callers redact before embedding it in errors.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, reqBody any) ([]byte, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ParseError{Provider: provider, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Provider: provider, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Provider: provider, Status: resp.StatusCode, Body: Redact(string(body))}
	}
	return body, nil
}
