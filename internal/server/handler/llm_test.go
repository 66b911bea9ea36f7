package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personaliz/agentd/internal/llm"
)

type stubGenerate struct {
	reply *llm.Reply
	err   error
}

func (s *stubGenerate) Generate(context.Context, string) (*llm.Reply, error) {
	return s.reply, s.err
}

func generate(t *testing.T, svc GenerateService, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewLLMHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/llm/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	return rec
}

func TestGenerateOK(t *testing.T) {
	svc := &stubGenerate{reply: &llm.Reply{Provider: "local", Text: "hello"}}

	rec := generate(t, svc, `{"prompt": "say hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var reply llm.Reply
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reply))
	assert.Equal(t, "hello", reply.Text)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	rec := generate(t, &stubGenerate{}, `{"prompt": "  "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateUpstreamFailureIsBadGateway(t *testing.T) {
	svc := &stubGenerate{err: &llm.TransportError{Provider: "gemini", Err: errors.New("dial timeout")}}

	rec := generate(t, svc, `{"prompt": "p"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGenerateErrorBodyNeverLeaksKeys(t *testing.T) {
	// Even a plain error carrying a keyed URL must leave the boundary
	// redacted.
	svc := &stubGenerate{err: errors.New(`Post "https://example.com/generate?key=AIzaSyRAWKEY77": context deadline exceeded`)}

	rec := generate(t, svc, `{"prompt": "p"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "AIzaSyRAWKEY77")
	assert.Contains(t, rec.Body.String(), "***REDACTED***")
}
