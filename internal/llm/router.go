// Package llm routes natural-language generation requests to one of
// several interchangeable providers: an external API selected by the saved
// credential, or the local model when no credential is present.
package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/infra"
	"github.com/personaliz/agentd/internal/metrics"
)

// CredentialSource is what the router needs from the credential store:
// the latest slot, read fresh on every call.
type CredentialSource interface {
	GetCredential(ctx context.Context) (*domain.Credential, error)
}

// Reply is a routed generation result, labeled with the provider that
// served it so callers can attribute the output.
type Reply struct {
	Provider string `json:"provider"`
	Text     string `json:"text"`
}

type Router struct {
	creds    CredentialSource
	external map[string]Adapter
	local    Adapter
	log      actionlog.Recorder
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewRouter wires the default adapter set from config. External adapters
// run behind circuit breakers.
func NewRouter(cfg infra.LLMConfig, creds CredentialSource, log actionlog.Recorder, m *metrics.Metrics, logger *zap.Logger) *Router {
	external := map[string]Adapter{
		domain.ProviderGemini:    WithBreaker(NewGeminiAdapter(cfg.GeminiModel, cfg.Timeout)),
		domain.ProviderOpenAI:    WithBreaker(NewOpenAIAdapter(cfg.OpenAIModel, cfg.Timeout)),
		domain.ProviderAnthropic: WithBreaker(NewAnthropicAdapter(cfg.AnthropicModel, cfg.Timeout)),
	}
	local := NewLocalAdapter(cfg.LocalEndpoint, cfg.LocalModel, cfg.Timeout)
	return newRouter(creds, external, local, log, m, logger)
}

// newRouter is the test seam: adapters are injectable.
func newRouter(creds CredentialSource, external map[string]Adapter, local Adapter, log actionlog.Recorder, m *metrics.Metrics, logger *zap.Logger) *Router {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Router{
		creds:    creds,
		external: external,
		local:    local,
		log:      log,
		logger:   logger.Named("llm-router"),
		metrics:  m,
	}
}

// Generate resolves the provider and performs one generation call.
// Credential present -> the matching external adapter; unrecognized
// provider -> UnknownProviderError, never a silent local fallback.
// Credential absent -> local adapter. No retries: one failed call is one
// reported failure.
func (r *Router) Generate(ctx context.Context, prompt string) (*Reply, error) {
	cred, err := r.creds.GetCredential(ctx)
	if err != nil {
		return nil, err
	}

	adapter := r.local
	key := ""
	if cred != nil {
		ext, ok := r.external[cred.Provider]
		if !ok {
			r.log.Error("", "llm routing failed: unknown provider "+cred.Provider)
			return nil, &domain.UnknownProviderError{Provider: cred.Provider}
		}
		adapter = ext
		key = cred.APIKey
	}

	r.logger.Info("llm routing", zap.String("provider", adapter.Name()))

	text, err := adapter.Generate(ctx, key, prompt)
	if err != nil {
		r.metrics.LLMRequests.WithLabelValues(adapter.Name(), "error").Inc()
		// Failure bodies are redacted by the adapters; safe to log as-is.
		r.log.Record(domain.LogEntry{
			Level:    domain.LevelError,
			Message:  "llm request failed: " + Redact(err.Error()),
			Provider: adapter.Name(),
			Outcome:  "error",
		})
		return nil, err
	}

	r.metrics.LLMRequests.WithLabelValues(adapter.Name(), "ok").Inc()
	r.log.Record(domain.LogEntry{
		Level:    domain.LevelInfo,
		Message:  "llm request served",
		Provider: adapter.Name(),
		Outcome:  "ok",
	})

	return &Reply{Provider: adapter.Name(), Text: text}, nil
}
