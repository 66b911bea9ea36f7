// Package executor invokes the external automation scripts that perform
// the actual side effects. The core treats each invocation as an opaque
// synchronous call: text payload in, captured output or error text out.
package executor

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/infra"
	"github.com/personaliz/agentd/internal/metrics"
)

// Dispatcher is the contract the approval executor and scheduler consume.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind domain.ActionKind, payload string) (string, error)
}

// ScriptRunner shells out to one automation script per kind. Outbound
// dispatches are rate limited; they are never retried — a failed side
// effect surfaces as a failure, retry policy belongs to the human.
type ScriptRunner struct {
	scriptDir string
	runtime   string
	limiter   *rate.Limiter
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

func NewScriptRunner(cfg infra.ExecutorConfig, m *metrics.Metrics, logger *zap.Logger) *ScriptRunner {
	if m == nil {
		m = metrics.New(nil)
	}
	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 1
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &ScriptRunner{
		scriptDir: cfg.ScriptDir,
		runtime:   cfg.Runtime,
		limiter:   rate.NewLimiter(rate.Limit(perSec), burst),
		logger:    logger.Named("executor"),
		metrics:   m,
	}
}

// Dispatch runs the kind's script with the payload as its single argument
// and returns the captured output with ANSI escapes stripped.
func (r *ScriptRunner) Dispatch(ctx context.Context, kind domain.ActionKind, payload string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("executor: rate limit wait: %w", err)
	}

	script := filepath.Join(r.scriptDir, kind.Script)
	start := time.Now()

	r.logger.Info("dispatching external action",
		zap.String("kind", kind.Name),
		zap.String("script", kind.Script))

	cmd := exec.CommandContext(ctx, r.runtime, script, payload)
	out, err := cmd.CombinedOutput()

	r.metrics.ExecutorDuration.WithLabelValues(kind.Name).Observe(time.Since(start).Seconds())

	text := StripANSI(out)
	if err != nil {
		if strings.TrimSpace(text) == "" {
			text = err.Error()
		}
		return "", fmt.Errorf("executor: %s failed: %s", kind.Name, strings.TrimSpace(text))
	}

	if strings.TrimSpace(text) == "" {
		text = "done"
	}
	return text, nil
}
