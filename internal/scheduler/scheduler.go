// Package scheduler runs the recurring evaluation loop: once per tick it
// tests every enabled agent's schedule against wall-clock time and fires
// due work. Daily work always drafts through the approval gate; hourly
// work runs directly only for kinds explicitly marked pre-approved.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/executor"
	"github.com/personaliz/agentd/internal/infra"
	"github.com/personaliz/agentd/internal/metrics"
	"github.com/personaliz/agentd/internal/topics"
)

// AgentSource is the store slice the scheduler reads every tick.
type AgentSource interface {
	ListScheduled(ctx context.Context) ([]*domain.Agent, error)
}

// ApprovalCreator inserts drafted work into the ledger.
type ApprovalCreator interface {
	Create(ctx context.Context, agentID, kind, draftText string) (*domain.Approval, error)
}

type Scheduler struct {
	cfg       infra.SchedulerConfig
	agents    AgentSource
	approvals ApprovalCreator
	exec      executor.Dispatcher
	kinds     domain.KindSet
	source    topics.Source
	guard     FireGuard // nil disables slot dedupe
	log       actionlog.Recorder
	logger    *zap.Logger
	metrics   *metrics.Metrics

	// now is the clock seam; tests replace it.
	now func() time.Time
}

func New(
	cfg infra.SchedulerConfig,
	agents AgentSource,
	approvals ApprovalCreator,
	exec executor.Dispatcher,
	kinds domain.KindSet,
	source topics.Source,
	guard FireGuard,
	log actionlog.Recorder,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Scheduler {
	if m == nil {
		m = metrics.New(nil)
	}
	if cfg.Tick <= 0 {
		cfg.Tick = 60 * time.Second
	}
	return &Scheduler{
		cfg:       cfg,
		agents:    agents,
		approvals: approvals,
		exec:      exec,
		kinds:     kinds,
		source:    source,
		guard:     guard,
		log:       log,
		logger:    logger.Named("scheduler"),
		metrics:   m,
		now:       time.Now,
	}
}

// Run loops until the context is canceled; nothing else stops it.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Tick)
	defer ticker.Stop()

	s.logger.Info("scheduler started", zap.Duration("tick", s.cfg.Tick))

	for {
		select {
		case <-ticker.C:
			s.Pass(ctx)
		case <-ctx.Done():
			s.logger.Info("scheduler stopping by context")
			return
		}
	}
}

// Pass performs one evaluation over all scheduled agents. The wall clock
// is snapshotted once so every agent in the pass sees the same hour and
// minute. A failure on one agent is logged and the pass continues; firing
// side effects run on their own goroutines so a slow collaborator cannot
// stall the rest of the pass.
func (s *Scheduler) Pass(ctx context.Context) {
	s.metrics.SchedulerPasses.Inc()

	now := s.now()
	hour, minute := now.Hour(), now.Minute()

	agents, err := s.agents.ListScheduled(ctx)
	if err != nil {
		s.logger.Error("pass aborted: cannot list agents", zap.Error(err))
		s.log.Error("", fmt.Sprintf("scheduler pass failed: %v", err))
		return
	}

	var wg conc.WaitGroup
	for _, agent := range agents {
		if agent.Schedule == nil {
			continue
		}
		daily, hourly := matchSchedule(*agent.Schedule)

		if daily && hour == s.cfg.DailyHour && minute == s.cfg.DailyMinute {
			a := agent
			slot := now.Format("2006-01-02")
			wg.Go(func() { s.fireDaily(ctx, a, slot) })
		}

		if hourly && minute == 0 {
			a := agent
			slot := now.Format("2006-01-02T15")
			wg.Go(func() { s.fireHourly(ctx, a, slot) })
		}
	}
	wg.Wait()
}

// fireDaily drafts content and inserts it into the approval ledger. Every
// enabled daily agent drafts; capabilities only pick which kind. Firing
// never executes a side effect directly: daily work always goes through
// the gate.
func (s *Scheduler) fireDaily(ctx context.Context, agent *domain.Agent, slot string) {
	kind, ok := s.kinds.GatedFor(agent)
	if !ok {
		// No gated kind registered at all; nothing to draft.
		return
	}

	draft := buildDraft(s.source.Trending(ctx))

	if !s.acquire(ctx, agent.ID, slot) {
		return
	}

	s.log.Info(agent.ID, fmt.Sprintf("scheduler fired daily agent %q", agent.Name))

	app, err := s.approvals.Create(ctx, agent.ID, kind.Name, draft)
	if err != nil {
		s.logger.Error("draft approval failed",
			zap.String("agent_id", agent.ID),
			zap.Error(err))
		s.log.Error(agent.ID, fmt.Sprintf("approval creation failed: %v", err))
		// Give the slot back so a later pass in the same day can draft.
		s.release(ctx, agent.ID, slot)
		return
	}

	s.metrics.SchedulerFirings.WithLabelValues("gated").Inc()
	s.log.Info(agent.ID, fmt.Sprintf("created approval id=%s", app.ID))
}

// fireHourly dispatches directly, but only for agents holding a capability
// whose kind is explicitly pre-approved. The asymmetry with fireDaily is
// policy carried on the kind, not on the agent's name.
func (s *Scheduler) fireHourly(ctx context.Context, agent *domain.Agent, slot string) {
	kind, ok := s.kinds.FirstPreApproved(agent)
	if !ok {
		return
	}
	payload := buildDraft(s.source.Trending(ctx))

	if !s.acquire(ctx, agent.ID, slot) {
		return
	}

	s.log.Info(agent.ID, fmt.Sprintf("scheduler fired hourly agent %q (pre-approved dispatch)", agent.Name))

	out, err := s.exec.Dispatch(ctx, kind, payload)
	if err != nil {
		s.logger.Error("pre-approved dispatch failed",
			zap.String("agent_id", agent.ID),
			zap.String("kind", kind.Name),
			zap.Error(err))
		s.log.Error(agent.ID, fmt.Sprintf("pre-approved dispatch failed: %v", err))
		s.release(ctx, agent.ID, slot)
		return
	}

	s.metrics.SchedulerFirings.WithLabelValues("pre_approved").Inc()
	s.log.Info(agent.ID, fmt.Sprintf("pre-approved dispatch completed: %s", out))
}

func (s *Scheduler) acquire(ctx context.Context, agentID, slot string) bool {
	if s.guard == nil {
		return true
	}
	return s.guard.TryAcquire(ctx, agentID, slot)
}

func (s *Scheduler) release(ctx context.Context, agentID, slot string) {
	if s.guard == nil {
		return
	}
	s.guard.Release(ctx, agentID, slot)
}

// TriggerNow fires an agent's draft path on demand, bypassing the time
// check but never the approval gate.
func (s *Scheduler) TriggerNow(ctx context.Context, agent *domain.Agent) (*domain.Approval, error) {
	kind, ok := s.kinds.GatedFor(agent)
	if !ok {
		return nil, &domain.ValidationError{Field: "kind", Reason: "no approval-gated kind registered"}
	}

	s.log.Info(agent.ID, fmt.Sprintf("manual trigger: drafting for agent %q", agent.Name))

	draft := buildDraft(s.source.Trending(ctx))
	app, err := s.approvals.Create(ctx, agent.ID, kind.Name, draft)
	if err != nil {
		s.log.Error(agent.ID, fmt.Sprintf("manual trigger failed: %v", err))
		return nil, err
	}
	return app, nil
}
