// Package approval implements the approval ledger and its executor: the
// state machine standing between drafted actions and real side effects.
package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/executor"
	"github.com/personaliz/agentd/internal/infra"
	"github.com/personaliz/agentd/internal/metrics"
)

// Ledger is what the service needs from the store.
type Ledger interface {
	CreateApproval(ctx context.Context, app *domain.Approval) error
	GetApproval(ctx context.Context, id string) (*domain.Approval, error)
	FindApprovals(ctx context.Context, status domain.ApprovalStatus, limit int) ([]*domain.Approval, error)
	DecideApproval(ctx context.Context, id string, status domain.ApprovalStatus, decidedAt time.Time) (*domain.Approval, error)
}

// Publisher is the Redis signaling slice the service uses.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type Service struct {
	repo    Ledger
	exec    executor.Dispatcher
	kinds   domain.KindSet
	rdb     Publisher // nil disables decision signaling
	log     actionlog.Recorder
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewService(repo Ledger, exec executor.Dispatcher, kinds domain.KindSet, rdb Publisher, log actionlog.Recorder, m *metrics.Metrics, logger *zap.Logger) *Service {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Service{
		repo:    repo,
		exec:    exec,
		kinds:   kinds,
		rdb:     rdb,
		log:     log,
		logger:  logger.Named("approval"),
		metrics: m,
	}
}

// Create inserts a new pending entry. Drafts are accepted for any kind,
// even unrecognized ones: validation happens at decision time so no draft
// is silently dropped.
func (s *Service) Create(ctx context.Context, agentID, kind, draftText string) (*domain.Approval, error) {
	app := &domain.Approval{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		Kind:      kind,
		DraftText: draftText,
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateApproval(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.ApprovalsCreated.Inc()
	s.log.Info(agentID, fmt.Sprintf("draft created: approval id=%s kind=%s", app.ID, kind))
	return app, nil
}

// ListPending returns the decision queue, newest first.
func (s *Service) ListPending(ctx context.Context) ([]*domain.Approval, error) {
	return s.repo.FindApprovals(ctx, domain.StatusPending, 0)
}

// List returns entries filtered by status ("" = all), newest first.
// limit <= 0 falls back to the store default.
func (s *Service) List(ctx context.Context, status domain.ApprovalStatus, limit int) ([]*domain.Approval, error) {
	return s.repo.FindApprovals(ctx, status, limit)
}

// Get fetches one entry.
func (s *Service) Get(ctx context.Context, id string) (*domain.Approval, error) {
	return s.repo.GetApproval(ctx, id)
}

// Decide transitions a pending entry into a terminal state. On approval
// the side effect is dispatched synchronously after the transition is
// recorded: a failed dispatch never rolls the audit trail back, it is
// surfaced to the caller alongside the already-approved entry. Deciding a
// non-pending id fails with NotFoundError.
func (s *Service) Decide(ctx context.Context, id string, approved bool) (*domain.Approval, error) {
	status := domain.StatusRejected
	if approved {
		status = domain.StatusApproved
	}

	app, err := s.repo.DecideApproval(ctx, id, status, time.Now())
	if err != nil {
		return nil, err
	}

	s.metrics.ApprovalsDecided.WithLabelValues(string(status)).Inc()
	s.log.Info(app.AgentID, fmt.Sprintf("approval %s: id=%s kind=%s", status, app.ID, app.Kind))
	s.publishDecision(ctx, app)

	if !approved {
		// Rejection ends here: no dispatch, ever.
		return app, nil
	}

	kind, err := s.kinds.Lookup(app.Kind)
	if err != nil {
		// The transition stands; only the dispatch is impossible.
		s.log.Error(app.AgentID, fmt.Sprintf("approved but undispatchable: id=%s kind=%s", app.ID, app.Kind))
		return app, err
	}

	out, err := s.exec.Dispatch(ctx, kind, app.DraftText)
	if err != nil {
		s.log.Error(app.AgentID, fmt.Sprintf("dispatch failed: id=%s kind=%s: %v", app.ID, app.Kind, err))
		return app, err
	}

	s.log.Info(app.AgentID, fmt.Sprintf("dispatch completed: id=%s kind=%s: %s", app.ID, app.Kind, out))
	s.logger.Info("approved action executed",
		zap.String("approval_id", app.ID),
		zap.String("kind", app.Kind))
	return app, nil
}

// publishDecision broadcasts the decision for any listening UI or peer.
// Best effort: a signaling failure is a warning, never an error for the
// operator who just decided.
func (s *Service) publishDecision(ctx context.Context, app *domain.Approval) {
	if s.rdb == nil {
		return
	}
	payload := fmt.Sprintf("%s:%s", app.ID, app.Status)
	if err := s.rdb.Publish(ctx, infra.RedisChanApprovalDecisions, payload).Err(); err != nil {
		s.logger.Warn("decision signal delivery failed",
			zap.String("approval_id", app.ID),
			zap.Error(err))
	}
}
