// Package registry manages durable agent definitions.
package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/domain"
)

// Repository is what the registry needs from the store.
type Repository interface {
	CreateAgent(ctx context.Context, a *domain.Agent) error
	ListAgents(ctx context.Context) ([]*domain.Agent, error)
	FindLatestByName(ctx context.Context, name string) (*domain.Agent, error)
	FindLatestByCapability(ctx context.Context, substr string) (*domain.Agent, error)
	SetAgentEnabled(ctx context.Context, id string, enabled bool) error
}

type Service struct {
	repo   Repository
	log    actionlog.Recorder
	logger *zap.Logger
}

func NewService(repo Repository, log actionlog.Recorder, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		logger: logger.Named("registry"),
	}
}

// RegisterInput carries a new agent definition.
type RegisterInput struct {
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Goal         string   `json:"goal"`
	Capabilities []string `json:"capabilities"`
	Schedule     *string  `json:"schedule,omitempty"`
	Sandbox      bool     `json:"sandbox"`
	Enabled      bool     `json:"enabled"`
}

// Register persists a new agent and returns it. Names are not unique:
// re-registering a name creates a newer definition that wins lookups.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Agent, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	agent := &domain.Agent{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Role:         in.Role,
		Goal:         in.Goal,
		Capabilities: in.Capabilities,
		Schedule:     in.Schedule,
		Sandbox:      in.Sandbox,
		Enabled:      in.Enabled,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateAgent(ctx, agent); err != nil {
		return nil, err
	}

	schedule := "none"
	if agent.Schedule != nil {
		schedule = *agent.Schedule
	}
	s.log.Info(agent.ID, fmt.Sprintf("agent created: schedule=%s, sandbox=%t", schedule, agent.Sandbox))
	s.logger.Info("agent registered",
		zap.String("agent_id", agent.ID),
		zap.String("name", agent.Name))

	return agent, nil
}

// List returns all agents, newest definition first.
func (s *Service) List(ctx context.Context) ([]*domain.Agent, error) {
	return s.repo.ListAgents(ctx)
}

// FindByName resolves the latest definition for a name.
func (s *Service) FindByName(ctx context.Context, name string) (*domain.Agent, error) {
	return s.repo.FindLatestByName(ctx, name)
}

// FindByCapability resolves the latest agent declaring a capability that
// contains the given substring.
func (s *Service) FindByCapability(ctx context.Context, substr string) (*domain.Agent, error) {
	return s.repo.FindLatestByCapability(ctx, substr)
}

// SetEnabled flips the soft-lifecycle flag; agents are never hard-deleted.
func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) error {
	if err := s.repo.SetAgentEnabled(ctx, id, enabled); err != nil {
		return err
	}
	s.log.Info(id, fmt.Sprintf("agent enabled=%t", enabled))
	return nil
}
