// Package settings implements the credential store contract: a single
// saved provider slot controlling LLM routing.
package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/actionlog"
	"github.com/personaliz/agentd/internal/domain"
)

// Repository is the credential slice of the store.
type Repository interface {
	SetCredential(ctx context.Context, provider, key string) error
	ClearCredential(ctx context.Context) error
	GetCredential(ctx context.Context) (*domain.Credential, error)
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
		logger: logger.Named("settings"),
	}
}

// Set normalizes the provider and saves the slot. Unrecognized providers
// are stored verbatim; the router rejects them at generation time. An
// empty or whitespace-only key is a ValidationError.
func (s *Service) Set(ctx context.Context, provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &domain.ValidationError{Field: "key", Reason: "API key must not be empty"}
	}

	normalized := domain.NormalizeProvider(provider)
	if err := s.repo.SetCredential(ctx, normalized, key); err != nil {
		return err
	}

	// Never log the key itself.
	s.log.Info("", "saved external LLM credential for provider "+normalized)
	s.logger.Info("credential saved", zap.String("provider", normalized))
	return nil
}

// Clear unconditionally blanks the slot; routing reverts to local.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.ClearCredential(ctx); err != nil {
		return err
	}
	s.log.Info("", "cleared external LLM credential")
	return nil
}

// View is the presentation of the slot: whether a key is set and which
// route generation takes, never the key material.
type View struct {
	Provider string `json:"provider"`
	KeySet   bool   `json:"key_set"`
	Router   string `json:"router"` // "external" or "local"
}

// Get reports the current slot.
func (s *Service) Get(ctx context.Context) (*View, error) {
	cred, err := s.repo.GetCredential(ctx)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return &View{Router: "local"}, nil
	}
	return &View{Provider: cred.Provider, KeySet: true, Router: "external"}, nil
}

// Credential exposes the raw slot to the router.
func (s *Service) Credential(ctx context.Context) (*domain.Credential, error) {
	return s.repo.GetCredential(ctx)
}
