package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/domain"
)

type nopRecorder struct{}

func (nopRecorder) Record(domain.LogEntry) {}
func (nopRecorder) Info(string, string)    {}
func (nopRecorder) Warn(string, string)    {}
func (nopRecorder) Error(string, string)   {}

type memRepo struct {
	agents []*domain.Agent
}

func (m *memRepo) CreateAgent(_ context.Context, a *domain.Agent) error {
	m.agents = append(m.agents, a)
	return nil
}

func (m *memRepo) ListAgents(context.Context) ([]*domain.Agent, error) {
	return m.agents, nil
}

func (m *memRepo) FindLatestByName(_ context.Context, name string) (*domain.Agent, error) {
	// Newest definition wins.
	for i := len(m.agents) - 1; i >= 0; i-- {
		if m.agents[i].Name == name {
			return m.agents[i], nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "agent", ID: name}
}

func (m *memRepo) FindLatestByCapability(_ context.Context, substr string) (*domain.Agent, error) {
	for i := len(m.agents) - 1; i >= 0; i-- {
		if m.agents[i].HasCapability(substr) {
			return m.agents[i], nil
		}
	}
	return nil, &domain.NotFoundError{Entity: "agent", ID: substr}
}

func (m *memRepo) SetAgentEnabled(_ context.Context, id string, enabled bool) error {
	for _, a := range m.agents {
		if a.ID == id {
			a.Enabled = enabled
			return nil
		}
	}
	return &domain.NotFoundError{Entity: "agent", ID: id}
}

func newTestService(repo *memRepo) *Service {
	return NewService(repo, nopRecorder{}, zap.NewNop())
}

func TestRegisterAssignsID(t *testing.T) {
	svc := newTestService(&memRepo{})

	agent, err := svc.Register(context.Background(), RegisterInput{
		Name:         "poster",
		Capabilities: []string{"linkedin_post"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, agent.ID)
	assert.False(t, agent.CreatedAt.IsZero())
}

func TestRegisterRejectsEmptyName(t *testing.T) {
	svc := newTestService(&memRepo{})

	_, err := svc.Register(context.Background(), RegisterInput{Name: "   "})
	require.Error(t, err)

	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestRegisterAllowsDuplicateNames(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo)

	first, err := svc.Register(context.Background(), RegisterInput{Name: "poster"})
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), RegisterInput{Name: "poster"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// Name lookup resolves the newest definition.
	got, err := svc.FindByName(context.Background(), "poster")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestSetEnabledUnknownAgent(t *testing.T) {
	svc := newTestService(&memRepo{})

	err := svc.SetEnabled(context.Background(), "ghost", true)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
