package approval

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

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

// memLedger mimics the store's decide semantics, including the atomic
// pending-only transition.
type memLedger struct {
	mu      sync.Mutex
	entries map[string]*domain.Approval
}

func newMemLedger() *memLedger {
	return &memLedger{entries: map[string]*domain.Approval{}}
}

func (m *memLedger) CreateApproval(_ context.Context, app *domain.Approval) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *app
	m.entries[app.ID] = &cp
	return nil
}

func (m *memLedger) GetApproval(_ context.Context, id string) (*domain.Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.entries[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "approval", ID: id}
	}
	cp := *app
	return &cp, nil
}

func (m *memLedger) FindApprovals(_ context.Context, status domain.ApprovalStatus, limit int) ([]*domain.Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	out := []*domain.Approval{}
	for _, app := range m.entries {
		if status == "" || app.Status == status {
			cp := *app
			out = append(out, &cp)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memLedger) DecideApproval(_ context.Context, id string, status domain.ApprovalStatus, decidedAt time.Time) (*domain.Approval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	app, ok := m.entries[id]
	if !ok || app.Status != domain.StatusPending {
		return nil, &domain.NotFoundError{Entity: "pending approval", ID: id}
	}
	app.Status = status
	app.DecidedAt = &decidedAt
	cp := *app
	return &cp, nil
}

type fakeDispatcher struct {
	mu    sync.Mutex
	calls []string // kind names
	err   error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, kind domain.ActionKind, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, kind.Name)
	return "posted", f.err
}

func newTestService(ledger Ledger, disp *fakeDispatcher) *Service {
	return NewService(ledger, disp, domain.DefaultKinds(), nil, nopRecorder{}, nil, zap.NewNop())
}

func TestCreateStartsPending(t *testing.T) {
	svc := newTestService(newMemLedger(), &fakeDispatcher{})

	app, err := svc.Create(context.Background(), "agent-1", "post", "draft body")
	require.NoError(t, err)

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, domain.StatusPending, app.Status)
	assert.Nil(t, app.DecidedAt)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestCreateAcceptsUnknownKind(t *testing.T) {
	// Validation is deferred to decision time so no draft is dropped.
	svc := newTestService(newMemLedger(), &fakeDispatcher{})

	app, err := svc.Create(context.Background(), "agent-1", "tweet", "draft")
	require.NoError(t, err)
	assert.Equal(t, "tweet", app.Kind)
}

func TestDecideApproveDispatches(t *testing.T) {
	ledger := newMemLedger()
	disp := &fakeDispatcher{}
	svc := newTestService(ledger, disp)

	app, err := svc.Create(context.Background(), "agent-1", "post", "draft")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), app.ID, true)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)
	assert.Equal(t, []string{"post"}, disp.calls)
}

func TestDecideRejectNeverDispatches(t *testing.T) {
	ledger := newMemLedger()
	disp := &fakeDispatcher{}
	svc := newTestService(ledger, disp)

	app, err := svc.Create(context.Background(), "agent-1", "post", "draft")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), app.ID, false)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, decided.Status)
	assert.Empty(t, disp.calls)
}

func TestDecideTwiceFails(t *testing.T) {
	ledger := newMemLedger()
	svc := newTestService(ledger, &fakeDispatcher{})

	app, err := svc.Create(context.Background(), "agent-1", "post", "draft")
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), app.ID, false)
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), app.ID, true)
	require.Error(t, err)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// First decision stands.
	got, err := svc.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
}

func TestDecideUnknownID(t *testing.T) {
	svc := newTestService(newMemLedger(), &fakeDispatcher{})

	_, err := svc.Decide(context.Background(), "missing", true)

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDecideApproveUnknownKindKeepsTransition(t *testing.T) {
	ledger := newMemLedger()
	disp := &fakeDispatcher{}
	svc := newTestService(ledger, disp)

	app, err := svc.Create(context.Background(), "agent-1", "tweet", "draft")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), app.ID, true)
	require.Error(t, err)

	var unkind *domain.UnsupportedKindError
	assert.ErrorAs(t, err, &unkind)

	// The approval is recorded even though nothing could run.
	require.NotNil(t, decided)
	assert.Equal(t, domain.StatusApproved, decided.Status)
	assert.Empty(t, disp.calls)
}

func TestDecideDispatchFailureKeepsTransition(t *testing.T) {
	ledger := newMemLedger()
	disp := &fakeDispatcher{err: errors.New("script exited 1")}
	svc := newTestService(ledger, disp)

	app, err := svc.Create(context.Background(), "agent-1", "post", "draft")
	require.NoError(t, err)

	decided, err := svc.Decide(context.Background(), app.ID, true)
	require.Error(t, err)
	require.NotNil(t, decided)
	assert.Equal(t, domain.StatusApproved, decided.Status)

	// The audit trail is never rolled back.
	got, err := svc.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}
