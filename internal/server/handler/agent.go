package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/registry"
)

type AgentService interface {
	Register(ctx context.Context, in registry.RegisterInput) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	FindByName(ctx context.Context, name string) (*domain.Agent, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
}

// Trigger is the manual fire path; it reuses the scheduler's draft logic.
type TriggerService interface {
	TriggerNow(ctx context.Context, agent *domain.Agent) (*domain.Approval, error)
}

type AgentHandler struct {
	service AgentService
	trigger TriggerService
}

func NewAgentHandler(s AgentService, t TriggerService) *AgentHandler {
	return &AgentHandler{service: s, trigger: t}
}

func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in registry.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	agent, err := h.service.Register(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, agent)
}

func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// TriggerNow resolves the agent by name and pushes a draft into the
// approval queue, skipping the clock but never the gate.
func (h *AgentHandler) TriggerNow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	agent, err := h.service.FindByName(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	app, err := h.trigger.TriggerNow(r.Context(), agent)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, app)
}

type setEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *AgentHandler) SetEnabled(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.SetEnabled(r.Context(), id, req.Enabled); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
