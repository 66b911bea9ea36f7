package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/personaliz/agentd/internal/llm"
)

type GenerateService interface {
	Generate(ctx context.Context, prompt string) (*llm.Reply, error)
}

type LLMHandler struct {
	service GenerateService
}

func NewLLMHandler(s GenerateService) *LLMHandler {
	return &LLMHandler{service: s}
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (h *LLMHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "prompt must not be empty"})
		return
	}

	reply, err := h.service.Generate(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}
