package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/personaliz/agentd/internal/settings"
)

type SettingsService interface {
	Set(ctx context.Context, provider, key string) error
	Clear(ctx context.Context) error
	Get(ctx context.Context) (*settings.View, error)
}

type SettingsHandler struct {
	service SettingsService
}

func NewSettingsHandler(s SettingsService) *SettingsHandler {
	return &SettingsHandler{service: s}
}

type credentialRequest struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

func (h *SettingsHandler) PutCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.service.Set(r.Context(), req.Provider, req.Key); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
