package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/personaliz/agentd/internal/auth"
)

type AuthService interface {
	GenerateToken(ctx context.Context, operator, password string) (*auth.TokenResponse, error)
}

type AuthHandler struct {
	service AuthService
}

func NewAuthHandler(s AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type loginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.service.GenerateToken(r.Context(), req.Operator, req.Password)
	if err != nil {
		// Always the same answer, whatever half was wrong.
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		return
	}

	writeJSON(w, http.StatusOK, token)
}
