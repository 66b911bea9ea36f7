package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/personaliz/agentd/internal/domain"
)

type ApprovalService interface {
	Get(ctx context.Context, id string) (*domain.Approval, error)
	List(ctx context.Context, status domain.ApprovalStatus, limit int) ([]*domain.Approval, error)
	Decide(ctx context.Context, id string, approved bool) (*domain.Approval, error)
}

type ApprovalHandler struct {
	service ApprovalService
}

func NewApprovalHandler(s ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{service: s}
}

func (h *ApprovalHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	app, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, app)
}

func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ApprovalStatus(r.URL.Query().Get("status"))
	if status == "" {
		// The decision queue is what the operator usually wants.
		status = domain.StatusPending
	}
	if status == "all" {
		status = ""
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	list, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

type DecideRequest struct {
	Approved bool   `json:"approved"`
	Comment  string `json:"comment"`
}

// DecideResponse carries the decided entry plus the dispatch failure, if
// any. The decision itself stands even when the side effect could not run.
type DecideResponse struct {
	Approval      *domain.Approval `json:"approval"`
	DispatchError string           `json:"dispatch_error,omitempty"`
}

func (h *ApprovalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	app, err := h.service.Decide(r.Context(), id, req.Approved)
	if err != nil {
		if app == nil {
			// The transition itself failed. A missing or already-decided
			// entry reads as a conflict for the operator pressing the button.
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
				return
			}
			writeError(w, err)
			return
		}

		// Approved but not dispatched: report both halves.
		status := http.StatusBadGateway
		var unkind *domain.UnsupportedKindError
		if errors.As(err, &unkind) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, DecideResponse{Approval: app, DispatchError: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, DecideResponse{Approval: app})
}
