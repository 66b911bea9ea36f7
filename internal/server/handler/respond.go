// Package handler holds the HTTP handlers of the command surface. Each
// handler declares the service slice it consumes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/personaliz/agentd/internal/domain"
	"github.com/personaliz/agentd/internal/llm"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Upstream LLM
// failures read as 502 so callers can tell them from our own faults.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		unknown    *domain.UnknownProviderError
		unkind     *domain.UnsupportedKindError
		httpErr    *llm.HTTPError
		transport  *llm.TransportError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &unknown):
		status = http.StatusConflict
	case errors.As(err, &unkind):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &httpErr), errors.As(err, &transport):
		status = http.StatusBadGateway
	}

	// Redaction at the boundary: no error path may leak key material.
	writeJSON(w, status, errorResponse{Error: llm.Redact(err.Error())})
}
