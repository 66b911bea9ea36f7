package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/personaliz/agentd/internal/domain"
)

type LogReader interface {
	RecentLogs(ctx context.Context, limit int) ([]*domain.LogEntry, error)
}

type LogsHandler struct {
	reader LogReader
}

func NewLogsHandler(r LogReader) *LogsHandler {
	return &LogsHandler{reader: r}
}

func (h *LogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	entries, err := h.reader.RecentLogs(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
