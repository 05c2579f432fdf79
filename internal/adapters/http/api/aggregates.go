// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// AggregatesHandler handles per-player aggregate requests.
type AggregatesHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewAggregatesHandler creates a new aggregates handler.
func NewAggregatesHandler(deps Dependencies, maxLimit int) *AggregatesHandler {
	return &AggregatesHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetAggregates handles GET /api/aggregates?limit=N requests.
// Omitting limit returns up to the configured maximum.
func (h *AggregatesHandler) HandleGetAggregates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_aggregates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%s: %w", op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", fmt.Errorf("%s: %w", op, ErrBadRequest))
			return
		}
		limit = n
	}

	aggs, err := h.deps.Aggregates(r.Context(), limit)
	if err != nil {
		writeReadError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, aggs)
}
