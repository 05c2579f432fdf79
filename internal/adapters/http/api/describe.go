// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
)

// DescribeHandler serves the descriptive statistics document.
type DescribeHandler struct {
	deps Dependencies
}

// NewDescribeHandler creates a new descriptive statistics handler.
func NewDescribeHandler(deps Dependencies) *DescribeHandler {
	return &DescribeHandler{deps: deps}
}

// HandleGetStats handles GET /api/stats requests. The artifact is already
// JSON, so it passes through untouched.
func (h *DescribeHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_descriptive_stats"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	doc, err := h.deps.StatsDocument(r.Context())
	if err != nil {
		writeReadError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
