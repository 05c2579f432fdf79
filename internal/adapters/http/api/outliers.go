// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
)

// OutliersHandler handles flagged score outlier requests.
type OutliersHandler struct {
	deps Dependencies
}

// NewOutliersHandler creates a new outliers handler.
func NewOutliersHandler(deps Dependencies) *OutliersHandler {
	return &OutliersHandler{deps: deps}
}

// HandleGetOutliers handles GET /api/outliers?order=asc|desc requests.
// Order defaults to descending by score.
func (h *OutliersHandler) HandleGetOutliers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_outliers"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	order := r.URL.Query().Get("order")
	switch order {
	case "", "asc", "desc":
	default:
		writeError(w, http.StatusBadRequest, "bad_order", fmt.Errorf("%s: %w", op, ErrBadRequest))
		return
	}

	records, err := h.deps.Outliers(r.Context(), order)
	if err != nil {
		writeReadError(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, records)
}
