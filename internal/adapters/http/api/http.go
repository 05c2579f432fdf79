// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/domain/aggregate"
	"github.com/cartolab/cartolab/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Aggregates returns up to limit per-player aggregates, best first.
	Aggregates(ctx context.Context, limit int) ([]aggregate.PlayerAggregate, error)

	// Outliers returns flagged score outliers ordered by score.
	Outliers(ctx context.Context, order string) ([]stats.OutlierRecord, error)

	// StatsDocument returns the raw descriptive statistics document.
	StatsDocument(ctx context.Context) (json.RawMessage, error)

	// MarketStatus returns the current live market status.
	MarketStatus(ctx context.Context) (*cartola.MarketStatus, error)
}

// Server wires HTTP routes for the dashboard API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	aggregatesHandler *AggregatesHandler
	outliersHandler   *OutliersHandler
	describeHandler   *DescribeHandler
	marketHandler     *MarketHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		aggregatesHandler: NewAggregatesHandler(deps, maxLimit),
		outliersHandler:   NewOutliersHandler(deps),
		describeHandler:   NewDescribeHandler(deps),
		marketHandler:     NewMarketHandler(deps),
		dashboardHandler:  newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/aggregates", MetricsMiddleware(s.aggregatesHandler.HandleGetAggregates, "aggregates"))
	mux.HandleFunc("/api/outliers", MetricsMiddleware(s.outliersHandler.HandleGetOutliers, "outliers"))
	mux.HandleFunc("/api/stats", MetricsMiddleware(s.describeHandler.HandleGetStats, "descriptive_stats"))
	mux.HandleFunc("/api/market-status", MetricsMiddleware(s.marketHandler.HandleGetMarketStatus, "market_status"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeReadError maps artifact-read failures: a missing artifact means the
// pipeline has not produced data yet, which is 503, not 500.
func writeReadError(w http.ResponseWriter, err error) {
	if errors.Is(err, artifact.ErrArtifactMissing) {
		writeError(w, http.StatusServiceUnavailable, "artifacts_unavailable", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
