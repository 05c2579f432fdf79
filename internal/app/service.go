// Package service provides the core business service that implements
// the dependencies required by the dashboard HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/domain/aggregate"
	"github.com/cartolab/cartolab/internal/domain/stats"
	"github.com/cartolab/cartolab/pkg/logger"
	"github.com/cartolab/cartolab/pkg/metrics"
)

const artifactAgeInterval = time.Minute

// MarketClient fetches live market status from the upstream API.
type MarketClient interface {
	MarketStatus(ctx context.Context) (*cartola.MarketStatus, error)
}

// Service implements the dashboard API over the pipeline artifacts and the
// live market API. Artifact reads go straight to disk; market status is
// cached for a configurable TTL to spare the upstream.
type Service struct {
	mu sync.RWMutex

	store  *artifact.Store
	market MarketClient

	maxListLimit int
	cacheTTL     time.Duration

	cachedStatus    *cartola.MarketStatus
	statusFetchedAt time.Time

	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the artifact store the service reads from.
func WithStore(store *artifact.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithMarketClient sets the upstream market API client.
func WithMarketClient(client MarketClient) Option {
	return func(s *Service) {
		s.market = client
	}
}

// WithMarketCacheTTL sets how long market status responses are reused.
func WithMarketCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithMaxListLimit caps the limit of list queries.
func WithMaxListLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxListLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxListLimit: 500,
		cacheTTL:     5 * time.Minute,
		stopCh:       make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready and launches the artifact freshness updater.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.store == nil {
		return fmt.Errorf("service: no artifact store configured")
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.refreshArtifactAges(ctx)
	go s.ageLoop()

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("max_list_limit", s.maxListLimit),
		logger.Duration("market_cache_ttl", s.cacheTTL),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) ageLoop() {
	ticker := time.NewTicker(artifactAgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.refreshArtifactAges(context.Background())
		}
	}
}

func (s *Service) refreshArtifactAges(ctx context.Context) {
	for name, age := range s.store.Ages(ctx) {
		metrics.SetArtifactAge(name, age.Seconds())
	}
}

// Aggregates returns up to limit player aggregates, best mean score first.
// A non-positive limit means everything; limits above the cap are clamped.
func (s *Service) Aggregates(ctx context.Context, limit int) ([]aggregate.PlayerAggregate, error) {
	aggs, err := s.store.ReadAggregates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aggregates: %w", err)
	}
	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	if len(aggs) > limit {
		aggs = aggs[:limit]
	}
	return aggs, nil
}

// Outliers returns the flagged score outliers ordered by score. Order is
// "asc" or "desc"; anything else defaults to descending.
func (s *Service) Outliers(ctx context.Context, order string) ([]stats.OutlierRecord, error) {
	records, err := s.store.ReadOutliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load outliers: %w", err)
	}

	asc := order == "asc"
	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return records[i].Pontos < records[j].Pontos
		}
		return records[i].Pontos > records[j].Pontos
	})
	return records, nil
}

// StatsDocument returns the descriptive statistics artifact as-is for the
// dashboard table to render.
func (s *Service) StatsDocument(ctx context.Context) (json.RawMessage, error) {
	doc, err := s.store.ReadStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load descriptive stats: %w", err)
	}
	return doc, nil
}

// MarketStatus returns the live market status, served from cache while the
// cached copy is younger than the TTL.
func (s *Service) MarketStatus(ctx context.Context) (*cartola.MarketStatus, error) {
	if s.market == nil {
		return nil, fmt.Errorf("service: no market client configured")
	}

	s.mu.RLock()
	cached, fetchedAt := s.cachedStatus, s.statusFetchedAt
	s.mu.RUnlock()
	if cached != nil && time.Since(fetchedAt) < s.cacheTTL {
		return cached, nil
	}

	status, err := s.market.MarketStatus(ctx)
	if err != nil {
		// Serve a stale copy over an error if we have one.
		if cached != nil {
			s.logger.Warn(ctx, "market status refresh failed, serving cached copy",
				logger.Error(err))
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cachedStatus = status
	s.statusFetchedAt = time.Now()
	s.mu.Unlock()
	return status, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":           s.started,
		"max_list_limit":    s.maxListLimit,
		"market_cache_ttl":  s.cacheTTL.String(),
		"market_status_age": "",
	}
	if s.cachedStatus != nil {
		out["market_status_age"] = time.Since(s.statusFetchedAt).Round(time.Second).String()
	}

	if s.store != nil {
		ages := make(map[string]string)
		for name, age := range s.store.Ages(ctx) {
			ages[name] = age.Round(time.Second).String()
			metrics.SetArtifactAge(name, age.Seconds())
		}
		out["artifact_ages"] = ages
	}

	return out
}
