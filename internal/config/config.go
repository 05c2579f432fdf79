// Package config defines process configuration and loading for the pipeline
// and the dashboard API server.
//
// Conventions follow the rest of the repo: defaults come from New, Load layers
// an optional YAML file and CARTOLA_-prefixed environment variables on top,
// and external errors are wrapped via the package sentinels.
package config

import (
	"path/filepath"
)

// Artifact file names. Every stage and the dashboard read these through the
// path helpers below so the on-disk contract lives in one place.
const (
	consolidatedFileName = "dados_consolidados.parquet"
	aggregatedFileName   = "dados_agregados_por_atleta.parquet"
	statsFileName        = "estatisticas_descritivas.json"
	outliersFileName     = "outliers_pontuacao.json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the dashboard API listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RawDataPath is the root of the raw snapshots: {root}/{year}/rodada-*.csv.
	RawDataPath string `koanf:"raw_data_path"`

	// IntermediatePath holds the consolidated and aggregated parquet artifacts.
	IntermediatePath string `koanf:"intermediate_path"`

	// VisualizationPath holds stats, outlier and figure JSON artifacts.
	VisualizationPath string `koanf:"visualization_path"`

	// MaxSeasons bounds how many of the most recent season directories are read.
	MaxSeasons int `koanf:"max_seasons"`

	// RoundFilePattern is the per-round file glob inside a season directory.
	RoundFilePattern string `koanf:"round_file_pattern"`

	// MaxListLimit caps ?limit on list endpoints of the dashboard API.
	MaxListLimit int `koanf:"max_list_limit"`

	// ScatterSampleSize bounds the price-vs-points scatter figure sample.
	ScatterSampleSize int `koanf:"scatter_sample_size"`

	// CartolaBaseURL is the upstream live API base URL.
	CartolaBaseURL string `koanf:"cartola_base_url"`

	// CartolaTimeoutSec bounds each upstream API request.
	CartolaTimeoutSec int `koanf:"cartola_timeout_sec"`

	// MarketCacheTTLSec controls how long market status responses are cached.
	MarketCacheTTLSec int `koanf:"market_cache_ttl_sec"`

	// DatabaseURL is the Postgres DSN used by the historical loader.
	DatabaseURL string `koanf:"database_url"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		RawDataPath:       "dados/01_raw",
		IntermediatePath:  "dados/02_intermediate",
		VisualizationPath: "dados/03_visualizacoes",
		MaxSeasons:        4,
		RoundFilePattern:  "rodada-*.csv",
		MaxListLimit:      500,
		ScatterSampleSize: 20_000,
		CartolaBaseURL:    "https://api.cartola.globo.com",
		CartolaTimeoutSec: 10,
		MarketCacheTTLSec: 300,
	}
}

// ConsolidatedFile returns the path of the consolidated parquet artifact.
func (c *Config) ConsolidatedFile() string {
	return filepath.Join(c.IntermediatePath, consolidatedFileName)
}

// AggregatedFile returns the path of the per-player aggregate artifact.
func (c *Config) AggregatedFile() string {
	return filepath.Join(c.IntermediatePath, aggregatedFileName)
}

// StatsFile returns the path of the descriptive statistics artifact.
func (c *Config) StatsFile() string {
	return filepath.Join(c.VisualizationPath, statsFileName)
}

// OutliersFile returns the path of the outlier list artifact.
func (c *Config) OutliersFile() string {
	return filepath.Join(c.VisualizationPath, outliersFileName)
}

// FigureFile returns the path of a named figure artifact.
func (c *Config) FigureFile(name string) string {
	return filepath.Join(c.VisualizationPath, name)
}
