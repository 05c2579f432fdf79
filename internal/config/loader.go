package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CARTOLA_CONFIG is set
//  3. env (prefix CARTOLA_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CARTOLA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CARTOLA_RAW_DATA_PATH, CARTOLA_MAX_SEASONS, ...
	// Underscores are preserved so env keys match the koanf tags directly.
	envProvider := env.Provider("CARTOLA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "cartola_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.RawDataPath == "":
		return fmt.Errorf("%w: raw_data_path must not be empty", ErrInvalidConfig)
	case c.IntermediatePath == "":
		return fmt.Errorf("%w: intermediate_path must not be empty", ErrInvalidConfig)
	case c.VisualizationPath == "":
		return fmt.Errorf("%w: visualization_path must not be empty", ErrInvalidConfig)
	case c.MaxSeasons < 1:
		return fmt.Errorf("%w: max_seasons must be at least 1", ErrInvalidConfig)
	case c.RoundFilePattern == "":
		return fmt.Errorf("%w: round_file_pattern must not be empty", ErrInvalidConfig)
	case c.MaxListLimit < 1:
		return fmt.Errorf("%w: max_list_limit must be at least 1", ErrInvalidConfig)
	case c.CartolaTimeoutSec < 1:
		return fmt.Errorf("%w: cartola_timeout_sec must be at least 1", ErrInvalidConfig)
	}
	return nil
}
