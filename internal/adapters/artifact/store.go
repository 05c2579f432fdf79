// Package artifact persists and loads the pipeline's on-disk contract: the
// consolidated and aggregated parquet tables and the JSON analysis artifacts.
// Every stage and the dashboard API communicate only through this store.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/cartolab/cartolab/internal/domain/aggregate"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/internal/domain/stats"
)

const (
	dirPermission  = 0o750
	filePermission = 0o600
)

// Paths names every artifact location the store manages.
type Paths struct {
	Consolidated string
	Aggregated   string
	Stats        string
	Outliers     string
	FigureDir    string
}

// Store reads and writes pipeline artifacts. Writes are whole-file replace:
// content lands in a temp file first and renames over the destination, so a
// failed stage leaves no partial artifact behind.
type Store struct {
	paths Paths
}

// New creates a Store over the given artifact paths.
func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// WriteConsolidated persists the canonical all-seasons table.
func (s *Store) WriteConsolidated(_ context.Context, rows []roster.Row) error {
	return writeParquet(s.paths.Consolidated, rows)
}

// ReadConsolidated loads the canonical table.
func (s *Store) ReadConsolidated(_ context.Context) ([]roster.Row, error) {
	return readParquet[roster.Row](s.paths.Consolidated)
}

// ReadConsolidatedNullable loads the canonical table through an all-optional
// view, letting the verification gate observe residual nulls instead of
// trusting the writer's schema.
func (s *Store) ReadConsolidatedNullable(_ context.Context) ([]NullableRow, error) {
	return readParquet[NullableRow](s.paths.Consolidated)
}

// WriteAggregates persists the per-player aggregate table.
func (s *Store) WriteAggregates(_ context.Context, aggs []aggregate.PlayerAggregate) error {
	return writeParquet(s.paths.Aggregated, aggs)
}

// ReadAggregates loads the per-player aggregate table.
func (s *Store) ReadAggregates(_ context.Context) ([]aggregate.PlayerAggregate, error) {
	return readParquet[aggregate.PlayerAggregate](s.paths.Aggregated)
}

// WriteStats persists the descriptive statistics table document.
func (s *Store) WriteStats(_ context.Context, doc TableDocument) error {
	return writeJSON(s.paths.Stats, doc)
}

// ReadStats loads the raw descriptive statistics document for serving.
func (s *Store) ReadStats(_ context.Context) (json.RawMessage, error) {
	return readRawJSON(s.paths.Stats)
}

// WriteOutliers persists the flagged outlier list. An empty set writes an
// empty JSON array, not null.
func (s *Store) WriteOutliers(_ context.Context, records []stats.OutlierRecord) error {
	if records == nil {
		records = []stats.OutlierRecord{}
	}
	return writeJSON(s.paths.Outliers, records)
}

// ReadOutliers loads the flagged outlier list.
func (s *Store) ReadOutliers(_ context.Context) ([]stats.OutlierRecord, error) {
	raw, err := readRawJSON(s.paths.Outliers)
	if err != nil {
		return nil, err
	}
	var records []stats.OutlierRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode outliers: %w", err)
	}
	return records, nil
}

// WriteFigure persists a serialized figure document under the figure dir.
func (s *Store) WriteFigure(_ context.Context, name string, doc any) error {
	return writeJSON(filepath.Join(s.paths.FigureDir, name), doc)
}

// Ages reports how old each primary artifact is, keyed by file name, for
// freshness metrics. Missing artifacts are omitted.
func (s *Store) Ages(_ context.Context) map[string]time.Duration {
	ages := make(map[string]time.Duration)
	for _, path := range []string{s.paths.Consolidated, s.paths.Aggregated, s.paths.Stats, s.paths.Outliers} {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		ages[filepath.Base(path)] = time.Since(info.ModTime())
	}
	return ages
}

func writeParquet[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(rows); err != nil {
		_ = w.Close()
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func readParquet[T any](path string) ([]T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
	}
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

func writeJSON(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermission); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	b, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, filePermission); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func readRawJSON(path string) (json.RawMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return json.RawMessage(b), nil
}
