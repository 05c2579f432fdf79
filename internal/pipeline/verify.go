package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/pkg/logger"
)

// VerifyStage re-loads the consolidated artifact and asserts the data
// quality invariants every downstream numeric stage depends on: no residual
// nulls in numeric or scout columns, a closed position vocabulary, and a
// unique (ano, rodada_id, atleta_id) key per row. Any violation halts the
// pipeline.
type VerifyStage struct {
	store *artifact.Store
	log   logger.Logger
}

// NewVerifyStage creates the verification gate.
func NewVerifyStage(store *artifact.Store) *VerifyStage {
	return &VerifyStage{store: store, log: logger.Named("verify")}
}

// Name implements Stage.
func (s *VerifyStage) Name() string { return "verify" }

// Run implements Stage.
func (s *VerifyStage) Run(ctx context.Context) (Result, error) {
	rows, err := s.store.ReadConsolidatedNullable(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptyTable
	}

	type rowKey struct {
		ano    int32
		rodada int32
		atleta int64
	}

	nullCols := make(map[string]struct{})
	badPositions := make(map[string]struct{})
	seen := make(map[rowKey]struct{}, len(rows))
	duplicates := 0
	for i := range rows {
		for _, col := range rows[i].NullColumns() {
			nullCols[col] = struct{}{}
		}
		if !roster.ValidPosition(rows[i].Posicao) {
			badPositions[rows[i].Posicao] = struct{}{}
		}
		key := rowKey{rows[i].Ano, rows[i].RodadaID, rows[i].AtletaID}
		if _, dup := seen[key]; dup {
			duplicates++
		}
		seen[key] = struct{}{}
	}

	if len(nullCols) > 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrNullValues, sortedKeys(nullCols))
	}
	s.log.Info(ctx, "no null values in numeric and scout columns")

	if len(badPositions) > 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrUnknownPositions, sortedKeys(badPositions))
	}
	s.log.Info(ctx, "position categories validated")

	if duplicates > 0 {
		return Result{}, fmt.Errorf("%w: %d rows", ErrDuplicateRows, duplicates)
	}
	s.log.Info(ctx, "player-round keys are unique")

	return Result{Rows: len(rows)}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
