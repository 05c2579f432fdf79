// Package repository persists historical player data to Postgres.
package repository

import (
	"context"

	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/domain/roster"
)

// Store provides write access to the historical database.
type Store interface {
	// EnsureSchema creates the clubes and jogadores tables if absent.
	EnsureSchema(ctx context.Context) error

	// UpsertClubs inserts or updates club reference rows.
	// Returns the number of rows written.
	UpsertClubs(ctx context.Context, clubs []cartola.Club) (int, error)

	// UpsertPlayerRounds inserts or updates per-round player observations.
	// Returns the number of rows written.
	UpsertPlayerRounds(ctx context.Context, rows []roster.Row) (int, error)

	// PlayerRoundCount returns the number of stored player observations.
	PlayerRoundCount(ctx context.Context) (int, error)

	// Close releases the underlying connections.
	Close()
}
