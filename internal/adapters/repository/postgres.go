package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cartolab/cartolab/internal/adapters/cartola"
	"github.com/cartolab/cartolab/internal/domain/roster"
)

const schema = `
CREATE TABLE IF NOT EXISTS clubes (
	id         INTEGER PRIMARY KEY,
	nome       TEXT NOT NULL,
	abreviacao TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jogadores (
	atleta_id    BIGINT NOT NULL,
	temporada    INTEGER NOT NULL,
	rodada_id    INTEGER NOT NULL,
	clube_id     INTEGER NOT NULL,
	posicao      TEXT NOT NULL,
	status       TEXT NOT NULL,
	pontos_num   NUMERIC(8,2) NOT NULL,
	preco_num    NUMERIC(8,2) NOT NULL,
	variacao_num NUMERIC(8,2) NOT NULL,
	media_num    NUMERIC(8,2) NOT NULL,
	jogos_num    INTEGER NOT NULL,
	apelido      TEXT NOT NULL,
	nome         TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (atleta_id, temporada, rodada_id)
);
`

// PostgresStore implements Store over a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at dsn.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the tables if absent.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertClubs inserts or updates club reference rows.
func (s *PostgresStore) UpsertClubs(ctx context.Context, clubs []cartola.Club) (int, error) {
	if len(clubs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, club := range clubs {
		batch.Queue(`
			INSERT INTO clubes (id, nome, abreviacao, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (id) DO UPDATE SET
				nome = EXCLUDED.nome,
				abreviacao = EXCLUDED.abreviacao,
				updated_at = NOW()
		`, club.ID, club.Nome, club.Abreviacao)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range clubs {
		if _, err := br.Exec(); err != nil {
			return count, fmt.Errorf("%w: clube: %v", ErrUpsert, err)
		}
		count++
	}
	return count, nil
}

// UpsertPlayerRounds inserts or updates per-round player observations.
func (s *PostgresStore) UpsertPlayerRounds(ctx context.Context, rows []roster.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for i := range rows {
		row := &rows[i]
		batch.Queue(`
			INSERT INTO jogadores (
				atleta_id, temporada, rodada_id, clube_id, posicao, status,
				pontos_num, preco_num, variacao_num, media_num, jogos_num,
				apelido, nome, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				$7, $8, $9, $10, $11,
				$12, $13, NOW()
			)
			ON CONFLICT (atleta_id, temporada, rodada_id) DO UPDATE SET
				clube_id = EXCLUDED.clube_id,
				posicao = EXCLUDED.posicao,
				status = EXCLUDED.status,
				pontos_num = EXCLUDED.pontos_num,
				preco_num = EXCLUDED.preco_num,
				variacao_num = EXCLUDED.variacao_num,
				media_num = EXCLUDED.media_num,
				jogos_num = EXCLUDED.jogos_num,
				apelido = EXCLUDED.apelido,
				nome = EXCLUDED.nome,
				updated_at = NOW()
		`,
			row.AtletaID, row.Ano, row.RodadaID, row.ClubeID, row.Posicao, row.Status,
			money(row.PontosNum), money(row.PrecoNum), money(row.VariacaoNum), money(row.MediaNum),
			int(row.JogosNum),
			row.Apelido, row.Nome,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	count := 0
	for range rows {
		if _, err := br.Exec(); err != nil {
			return count, fmt.Errorf("%w: jogador: %v", ErrUpsert, err)
		}
		count++
	}
	return count, nil
}

// PlayerRoundCount returns the number of stored player observations.
func (s *PostgresStore) PlayerRoundCount(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jogadores").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count jogadores: %w", err)
	}
	return count, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// money converts a float score or price to a fixed two-decimal value so the
// NUMERIC columns never accumulate binary float noise.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
