package seedraw

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/pkg/logger"
)

const (
	dirPermission  = 0o750
	filePermission = 0o600
)

// Run writes the configured seasons of synthetic round files.
func Run(ctx context.Context, cfg *Config) (Stats, error) {
	log := logger.Named("seedraw")
	scoutCols := roster.ScoutColumns()

	var stats Stats
	for _, year := range cfg.Seasons {
		dir := filepath.Join(cfg.OutputDir, strconv.Itoa(year))
		if err := os.MkdirAll(dir, dirPermission); err != nil {
			return stats, fmt.Errorf("create season dir: %w", err)
		}

		for round := 1; round <= cfg.Rounds; round++ {
			if err := ctx.Err(); err != nil {
				return stats, fmt.Errorf("seeding cancelled: %w", err)
			}

			content := buildFile(round, cfg.Players, scoutCols)
			if cfg.LatinRatio > 0 && randomIndex(100) < cfg.LatinRatio {
				encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
				if err == nil {
					content = encoded
				}
			}

			path := filepath.Join(dir, fmt.Sprintf("rodada-%d.csv", round))
			if err := os.WriteFile(path, []byte(content), filePermission); err != nil {
				return stats, fmt.Errorf("write %s: %w", path, err)
			}
			stats.FilesWritten++
			stats.RowsWritten += cfg.Players
		}
		log.Info(ctx, "season seeded",
			logger.Int("year", year),
			logger.Int("rounds", cfg.Rounds))
	}

	log.Info(ctx, "seeding complete",
		logger.Int("files", stats.FilesWritten),
		logger.Int("rows", stats.RowsWritten))
	return stats, nil
}

// buildFile renders one round file with the upstream's prefixed header.
func buildFile(round, players int, scoutCols []string) string {
	var b strings.Builder

	header := []string{
		"atletas.atleta_id", "atletas.rodada_id", "atletas.clube_id",
		"atletas.posicao_id", "atletas.status_id", "atletas.apelido",
		"atletas.nome", "atletas.clube.id.full.name",
		"atletas.pontos_num", "atletas.preco_num", "atletas.variacao_num",
		"atletas.media_num", "atletas.jogos_num",
	}
	header = append(header, scoutCols...)
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for i := 0; i < players; i++ {
		row := generateRow(i, round, scoutCols)
		fields := []string{
			row.atletaID, strconv.Itoa(round), row.clubeID,
			row.posicao, row.status, row.apelido,
			row.nome, row.clube,
			row.pontos, row.preco, row.variacao,
			row.media, row.jogos,
		}
		fields = append(fields, row.scouts...)
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
