package pipeline

import (
	"context"
	"fmt"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/pkg/logger"
)

const (
	boxplotFigure = "boxplot_pontos_posicao.json"
	scatterFigure = "scatter_preco_pontos.json"
)

// figure is a serialized chart document consumed by the dashboard front end.
type figure struct {
	Title  string  `json:"title"`
	Traces []trace `json:"traces"`
}

// trace is one series of a figure.
type trace struct {
	Type string    `json:"type"`
	Name string    `json:"name,omitempty"`
	X    []float64 `json:"x,omitempty"`
	Y    []float64 `json:"y"`
	Text []string  `json:"text,omitempty"`
}

// ChartsStage renders the exploratory figures: a boxplot of scores per
// position and a price-versus-score scatter over players who actually scored.
type ChartsStage struct {
	store      *artifact.Store
	sampleSize int
	log        logger.Logger
}

// NewChartsStage creates the exploration stage. sampleSize caps the number of
// scatter points; larger inputs are downsampled deterministically.
func NewChartsStage(store *artifact.Store, sampleSize int) *ChartsStage {
	return &ChartsStage{store: store, sampleSize: sampleSize, log: logger.Named("charts")}
}

// Name implements Stage.
func (s *ChartsStage) Name() string { return "charts" }

// Run implements Stage.
func (s *ChartsStage) Run(ctx context.Context) (Result, error) {
	rows, err := s.store.ReadConsolidated(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrEmptyTable
	}

	if err := s.store.WriteFigure(ctx, boxplotFigure, boxplotByPosition(rows)); err != nil {
		return Result{}, fmt.Errorf("write boxplot figure: %w", err)
	}

	scored := scoredRows(rows)
	if len(scored) == 0 {
		s.log.Warn(ctx, "no rows with positive score, skipping scatter figure")
		return Result{Rows: len(rows)}, nil
	}
	sampled := sampleRows(scored, s.sampleSize)
	if err := s.store.WriteFigure(ctx, scatterFigure, priceScatter(sampled)); err != nil {
		return Result{}, fmt.Errorf("write scatter figure: %w", err)
	}
	s.log.Info(ctx, "figures written",
		logger.Int("scatter_points", len(sampled)),
		logger.Int("scored_rows", len(scored)))

	return Result{Rows: len(rows)}, nil
}

// boxplotByPosition builds one box trace per position, in the canonical
// position order, skipping positions with no observations.
func boxplotByPosition(rows []roster.Row) figure {
	byPosition := make(map[string][]float64)
	for i := range rows {
		byPosition[rows[i].Posicao] = append(byPosition[rows[i].Posicao], rows[i].PontosNum)
	}

	fig := figure{Title: "Distribuição de pontos por posição"}
	for _, pos := range roster.Positions() {
		scores, ok := byPosition[string(pos)]
		if !ok {
			continue
		}
		fig.Traces = append(fig.Traces, trace{
			Type: "box",
			Name: string(pos),
			Y:    scores,
		})
	}
	return fig
}

// scoredRows filters to observations with a positive score, the population
// relevant for the price-versus-score view.
func scoredRows(rows []roster.Row) []roster.Row {
	out := make([]roster.Row, 0, len(rows))
	for i := range rows {
		if rows[i].PontosNum > 0 {
			out = append(out, rows[i])
		}
	}
	return out
}

// sampleRows downsamples with a fixed stride so repeated runs over the same
// input produce the same figure.
func sampleRows(rows []roster.Row, limit int) []roster.Row {
	if limit <= 0 || len(rows) <= limit {
		return rows
	}
	stride := (len(rows) + limit - 1) / limit
	out := make([]roster.Row, 0, limit)
	for i := 0; i < len(rows) && len(out) < limit; i += stride {
		out = append(out, rows[i])
	}
	return out
}

func priceScatter(rows []roster.Row) figure {
	tr := trace{
		Type: "scatter",
		Name: "preço x pontos",
		X:    make([]float64, len(rows)),
		Y:    make([]float64, len(rows)),
		Text: make([]string, len(rows)),
	}
	for i := range rows {
		tr.X[i] = rows[i].PrecoNum
		tr.Y[i] = rows[i].PontosNum
		tr.Text[i] = rows[i].Apelido
	}
	return figure{
		Title:  "Preço versus pontuação",
		Traces: []trace{tr},
	}
}
