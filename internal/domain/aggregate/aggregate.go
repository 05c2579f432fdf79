// Package aggregate computes per-player career metrics over the consolidated
// table. The player id is the authoritative grouping key; the nickname is kept
// as a display value from the most recent observation.
package aggregate

import (
	"math"
	"sort"

	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/internal/domain/stats"
)

// PlayerAggregate is one player's performance summary across all retained
// seasons and rounds. CustoBeneficio is always finite: a zero mean price or an
// undefined ratio normalizes to 0.
type PlayerAggregate struct {
	AtletaID        int64   `parquet:"atleta_id" json:"atleta_id"`
	Apelido         string  `parquet:"apelido" json:"apelido"`
	TotalPontos     float64 `parquet:"total_pontos" json:"total_pontos"`
	MediaPontos     float64 `parquet:"media_pontos" json:"media_pontos"`
	StdPontos       float64 `parquet:"std_pontos" json:"std_pontos"`
	JogosDisputados int32   `parquet:"jogos_disputados" json:"jogos_disputados"`
	MediaPreco      float64 `parquet:"media_preco" json:"media_preco"`
	UltimoClube     string  `parquet:"ultimo_clube" json:"ultimo_clube"`
	Posicao         string  `parquet:"posicao" json:"posicao"`
	CustoBeneficio  float64 `parquet:"custo_beneficio_medio" json:"custo_beneficio_medio"`
}

type group struct {
	apelido string
	pontos  []float64
	precos  []float64
	clube   string
	posicao string
	jogos   int32
}

// Aggregate groups the consolidated table by player id, excluding coach rows,
// and computes the per-player metrics. Games played counts rounds with a
// nonzero score; the raw jogos_num counter is deliberately not used. The
// result is sorted by mean points, descending.
func Aggregate(rows []roster.Row) []PlayerAggregate {
	groups := make(map[int64]*group)
	order := make([]int64, 0)

	for i := range rows {
		row := &rows[i]
		if row.Posicao == string(roster.PositionCoach) {
			continue
		}
		g, ok := groups[row.AtletaID]
		if !ok {
			g = &group{}
			groups[row.AtletaID] = g
			order = append(order, row.AtletaID)
		}
		g.pontos = append(g.pontos, row.PontosNum)
		g.precos = append(g.precos, row.PrecoNum)
		// Most recent observation wins for display fields.
		g.apelido = row.Apelido
		g.clube = row.ClubeNome
		g.posicao = row.Posicao
		if row.PontosNum != 0 {
			g.jogos++
		}
	}

	out := make([]PlayerAggregate, 0, len(order))
	for _, id := range order {
		g := groups[id]
		mediaPontos := stats.Mean(g.pontos)
		mediaPreco := stats.Mean(g.precos)
		out = append(out, PlayerAggregate{
			AtletaID:        id,
			Apelido:         g.apelido,
			TotalPontos:     stats.Sum(g.pontos),
			MediaPontos:     mediaPontos,
			StdPontos:       stats.SampleStd(g.pontos),
			JogosDisputados: g.jogos,
			MediaPreco:      mediaPreco,
			UltimoClube:     g.clube,
			Posicao:         g.posicao,
			CustoBeneficio:  costBenefit(mediaPontos, mediaPreco),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MediaPontos != out[j].MediaPontos {
			return out[i].MediaPontos > out[j].MediaPontos
		}
		return out[i].AtletaID < out[j].AtletaID
	})
	return out
}

// costBenefit is mean points per unit of mean price, normalized so the stored
// value is always a finite real number.
func costBenefit(meanPoints, meanPrice float64) float64 {
	if meanPrice == 0 {
		return 0
	}
	ratio := meanPoints / meanPrice
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return 0
	}
	return ratio
}
