package stats

import (
	"github.com/cartolab/cartolab/internal/domain/roster"
)

// OutlierRecord is one round score flagged outside the IQR fence of its
// position group. It carries the group context needed to explain the flag.
type OutlierRecord struct {
	Apelido        string  `json:"apelido"`
	Posicao        string  `json:"posicao"`
	Pontos         float64 `json:"pontos"`
	MediaPontosPos float64 `json:"media_pontos_pos"`
	LimiteSuperior float64 `json:"limite_superior"`
	LimiteInferior float64 `json:"limite_inferior"`
	Ano            int32   `json:"ano"`
	RodadaID       int32   `json:"rodada_id"`
}

// DetectOutliers flags round scores lying outside the IQR fence of their line
// position group. Only fullbacks, defenders, midfielders and forwards are
// analyzed; fences are computed per group over all seasons at once. The full
// flagged set is returned in position-group order; consumers sort by score.
func DetectOutliers(rows []roster.Row) []OutlierRecord {
	byPosition := make(map[roster.Position][]int)
	for i := range rows {
		pos := roster.Position(rows[i].Posicao)
		byPosition[pos] = append(byPosition[pos], i)
	}

	var out []OutlierRecord
	for _, pos := range roster.LinePositions() {
		indices := byPosition[pos]
		if len(indices) == 0 {
			continue
		}
		scores := make([]float64, len(indices))
		for j, i := range indices {
			scores[j] = rows[i].PontosNum
		}
		q1 := Percentile(scores, 0.25)
		q3 := Percentile(scores, 0.75)
		lower, upper := Fences(q1, q3)
		mean := Mean(scores)

		for _, i := range indices {
			score := rows[i].PontosNum
			if score < lower || score > upper {
				out = append(out, OutlierRecord{
					Apelido:        rows[i].Apelido,
					Posicao:        string(pos),
					Pontos:         score,
					MediaPontosPos: mean,
					LimiteSuperior: upper,
					LimiteInferior: lower,
					Ano:            rows[i].Ano,
					RodadaID:       rows[i].RodadaID,
				})
			}
		}
	}
	return out
}
