// Package clean turns raw snapshot records into canonical player-round rows.
// The transformation order is fixed: club-name encoding repair, abbreviation
// expansion, numeric fill, position mapping, status mapping, type coercion.
package clean

import (
	"strconv"
	"strings"

	"github.com/cartolab/cartolab/internal/domain/roster"
)

// Transform cleans a batch of raw records into canonical rows. It is total:
// every raw value has a defined canonical form (missing or malformed numerics
// become 0, unknown position codes become the unknown category), so cleaning
// itself cannot produce partial state.
func Transform(records []roster.RawRecord) []roster.Row {
	rows := make([]roster.Row, 0, len(records))
	for i := range records {
		rows = append(rows, transformOne(&records[i]))
	}
	return rows
}

func transformOne(rec *roster.RawRecord) roster.Row {
	clube := roster.RepairClubName(rec.ClubeNome)
	clube = roster.ExpandClubAbbreviation(clube)

	statusID := toInt(rec.StatusID)

	row := roster.Row{
		Ano:      int32(rec.Ano),
		RodadaID: int32(toInt(rec.RodadaID)),
		AtletaID: toInt(rec.AtletaID),

		Apelido:   strings.TrimSpace(rec.Apelido),
		Nome:      strings.TrimSpace(rec.Nome),
		ClubeID:   int32(toInt(rec.ClubeID)),
		ClubeNome: clube,
		Posicao:   string(roster.MapPosition(rec.PosicaoID)),
		StatusID:  int32(statusID),
		Status:    string(roster.MapStatus(int(statusID))),

		PontosNum:   toFloat(rec.PontosNum),
		PrecoNum:    toFloat(rec.PrecoNum),
		VariacaoNum: toFloat(rec.VariacaoNum),
		MediaNum:    toFloat(rec.MediaNum),
		JogosNum:    toFloat(rec.JogosNum),
	}

	for _, col := range roster.ScoutColumns() {
		row.SetScout(col, toFloat(rec.Scouts[col]))
	}
	return row
}

// toFloat coerces a raw value to float64; empty or non-numeric values fill as 0.
func toFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// toInt coerces a raw value to int64 through float parsing, so values like
// "262.0" from loosely typed source files coerce the same way "262" does.
func toInt(s string) int64 {
	return int64(toFloat(s))
}
