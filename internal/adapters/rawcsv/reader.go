package rawcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/cartolab/cartolab/internal/domain/roster"
)

// rawPrefix is the dotted-path prefix the upstream source puts on every
// player column; normalization strips it.
const rawPrefix = "atletas."

// ReadFile reads one raw round file into untyped records tagged with year.
// Content is decoded as UTF-8 first; files that are not valid UTF-8 are
// re-decoded as Latin-1, which some older seasons were exported in. Column
// types are never forced here: every field stays a string for the cleaning
// stage to coerce.
func ReadFile(path string, year int) ([]roster.RawRecord, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(b) {
		b, err = charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return nil, fmt.Errorf("decode %s as latin-1: %w", path, err)
		}
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1 // raw files disagree on column counts across seasons
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	header := normalizeHeader(rows[0])
	cols := columnIndex{
		atletaID:    indexOf(header, "atleta_id"),
		rodadaID:    indexOf(header, "rodada_id"),
		clubeID:     indexOf(header, "clube_id"),
		posicaoID:   indexOf(header, "posicao_id"),
		statusID:    indexOf(header, "status_id"),
		apelido:     indexOf(header, "apelido"),
		nome:        indexOf(header, "nome"),
		clubeNome:   indexOf(header, "clube.nome"),
		pontosNum:   indexOf(header, "pontos_num"),
		precoNum:    indexOf(header, "preco_num"),
		variacaoNum: indexOf(header, "variacao_num"),
		mediaNum:    indexOf(header, "media_num"),
		jogosNum:    indexOf(header, "jogos_num"),
		scouts:      make(map[string]int, len(roster.ScoutColumns())),
	}
	for _, scout := range roster.ScoutColumns() {
		cols.scouts[scout] = indexOf(header, scout)
	}

	fallbackRound := RoundFromFilename(path)

	records := make([]roster.RawRecord, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		records = append(records, buildRecord(rec, cols, year, fallbackRound))
	}
	return records, nil
}

type columnIndex struct {
	atletaID, rodadaID, clubeID, posicaoID, statusID     int
	apelido, nome, clubeNome                             int
	pontosNum, precoNum, variacaoNum, mediaNum, jogosNum int
	scouts                                               map[string]int
}

func buildRecord(rec []string, cols columnIndex, year, fallbackRound int) roster.RawRecord {
	out := roster.RawRecord{
		Ano:         year,
		AtletaID:    field(rec, cols.atletaID),
		RodadaID:    field(rec, cols.rodadaID),
		ClubeID:     field(rec, cols.clubeID),
		PosicaoID:   field(rec, cols.posicaoID),
		StatusID:    field(rec, cols.statusID),
		Apelido:     field(rec, cols.apelido),
		Nome:        field(rec, cols.nome),
		ClubeNome:   field(rec, cols.clubeNome),
		PontosNum:   field(rec, cols.pontosNum),
		PrecoNum:    field(rec, cols.precoNum),
		VariacaoNum: field(rec, cols.variacaoNum),
		MediaNum:    field(rec, cols.mediaNum),
		JogosNum:    field(rec, cols.jogosNum),
		Scouts:      make(map[string]string, len(cols.scouts)),
	}
	if out.RodadaID == "" && fallbackRound > 0 {
		out.RodadaID = fmt.Sprintf("%d", fallbackRound)
	}
	for scout, idx := range cols.scouts {
		out.Scouts[scout] = field(rec, idx)
	}
	return out
}

// normalizeHeader renames raw columns into the canonical scheme: the
// "atletas." prefix is stripped and the composite "id.full.name" suffix
// collapses, so "atletas.clube.id.full.name" becomes "clube.nome".
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		h = strings.TrimPrefix(h, rawPrefix)
		h = strings.ReplaceAll(h, "id.full.name", "nome")
		out[i] = h
	}
	return out
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
