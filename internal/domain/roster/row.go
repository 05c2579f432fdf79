package roster

// NumericColumns lists the general numeric columns of the consolidated table,
// in artifact order. Scout counters are listed separately.
func NumericColumns() []string {
	return []string{"pontos_num", "preco_num", "variacao_num", "media_num", "jogos_num"}
}

// ScoutColumns lists the fixed set of box-score counter columns.
func ScoutColumns() []string {
	return []string{
		"A", "CA", "CV", "DD", "DP", "DS", "FC", "FD", "FF", "FS",
		"FT", "G", "GC", "GS", "I", "PC", "PE", "PP", "PS", "RB", "SG", "V",
	}
}

// RawRecord is one row as read from a raw round file, before cleaning. All
// values are kept as strings so mixed raw formats across seasons survive
// ingestion; the cleaning stage owns every type coercion.
type RawRecord struct {
	Ano int // season year, from the directory name

	AtletaID  string
	RodadaID  string
	ClubeID   string
	PosicaoID string
	StatusID  string

	Apelido   string
	Nome      string
	ClubeNome string

	PontosNum   string
	PrecoNum    string
	VariacaoNum string
	MediaNum    string
	JogosNum    string

	// Scouts holds raw scout counter values keyed by canonical column name.
	Scouts map[string]string
}

// Row is the canonical cleaned player-round row, the unit of the consolidated
// table. Numeric and scout fields are never null here; missing raw values are
// zero. Posicao always holds a canonical Position value.
type Row struct {
	Ano      int32 `parquet:"ano" json:"ano"`
	RodadaID int32 `parquet:"rodada_id" json:"rodada_id"`
	AtletaID int64 `parquet:"atleta_id" json:"atleta_id"`

	Apelido   string `parquet:"apelido" json:"apelido"`
	Nome      string `parquet:"nome" json:"nome"`
	ClubeID   int32  `parquet:"clube_id" json:"clube_id"`
	ClubeNome string `parquet:"clube_nome" json:"clube_nome"`
	Posicao   string `parquet:"posicao_id" json:"posicao_id"`
	StatusID  int32  `parquet:"status_id" json:"status_id"`
	Status    string `parquet:"status" json:"status"`

	PontosNum   float64 `parquet:"pontos_num" json:"pontos_num"`
	PrecoNum    float64 `parquet:"preco_num" json:"preco_num"`
	VariacaoNum float64 `parquet:"variacao_num" json:"variacao_num"`
	MediaNum    float64 `parquet:"media_num" json:"media_num"`
	JogosNum    float64 `parquet:"jogos_num" json:"jogos_num"`

	// Scout counters, one column per raw box-score code.
	A  float64 `parquet:"A" json:"A"`
	CA float64 `parquet:"CA" json:"CA"`
	CV float64 `parquet:"CV" json:"CV"`
	DD float64 `parquet:"DD" json:"DD"`
	DP float64 `parquet:"DP" json:"DP"`
	DS float64 `parquet:"DS" json:"DS"`
	FC float64 `parquet:"FC" json:"FC"`
	FD float64 `parquet:"FD" json:"FD"`
	FF float64 `parquet:"FF" json:"FF"`
	FS float64 `parquet:"FS" json:"FS"`
	FT float64 `parquet:"FT" json:"FT"`
	G  float64 `parquet:"G" json:"G"`
	GC float64 `parquet:"GC" json:"GC"`
	GS float64 `parquet:"GS" json:"GS"`
	I  float64 `parquet:"I" json:"I"`
	PC float64 `parquet:"PC" json:"PC"`
	PE float64 `parquet:"PE" json:"PE"`
	PP float64 `parquet:"PP" json:"PP"`
	PS float64 `parquet:"PS" json:"PS"`
	RB float64 `parquet:"RB" json:"RB"`
	SG float64 `parquet:"SG" json:"SG"`
	V  float64 `parquet:"V" json:"V"`
}

// NumericValue returns the value of a general numeric column by name.
func (r *Row) NumericValue(col string) float64 {
	switch col {
	case "pontos_num":
		return r.PontosNum
	case "preco_num":
		return r.PrecoNum
	case "variacao_num":
		return r.VariacaoNum
	case "media_num":
		return r.MediaNum
	case "jogos_num":
		return r.JogosNum
	}
	return 0
}

// ScoutValue returns the value of a scout column by name.
func (r *Row) ScoutValue(col string) float64 {
	switch col {
	case "A":
		return r.A
	case "CA":
		return r.CA
	case "CV":
		return r.CV
	case "DD":
		return r.DD
	case "DP":
		return r.DP
	case "DS":
		return r.DS
	case "FC":
		return r.FC
	case "FD":
		return r.FD
	case "FF":
		return r.FF
	case "FS":
		return r.FS
	case "FT":
		return r.FT
	case "G":
		return r.G
	case "GC":
		return r.GC
	case "GS":
		return r.GS
	case "I":
		return r.I
	case "PC":
		return r.PC
	case "PE":
		return r.PE
	case "PP":
		return r.PP
	case "PS":
		return r.PS
	case "RB":
		return r.RB
	case "SG":
		return r.SG
	case "V":
		return r.V
	}
	return 0
}

// SetScout assigns a scout column by name. Unknown names are ignored.
func (r *Row) SetScout(col string, v float64) {
	switch col {
	case "A":
		r.A = v
	case "CA":
		r.CA = v
	case "CV":
		r.CV = v
	case "DD":
		r.DD = v
	case "DP":
		r.DP = v
	case "DS":
		r.DS = v
	case "FC":
		r.FC = v
	case "FD":
		r.FD = v
	case "FF":
		r.FF = v
	case "FS":
		r.FS = v
	case "FT":
		r.FT = v
	case "G":
		r.G = v
	case "GC":
		r.GC = v
	case "GS":
		r.GS = v
	case "I":
		r.I = v
	case "PC":
		r.PC = v
	case "PE":
		r.PE = v
	case "PP":
		r.PP = v
	case "PS":
		r.PS = v
	case "RB":
		r.RB = v
	case "SG":
		r.SG = v
	case "V":
		r.V = v
	}
}
