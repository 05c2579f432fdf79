package artifact

// NullableRow is a read-only view of the consolidated table where every
// numeric and scout column is optional. The verification gate reads through
// this type so a null smuggled into the artifact shows up as a nil pointer
// rather than silently decoding to zero.
type NullableRow struct {
	Ano      int32  `parquet:"ano"`
	RodadaID int32  `parquet:"rodada_id"`
	AtletaID int64  `parquet:"atleta_id"`
	Apelido  string `parquet:"apelido"`
	Posicao  string `parquet:"posicao_id"`

	PontosNum   *float64 `parquet:"pontos_num,optional"`
	PrecoNum    *float64 `parquet:"preco_num,optional"`
	VariacaoNum *float64 `parquet:"variacao_num,optional"`
	MediaNum    *float64 `parquet:"media_num,optional"`
	JogosNum    *float64 `parquet:"jogos_num,optional"`

	A  *float64 `parquet:"A,optional"`
	CA *float64 `parquet:"CA,optional"`
	CV *float64 `parquet:"CV,optional"`
	DD *float64 `parquet:"DD,optional"`
	DP *float64 `parquet:"DP,optional"`
	DS *float64 `parquet:"DS,optional"`
	FC *float64 `parquet:"FC,optional"`
	FD *float64 `parquet:"FD,optional"`
	FF *float64 `parquet:"FF,optional"`
	FS *float64 `parquet:"FS,optional"`
	FT *float64 `parquet:"FT,optional"`
	G  *float64 `parquet:"G,optional"`
	GC *float64 `parquet:"GC,optional"`
	GS *float64 `parquet:"GS,optional"`
	I  *float64 `parquet:"I,optional"`
	PC *float64 `parquet:"PC,optional"`
	PE *float64 `parquet:"PE,optional"`
	PP *float64 `parquet:"PP,optional"`
	PS *float64 `parquet:"PS,optional"`
	RB *float64 `parquet:"RB,optional"`
	SG *float64 `parquet:"SG,optional"`
	V  *float64 `parquet:"V,optional"`
}

// NullColumns returns the names of numeric and scout columns that are null in
// this row, in column order.
func (r *NullableRow) NullColumns() []string {
	checks := []struct {
		name string
		val  *float64
	}{
		{"pontos_num", r.PontosNum},
		{"preco_num", r.PrecoNum},
		{"variacao_num", r.VariacaoNum},
		{"media_num", r.MediaNum},
		{"jogos_num", r.JogosNum},
		{"A", r.A}, {"CA", r.CA}, {"CV", r.CV}, {"DD", r.DD},
		{"DP", r.DP}, {"DS", r.DS}, {"FC", r.FC}, {"FD", r.FD},
		{"FF", r.FF}, {"FS", r.FS}, {"FT", r.FT}, {"G", r.G},
		{"GC", r.GC}, {"GS", r.GS}, {"I", r.I}, {"PC", r.PC},
		{"PE", r.PE}, {"PP", r.PP}, {"PS", r.PS}, {"RB", r.RB},
		{"SG", r.SG}, {"V", r.V},
	}

	var nulls []string
	for _, c := range checks {
		if c.val == nil {
			nulls = append(nulls, c.name)
		}
	}
	return nulls
}
