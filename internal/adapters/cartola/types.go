package cartola

// MarketStatus mirrors GET /mercado/status.
type MarketStatus struct {
	RodadaAtual    int        `json:"rodada_atual"`
	StatusMercado  int        `json:"status_mercado"`
	TimesEscalados int        `json:"times_escalados"`
	Fechamento     Fechamento `json:"fechamento"`
}

// Fechamento is the market closing time inside MarketStatus.
type Fechamento struct {
	Timestamp int64 `json:"timestamp"`
}

// Market status codes used by the upstream API.
const (
	MarketOpen   = 1
	MarketClosed = 2
)

// Open reports whether rosters can currently be changed.
func (s *MarketStatus) Open() bool {
	return s.StatusMercado == MarketOpen
}

// Club mirrors one entry of GET /clubes.
type Club struct {
	ID         int    `json:"id"`
	Nome       string `json:"nome_fantasia"`
	Abreviacao string `json:"abreviacao"`
}

// MarketAthlete mirrors one entry of GET /atletas/mercado.
type MarketAthlete struct {
	AtletaID  int64   `json:"atleta_id"`
	Apelido   string  `json:"apelido"`
	ClubeID   int     `json:"clube_id"`
	PosicaoID int     `json:"posicao_id"`
	StatusID  int     `json:"status_id"`
	PrecoNum  float64 `json:"preco_num"`
	MediaNum  float64 `json:"media_num"`
}
