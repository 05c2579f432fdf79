// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
)

// MarketHandler serves the live market status.
type MarketHandler struct {
	deps Dependencies
}

// NewMarketHandler creates a new market status handler.
func NewMarketHandler(deps Dependencies) *MarketHandler {
	return &MarketHandler{deps: deps}
}

// marketStatusResponse augments the upstream payload with the derived
// open/closed flag the dashboard actually keys on.
type marketStatusResponse struct {
	RodadaAtual    int    `json:"rodada_atual"`
	StatusMercado  int    `json:"status_mercado"`
	MercadoAberto  bool   `json:"mercado_aberto"`
	TimesEscalados int    `json:"times_escalados"`
	Fechamento     int64  `json:"fechamento_timestamp"`
	Descricao      string `json:"descricao"`
}

// HandleGetMarketStatus handles GET /api/market-status requests.
func (h *MarketHandler) HandleGetMarketStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_market_status"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	status, err := h.deps.MarketStatus(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "upstream_error", fmt.Errorf("%s: %w", op, err))
		return
	}

	desc := "Mercado fechado"
	if status.Open() {
		desc = "Mercado aberto"
	}
	writeJSON(w, http.StatusOK, marketStatusResponse{
		RodadaAtual:    status.RodadaAtual,
		StatusMercado:  status.StatusMercado,
		MercadoAberto:  status.Open(),
		TimesEscalados: status.TimesEscalados,
		Fechamento:     status.Fechamento.Timestamp,
		Descricao:      desc,
	})
}
