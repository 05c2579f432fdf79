package cartola_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cartolab/cartolab/internal/adapters/cartola"
)

func TestClient(t *testing.T) {
	Convey("Given a fake Cartola API", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/mercado/status", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"rodada_atual": 12,
				"status_mercado": 1,
				"times_escalados": 500000,
				"fechamento": {"timestamp": 1756500000}
			}`))
		})
		mux.HandleFunc("/atletas/mercado", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"atletas": [
				{"atleta_id": 38509, "apelido": "Pedro", "clube_id": 262,
				 "posicao_id": 5, "status_id": 7, "preco_num": 20.5, "media_num": 6.1}
			]}`))
		})
		mux.HandleFunc("/clubes", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"262": {"id": 262, "nome_fantasia": "Flamengo", "abreviacao": "FLA"}
			}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client := cartola.NewClient(
			cartola.WithBaseURL(srv.URL),
			cartola.WithTimeout(2*time.Second),
		)
		ctx := context.Background()

		Convey("When fetching market status", func() {
			status, err := client.MarketStatus(ctx)
			So(err, ShouldBeNil)
			So(status.RodadaAtual, ShouldEqual, 12)
			So(status.Open(), ShouldBeTrue)
			So(status.TimesEscalados, ShouldEqual, 500000)
			So(status.Fechamento.Timestamp, ShouldEqual, 1756500000)
		})

		Convey("When fetching the market roster", func() {
			roster, err := client.MarketRoster(ctx)
			So(err, ShouldBeNil)
			So(roster, ShouldHaveLength, 1)
			So(roster[0].Apelido, ShouldEqual, "Pedro")
			So(roster[0].PrecoNum, ShouldEqual, 20.5)
		})

		Convey("When fetching clubs", func() {
			clubs, err := client.Clubs(ctx)
			So(err, ShouldBeNil)
			So(clubs["262"].Nome, ShouldEqual, "Flamengo")
			So(clubs["262"].Abreviacao, ShouldEqual, "FLA")
		})
	})

	Convey("Given an upstream that fails", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := cartola.NewClient(cartola.WithBaseURL(srv.URL))

		Convey("Then errors wrap the upstream sentinel", func() {
			_, err := client.MarketStatus(context.Background())
			So(errors.Is(err, cartola.ErrUpstream), ShouldBeTrue)
		})
	})
}
