package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/adapters/cartola"
	service "github.com/cartolab/cartolab/internal/app"
	"github.com/cartolab/cartolab/internal/domain/aggregate"
	"github.com/cartolab/cartolab/internal/domain/stats"
	"github.com/cartolab/cartolab/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

type fakeMarket struct {
	status *cartola.MarketStatus
	err    error
	calls  int
}

func (f *fakeMarket) MarketStatus(context.Context) (*cartola.MarketStatus, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.status, nil
}

func newStore(t *testing.T) *artifact.Store {
	t.Helper()
	base := t.TempDir()
	return artifact.New(artifact.Paths{
		Consolidated: filepath.Join(base, "dados_consolidados.parquet"),
		Aggregated:   filepath.Join(base, "dados_agregados_por_atleta.parquet"),
		Stats:        filepath.Join(base, "estatisticas_descritivas.json"),
		Outliers:     filepath.Join(base, "outliers_pontuacao.json"),
		FigureDir:    base,
	})
}

func TestAggregates(t *testing.T) {
	Convey("Given a service over three stored aggregates", t, func() {
		store := newStore(t)
		ctx := context.Background()
		So(store.WriteAggregates(ctx, []aggregate.PlayerAggregate{
			{AtletaID: 1, Apelido: "Um", MediaPontos: 9},
			{AtletaID: 2, Apelido: "Dois", MediaPontos: 7},
			{AtletaID: 3, Apelido: "Tres", MediaPontos: 5},
		}), ShouldBeNil)

		svc := service.New(
			service.WithStore(store),
			service.WithMaxListLimit(2),
			service.WithLogger(logger.Get()),
		)

		Convey("A limit within the cap is honored", func() {
			aggs, err := svc.Aggregates(ctx, 1)
			So(err, ShouldBeNil)
			So(aggs, ShouldHaveLength, 1)
			So(aggs[0].Apelido, ShouldEqual, "Um")
		})

		Convey("A non-positive or oversized limit clamps to the cap", func() {
			for _, limit := range []int{0, -1, 50} {
				aggs, err := svc.Aggregates(ctx, limit)
				So(err, ShouldBeNil)
				So(aggs, ShouldHaveLength, 2)
			}
		})

		Convey("A missing artifact surfaces the sentinel", func() {
			empty := service.New(
				service.WithStore(newStore(t)),
				service.WithLogger(logger.Get()),
			)
			_, err := empty.Aggregates(ctx, 1)
			So(errors.Is(err, artifact.ErrArtifactMissing), ShouldBeTrue)
		})
	})
}

func TestOutliers(t *testing.T) {
	Convey("Given a service over stored outliers", t, func() {
		store := newStore(t)
		ctx := context.Background()
		So(store.WriteOutliers(ctx, []stats.OutlierRecord{
			{Apelido: "Meio", Pontos: 30},
			{Apelido: "Alto", Pontos: 90},
			{Apelido: "Baixo", Pontos: -12},
		}), ShouldBeNil)

		svc := service.New(service.WithStore(store), service.WithLogger(logger.Get()))

		Convey("Default order is descending by score", func() {
			records, err := svc.Outliers(ctx, "")
			So(err, ShouldBeNil)
			So(records[0].Apelido, ShouldEqual, "Alto")
			So(records[2].Apelido, ShouldEqual, "Baixo")
		})

		Convey("Ascending order inverts it", func() {
			records, err := svc.Outliers(ctx, "asc")
			So(err, ShouldBeNil)
			So(records[0].Apelido, ShouldEqual, "Baixo")
			So(records[2].Apelido, ShouldEqual, "Alto")
		})
	})
}

func TestMarketStatusCache(t *testing.T) {
	Convey("Given a service with a fake market upstream", t, func() {
		ctx := context.Background()
		upstream := &fakeMarket{status: &cartola.MarketStatus{
			RodadaAtual:   10,
			StatusMercado: cartola.MarketOpen,
		}}
		svc := service.New(
			service.WithStore(newStore(t)),
			service.WithMarketClient(upstream),
			service.WithMarketCacheTTL(time.Hour),
			service.WithLogger(logger.Get()),
		)

		Convey("Repeated calls within the TTL hit the upstream once", func() {
			for i := 0; i < 3; i++ {
				status, err := svc.MarketStatus(ctx)
				So(err, ShouldBeNil)
				So(status.RodadaAtual, ShouldEqual, 10)
			}
			So(upstream.calls, ShouldEqual, 1)
		})

		Convey("An upstream failure with no cached copy propagates", func() {
			svc2 := service.New(
				service.WithStore(newStore(t)),
				service.WithMarketClient(&fakeMarket{err: cartola.ErrUpstream}),
				service.WithLogger(logger.Get()),
			)
			_, err := svc2.MarketStatus(ctx)
			So(errors.Is(err, cartola.ErrUpstream), ShouldBeTrue)
		})
	})
}

func TestLifecycleAndStats(t *testing.T) {
	Convey("Given a configured service", t, func() {
		store := newStore(t)
		ctx := context.Background()
		So(store.WriteOutliers(ctx, nil), ShouldBeNil)

		svc := service.New(service.WithStore(store), service.WithLogger(logger.Get()))

		Convey("Start and Stop are idempotent", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			svc.Stop()
			svc.Stop()
		})

		Convey("GetStats reports artifact ages for existing artifacts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			out := svc.GetStats()
			So(out["started"], ShouldEqual, true)
			ages, ok := out["artifact_ages"].(map[string]string)
			So(ok, ShouldBeTrue)
			So(ages, ShouldContainKey, "outliers_pontuacao.json")
		})

		Convey("Start without a store fails", func() {
			So(service.New().Start(ctx), ShouldNotBeNil)
		})
	})
}
