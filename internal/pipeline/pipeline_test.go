package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/cartolab/cartolab/internal/adapters/artifact"
	"github.com/cartolab/cartolab/internal/config"
	"github.com/cartolab/cartolab/internal/pipeline"
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

const rawHeader = "atletas.atleta_id,atletas.rodada_id,atletas.clube_id,atletas.posicao_id," +
	"atletas.status_id,atletas.apelido,atletas.nome,atletas.clube.id.full.name," +
	"atletas.pontos_num,atletas.preco_num,atletas.variacao_num,atletas.media_num," +
	"atletas.jogos_num,G,DS\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.New()
	cfg.RawDataPath = filepath.Join(base, "01_raw")
	cfg.IntermediatePath = filepath.Join(base, "02_intermediate")
	cfg.VisualizationPath = filepath.Join(base, "03_visualizacoes")
	return cfg
}

func testStore(cfg *config.Config) *artifact.Store {
	return artifact.New(artifact.Paths{
		Consolidated: cfg.ConsolidatedFile(),
		Aggregated:   cfg.AggregatedFile(),
		Stats:        cfg.StatsFile(),
		Outliers:     cfg.OutliersFile(),
		FigureDir:    cfg.VisualizationPath,
	})
}

func writeRound(t *testing.T, cfg *config.Config, year, file, body string) {
	t.Helper()
	dir := filepath.Join(cfg.RawDataPath, year)
	So(os.MkdirAll(dir, 0o750), ShouldBeNil)
	So(os.WriteFile(filepath.Join(dir, file), []byte(rawHeader+body), 0o600), ShouldBeNil)
}

func allStages(cfg *config.Config, store *artifact.Store) []pipeline.Stage {
	return []pipeline.Stage{
		pipeline.NewConsolidateStage(cfg, store),
		pipeline.NewVerifyStage(store),
		pipeline.NewDescribeStage(store),
		pipeline.NewChartsStage(store, cfg.ScatterSampleSize),
		pipeline.NewAggregateStage(store),
	}
}

func TestFullPipelineRun(t *testing.T) {
	Convey("Given raw rounds with forwards, a goalkeeper and a coach", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)

		// Six forwards in round 1: one extreme score for the outlier gate.
		writeRound(t, cfg, "2025", "rodada-1.csv",
			"1,1,262,ata,7,Um,Nome Um,Flamengo,1.0,10.0,0.5,1.0,1,0,1\n"+
				"2,1,262,ata,7,Dois,Nome Dois,Flamengo,2.0,10.0,0.5,2.0,1,0,1\n"+
				"3,1,262,ata,7,Tres,Nome Tres,Flamengo,3.0,10.0,0.5,3.0,1,0,1\n"+
				"4,1,263,ata,7,Quatro,Nome Quatro,Palmeiras,4.0,10.0,0.5,4.0,1,0,1\n"+
				"5,1,263,ata,7,Cinco,Nome Cinco,Palmeiras,5.0,10.0,0.5,5.0,1,1,1\n"+
				"6,1,263,ata,7,Cem,Nome Cem,Palmeiras,100.0,10.0,0.5,100.0,1,5,0\n")
		writeRound(t, cfg, "2025", "rodada-2.csv",
			"1,2,262,ata,7,Um,Nome Um,Flamengo,3.0,12.0,2.0,2.0,2,1,0\n"+
				"7,2,262,1,2,Rossi,Agustín Rossi,FLA,,18.0,,,,,\n"+
				"8,2,262,6,7,Tite,Adenor Bacchi,Flamengo,0.0,14.0,0.0,0.0,0,0,0\n")

		Convey("When the full pipeline runs", func() {
			err := pipeline.NewRunner().Run(context.Background(), allStages(cfg, store)...)
			So(err, ShouldBeNil)
			ctx := context.Background()

			Convey("Then the consolidated table holds every raw row", func() {
				rows, err := store.ReadConsolidated(ctx)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 9)
			})

			Convey("Then the goalkeeper's empty score was filled with zero", func() {
				rows, err := store.ReadConsolidated(ctx)
				So(err, ShouldBeNil)
				for _, row := range rows {
					if row.AtletaID == 7 {
						So(row.PontosNum, ShouldEqual, 0)
						So(row.Posicao, ShouldEqual, "gol")
						So(row.ClubeNome, ShouldEqual, "Flamengo")
					}
				}
			})

			Convey("Then the extreme forward score is the only flagged outlier", func() {
				outliers, err := store.ReadOutliers(ctx)
				So(err, ShouldBeNil)
				So(outliers, ShouldHaveLength, 1)
				So(outliers[0].Apelido, ShouldEqual, "Cem")
				So(outliers[0].Pontos, ShouldEqual, 100)
				So(outliers[0].Posicao, ShouldEqual, "ata")
			})

			Convey("Then the descriptive stats document is written and well formed", func() {
				raw, err := store.ReadStats(ctx)
				So(err, ShouldBeNil)
				So(string(raw), ShouldContainSubstring, `"pontos_num"`)
				So(string(raw), ShouldContainSubstring, `"25%"`)
			})

			Convey("Then both figures land in the visualization directory", func() {
				_, err := os.Stat(cfg.FigureFile("boxplot_pontos_posicao.json"))
				So(err, ShouldBeNil)
				_, err = os.Stat(cfg.FigureFile("scatter_preco_pontos.json"))
				So(err, ShouldBeNil)
			})

			Convey("Then aggregates exclude the coach and rank by mean score", func() {
				aggs, err := store.ReadAggregates(ctx)
				So(err, ShouldBeNil)
				So(aggs, ShouldHaveLength, 7) // 6 forwards + goalkeeper, no coach
				So(aggs[0].Apelido, ShouldEqual, "Cem")
				for _, a := range aggs {
					So(a.Posicao, ShouldNotEqual, "tec")
					if a.AtletaID == 1 {
						So(a.TotalPontos, ShouldEqual, 4)
						So(a.JogosDisputados, ShouldEqual, 2)
					}
					if a.AtletaID == 7 {
						// Null score became zero, so no game is counted.
						So(a.JogosDisputados, ShouldEqual, 0)
						So(a.CustoBeneficio, ShouldEqual, 0)
					}
				}
			})
		})

		Convey("When the pipeline runs twice over the same input", func() {
			So(pipeline.NewRunner().Run(context.Background(), allStages(cfg, store)...), ShouldBeNil)
			first, err := store.ReadConsolidated(context.Background())
			So(err, ShouldBeNil)

			So(pipeline.NewRunner().Run(context.Background(), allStages(cfg, store)...), ShouldBeNil)
			second, err := store.ReadConsolidated(context.Background())
			So(err, ShouldBeNil)

			Convey("Then the consolidated content is identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestSeasonRetention(t *testing.T) {
	Convey("Given raw data for six seasons", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		for i, year := range []string{"2020", "2021", "2022", "2023", "2024", "2025"} {
			writeRound(t, cfg, year, "rodada-1.csv",
				fmt.Sprintf("%d,1,262,ata,7,Atleta,Nome,Flamengo,1.0,10.0,0.0,1.0,1,0,0\n", i+1))
		}

		Convey("When consolidating with the default 4-season cap", func() {
			stage := pipeline.NewConsolidateStage(cfg, store)
			res, err := stage.Run(context.Background())
			So(err, ShouldBeNil)
			So(res.FilesRead, ShouldEqual, 4)

			Convey("Then only rows from the 4 most recent seasons survive", func() {
				rows, err := store.ReadConsolidated(context.Background())
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 4)
				years := make(map[int32]bool)
				for _, row := range rows {
					years[row.Ano] = true
				}
				So(years[2020], ShouldBeFalse)
				So(years[2021], ShouldBeFalse)
				So(years[2022], ShouldBeTrue)
				So(years[2025], ShouldBeTrue)
			})
		})
	})
}

func TestConsolidateSkipsBadFiles(t *testing.T) {
	Convey("Given one good and one header-only round file", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		writeRound(t, cfg, "2025", "rodada-1.csv",
			"1,1,262,ata,7,Um,Nome Um,Flamengo,1.0,10.0,0.0,1.0,1,0,0\n")
		writeRound(t, cfg, "2025", "rodada-2.csv", "")

		Convey("When consolidating", func() {
			res, err := pipeline.NewConsolidateStage(cfg, store).Run(context.Background())

			Convey("Then the bad file is skipped and the good one is kept", func() {
				So(err, ShouldBeNil)
				So(res.FilesRead, ShouldEqual, 1)
				So(res.FilesSkipped, ShouldEqual, 1)
				So(res.Rows, ShouldEqual, 1)
			})
		})
	})

	Convey("Given only unreadable round files", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		writeRound(t, cfg, "2025", "rodada-1.csv", "")

		Convey("Then consolidation fails with the no-raw-data sentinel", func() {
			_, err := pipeline.NewConsolidateStage(cfg, store).Run(context.Background())
			So(errors.Is(err, pipeline.ErrNoRawData), ShouldBeTrue)
		})
	})
}

// partialRow mimics an artifact written without all numeric columns, the
// situation the verification gate exists to catch.
type partialRow struct {
	Ano       int32   `parquet:"ano"`
	RodadaID  int32   `parquet:"rodada_id"`
	AtletaID  int64   `parquet:"atleta_id"`
	Apelido   string  `parquet:"apelido"`
	Posicao   string  `parquet:"posicao_id"`
	PontosNum float64 `parquet:"pontos_num"`
}

func writePartialArtifact(t *testing.T, path string, rows []partialRow) {
	t.Helper()
	So(os.MkdirAll(filepath.Dir(path), 0o750), ShouldBeNil)
	f, err := os.Create(path)
	So(err, ShouldBeNil)
	w := parquet.NewGenericWriter[partialRow](f)
	_, err = w.Write(rows)
	So(err, ShouldBeNil)
	So(w.Close(), ShouldBeNil)
	So(f.Close(), ShouldBeNil)
}

func TestVerifyStage(t *testing.T) {
	Convey("Given a consolidated artifact missing numeric columns", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		writePartialArtifact(t, cfg.ConsolidatedFile(), []partialRow{
			{Ano: 2025, RodadaID: 1, AtletaID: 1, Apelido: "Um", Posicao: "ata", PontosNum: 1},
		})

		Convey("Then verification fails naming the null columns", func() {
			_, err := pipeline.NewVerifyStage(store).Run(context.Background())
			So(errors.Is(err, pipeline.ErrNullValues), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "preco_num")
		})
	})

	Convey("Given a consolidated artifact with an unknown position", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		writeRound(t, cfg, "2025", "rodada-1.csv",
			"1,1,262,ata,7,Um,Nome Um,Flamengo,1.0,10.0,0.0,1.0,1,0,0\n")
		_, err := pipeline.NewConsolidateStage(cfg, store).Run(context.Background())
		So(err, ShouldBeNil)

		rows, err := store.ReadConsolidated(context.Background())
		So(err, ShouldBeNil)
		rows[0].Posicao = "lateral-esquerdo"
		So(store.WriteConsolidated(context.Background(), rows), ShouldBeNil)

		Convey("Then verification fails naming the offending value", func() {
			_, err := pipeline.NewVerifyStage(store).Run(context.Background())
			So(errors.Is(err, pipeline.ErrUnknownPositions), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "lateral-esquerdo")
		})
	})

	Convey("Given a consolidated artifact with a repeated player-round key", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)
		writeRound(t, cfg, "2025", "rodada-1.csv",
			"1,1,262,5,7,Um,Nome Um,Flamengo,1.0,10.0,0.0,1.0,1,0,0\n"+
				"1,1,262,5,7,Um,Nome Um,Flamengo,1.0,10.0,0.0,1.0,1,0,0\n")
		_, err := pipeline.NewConsolidateStage(cfg, store).Run(context.Background())
		So(err, ShouldBeNil)

		Convey("Then verification fails with the duplicate sentinel", func() {
			_, err := pipeline.NewVerifyStage(store).Run(context.Background())
			So(errors.Is(err, pipeline.ErrDuplicateRows), ShouldBeTrue)
		})
	})

	Convey("Given no consolidated artifact at all", t, func() {
		cfg := testConfig(t)
		store := testStore(cfg)

		Convey("Then verification fails with the missing artifact sentinel", func() {
			_, err := pipeline.NewVerifyStage(store).Run(context.Background())
			So(errors.Is(err, artifact.ErrArtifactMissing), ShouldBeTrue)
		})
	})
}

type stubStage struct {
	name string
	err  error
	ran  *bool
}

func (s stubStage) Name() string { return s.name }

func (s stubStage) Run(context.Context) (pipeline.Result, error) {
	if s.ran != nil {
		*s.ran = true
	}
	return pipeline.Result{}, s.err
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	Convey("Given a failing stage followed by another stage", t, func() {
		boom := errors.New("boom")
		var laterRan bool
		stages := []pipeline.Stage{
			stubStage{name: "first"},
			stubStage{name: "second", err: boom},
			stubStage{name: "third", ran: &laterRan},
		}

		Convey("When the runner executes them", func() {
			err := pipeline.NewRunner().Run(context.Background(), stages...)

			Convey("Then the failure propagates with the stage name and later stages never run", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "stage second")
				So(laterRan, ShouldBeFalse)
			})
		})
	})
}
