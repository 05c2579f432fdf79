package seedraw_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cartolab/cartolab/internal/adapters/rawcsv"
	"github.com/cartolab/cartolab/internal/domain/clean"
	"github.com/cartolab/cartolab/internal/domain/roster"
	"github.com/cartolab/cartolab/internal/seedraw"
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

func TestSeededDataFeedsThePipeline(t *testing.T) {
	Convey("Given two seeded seasons", t, func() {
		root := t.TempDir()
		cfg := &seedraw.Config{
			OutputDir:  root,
			Seasons:    []int{2024, 2025},
			Rounds:     3,
			Players:    25,
			LatinRatio: 50,
		}

		stats, err := seedraw.Run(context.Background(), cfg)
		So(err, ShouldBeNil)
		So(stats.FilesWritten, ShouldEqual, 6)
		So(stats.RowsWritten, ShouldEqual, 150)

		Convey("The discovery and ingestion layer accepts every file", func() {
			seasons, err := rawcsv.DiscoverSeasons(root, 4, "rodada-*.csv")
			So(err, ShouldBeNil)
			So(seasons, ShouldHaveLength, 2)

			var records []roster.RawRecord
			for _, season := range seasons {
				So(season.Files, ShouldHaveLength, 3)
				for _, file := range season.Files {
					recs, err := rawcsv.ReadFile(file, season.Year)
					So(err, ShouldBeNil)
					So(recs, ShouldHaveLength, 25)
					records = append(records, recs...)
				}
			}

			Convey("And cleaning yields only canonical positions", func() {
				rows := clean.Transform(records)
				So(rows, ShouldHaveLength, 150)
				for _, row := range rows {
					So(roster.ValidPosition(row.Posicao), ShouldBeTrue)
				}
			})
		})
	})
}
