package roster_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cartolab/cartolab/internal/domain/roster"
)

func TestMapPosition(t *testing.T) {
	Convey("Given the fixed position code table", t, func() {
		Convey("Numeric ids map to canonical categories", func() {
			So(roster.MapPosition("1"), ShouldEqual, roster.PositionGoalkeeper)
			So(roster.MapPosition("2"), ShouldEqual, roster.PositionFullback)
			So(roster.MapPosition("3"), ShouldEqual, roster.PositionDefender)
			So(roster.MapPosition("4"), ShouldEqual, roster.PositionMidfielder)
			So(roster.MapPosition("5"), ShouldEqual, roster.PositionForward)
			So(roster.MapPosition("6"), ShouldEqual, roster.PositionCoach)
		})

		Convey("3-letter codes map case-insensitively", func() {
			So(roster.MapPosition("ata"), ShouldEqual, roster.PositionForward)
			So(roster.MapPosition("ATA"), ShouldEqual, roster.PositionForward)
			So(roster.MapPosition(" Gol "), ShouldEqual, roster.PositionGoalkeeper)
		})

		Convey("Unknown codes map to the unknown category, never a null", func() {
			So(roster.MapPosition("7"), ShouldEqual, roster.PositionUnknown)
			So(roster.MapPosition(""), ShouldEqual, roster.PositionUnknown)
			So(roster.MapPosition("xyz"), ShouldEqual, roster.PositionUnknown)
		})

		Convey("The canonical vocabulary is closed", func() {
			So(roster.Positions(), ShouldHaveLength, 7)
			So(roster.ValidPosition("ata"), ShouldBeTrue)
			So(roster.ValidPosition("desconhecida"), ShouldBeTrue)
			So(roster.ValidPosition("striker"), ShouldBeFalse)
		})

		Convey("Line positions exclude goalkeepers and coaches", func() {
			line := roster.LinePositions()
			So(line, ShouldHaveLength, 4)
			So(line, ShouldNotContain, roster.PositionGoalkeeper)
			So(line, ShouldNotContain, roster.PositionCoach)
		})
	})
}

func TestMapStatus(t *testing.T) {
	Convey("Given the fixed status id table", t, func() {
		So(roster.MapStatus(2), ShouldEqual, roster.StatusDoubtful)
		So(roster.MapStatus(3), ShouldEqual, roster.StatusSuspended)
		So(roster.MapStatus(5), ShouldEqual, roster.StatusInjured)
		So(roster.MapStatus(6), ShouldEqual, roster.StatusNull)
		So(roster.MapStatus(7), ShouldEqual, roster.StatusProbable)

		Convey("Unmapped ids become the unknown label", func() {
			So(roster.MapStatus(0), ShouldEqual, roster.StatusUnknown)
			So(roster.MapStatus(99), ShouldEqual, roster.StatusUnknown)
		})
	})
}

func TestClubNameFixes(t *testing.T) {
	Convey("Given corrupted club names", t, func() {
		So(roster.RepairClubName("AmÃ©rica-MG"), ShouldEqual, "América-MG")
		So(roster.RepairClubName("GrÃªmio"), ShouldEqual, "Grêmio")

		Convey("Clean names pass through unchanged", func() {
			So(roster.RepairClubName("Flamengo"), ShouldEqual, "Flamengo")
		})
	})

	Convey("Given club abbreviations", t, func() {
		So(roster.ExpandClubAbbreviation("FLA"), ShouldEqual, "Flamengo")
		So(roster.ExpandClubAbbreviation("sao"), ShouldEqual, "São Paulo")

		Convey("Unmapped values pass through unchanged", func() {
			So(roster.ExpandClubAbbreviation("Botafogo"), ShouldEqual, "Botafogo")
			So(roster.ExpandClubAbbreviation("ZZZ"), ShouldEqual, "ZZZ")
		})
	})
}

func TestRowColumnAccess(t *testing.T) {
	Convey("Given a canonical row", t, func() {
		row := roster.Row{PontosNum: 7.5, PrecoNum: 10, DS: 3}

		Convey("Numeric columns are reachable by name", func() {
			So(row.NumericValue("pontos_num"), ShouldEqual, 7.5)
			So(row.NumericValue("preco_num"), ShouldEqual, 10)
			So(row.NumericValue("jogos_num"), ShouldEqual, 0)
		})

		Convey("Scout columns are reachable and assignable by name", func() {
			So(row.ScoutValue("DS"), ShouldEqual, 3)
			row.SetScout("SG", 1)
			So(row.ScoutValue("SG"), ShouldEqual, 1)

			for _, col := range roster.ScoutColumns() {
				row.SetScout(col, 2)
				So(row.ScoutValue(col), ShouldEqual, 2)
			}
		})

		Convey("The column sets have the expected sizes", func() {
			So(roster.NumericColumns(), ShouldHaveLength, 5)
			So(roster.ScoutColumns(), ShouldHaveLength, 22)
		})
	})
}
