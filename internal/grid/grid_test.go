package grid

import (
	"errors"
	"image"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/view"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	m.Run()
}

// 2x3 board:
//
//	B 2 1
//	B 2 1
func newTestGrid() *Grid {
	g, err := New(2, 3)
	if err != nil {
		panic(err)
	}
	records := []Record{
		{Row: 0, Col: 0, Val: cell.Bomb},
		{Row: 0, Col: 1, Val: 2},
		{Row: 0, Col: 2, Val: 1},
		{Row: 1, Col: 0, Val: cell.Bomb},
		{Row: 1, Col: 1, Val: 2},
		{Row: 1, Col: 2, Val: 1},
	}
	if err := g.Restore(records); err != nil {
		panic(err)
	}
	return g
}

type nopDrawer struct{ n *int }

func (d nopDrawer) Draw(render.AssetID, image.Rectangle) error {
	*d.n++
	return nil
}

func TestGrid(t *testing.T) {
	Convey("Given a restored board", t, func() {
		g := newTestGrid()

		Convey("Every cell starts covered", func() {
			So(g.Assets(false), ShouldResemble, [][]string{
				{"button_light", "button_light", "button_light"},
				{"button_light", "button_light", "button_light"},
			})
		})

		Convey("When the player uncovers a hint", func() {
			redraw, err := g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 0, Col: 1}})
			So(err, ShouldBeNil)
			So(redraw, ShouldBeTrue)

			Convey("Only that cell shows its value", func() {
				So(g.Assets(true)[0], ShouldResemble, []string{"button_night", "minesweeper_2_night", "button_night"})
			})
		})

		Convey("When the player steps on a bomb and the game ends", func() {
			_, err := g.Apply(Command{Op: OpFlag, Coordinate: cell.Coordinate{Row: 1, Col: 0}})
			So(err, ShouldBeNil)
			_, err = g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 0, Col: 0}})
			So(err, ShouldBeNil)
			So(g.Assets(false)[0][0], ShouldEqual, "bomb_exploded_light")

			n := g.Sweep()

			Convey("The flagged bomb keeps its flag and the trigger is swept too", func() {
				So(n, ShouldEqual, 2)
				assets := g.Assets(false)
				So(assets[0][0], ShouldEqual, "bomb_light")
				So(assets[1][0], ShouldEqual, "flag_light")
				So(assets[0][1], ShouldEqual, "button_light")
			})
		})

		Convey("When a bomb is swept without being triggered", func() {
			_, err := g.Apply(Command{Op: OpReveal, Coordinate: cell.Coordinate{Row: 1, Col: 0}})
			So(err, ShouldBeNil)

			Convey("It shows the plain bomb", func() {
				So(g.Assets(false)[1][0], ShouldEqual, "bomb_light")
			})
		})

		Convey("Commands outside the board are rejected", func() {
			_, err := g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 2, Col: 0}})
			So(errors.Is(err, ErrOutOfBounds), ShouldBeTrue)
			_, err = g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 0, Col: -1}})
			So(errors.Is(err, ErrOutOfBounds), ShouldBeTrue)
		})

		Convey("Unknown ops are rejected", func() {
			_, err := g.Apply(Command{Op: Op(42), Coordinate: cell.Coordinate{}})
			So(errors.Is(err, ErrUnknownOp), ShouldBeTrue)
		})

		Convey("Snapshots round-trip through Restore", func() {
			g.Apply(Command{Op: OpFlag, Coordinate: cell.Coordinate{Row: 0, Col: 2}})
			g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 1, Col: 1}})
			g.Sweep()

			other, err := New(2, 3)
			So(err, ShouldBeNil)
			So(other.Restore(g.Snapshots()), ShouldBeNil)
			So(other.Snapshots(), ShouldResemble, g.Snapshots())

			Convey("But the game-end styling is lost and swept bombs come back covered", func() {
				So(g.Assets(false)[0][0], ShouldEqual, "bomb_light")
				So(other.Assets(false)[0][0], ShouldEqual, "button_light")
				So(other.Assets(false)[1][1], ShouldEqual, "minesweeper_2_light")
			})
		})

		Convey("A bomb the player set off is stored as uncovered even after the sweep", func() {
			g.Apply(Command{Op: OpUncover, Coordinate: cell.Coordinate{Row: 0, Col: 0}})
			g.Sweep()
			g.Apply(Command{Op: OpFlag, Coordinate: cell.Coordinate{Row: 1, Col: 0}})

			v, err := g.At(cell.Coordinate{Row: 1, Col: 0})
			So(err, ShouldBeNil)
			So(NewRecord(v.State()), ShouldResemble, Record{Row: 1, Col: 0, Val: cell.Bomb, Marked: true})

			other, err := New(2, 3)
			So(err, ShouldBeNil)
			So(other.Restore(g.Snapshots()), ShouldBeNil)
			So(other.Assets(false)[0][0], ShouldEqual, "bomb_exploded_light")
			So(other.Assets(false)[1][0], ShouldEqual, "flag_light")
		})

		Convey("Restore rejects a batch with a stray record", func() {
			err := g.Restore([]Record{
				{Row: 0, Col: 1, Val: 5, Open: true},
				{Row: 9, Col: 9},
			})
			So(errors.Is(err, ErrOutOfBounds), ShouldBeTrue)
			So(g.Assets(false)[0][1], ShouldEqual, "button_light")
		})

		Convey("Redraw only touches dirty cells", func() {
			n := 0
			drawer := func(cell.Coordinate) view.Drawer { return nopDrawer{&n} }
			theme := view.ThemeFunc(func() bool { return false })

			So(len(g.Dirty()), ShouldEqual, 6)
			So(g.Redraw(drawer, theme), ShouldBeNil)
			So(n, ShouldEqual, 6)
			So(g.Dirty(), ShouldBeEmpty)

			g.Apply(Command{Op: OpFlag, Coordinate: cell.Coordinate{Row: 1, Col: 2}})
			So(g.Dirty(), ShouldResemble, []cell.Coordinate{{Row: 1, Col: 2}})
			So(g.Redraw(drawer, theme), ShouldBeNil)
			So(n, ShouldEqual, 7)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Dimensions must be positive", t, func() {
		for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
			_, err := New(dims[0], dims[1])
			So(errors.Is(err, ErrBadDimensions), ShouldBeTrue)
		}
	})

	Convey("Every cell knows where it lives", t, func() {
		g, err := New(3, 4)
		So(err, ShouldBeNil)
		v, err := g.At(cell.Coordinate{Row: 2, Col: 3})
		So(err, ShouldBeNil)
		So(v.Coordinate(), ShouldResemble, cell.Coordinate{Row: 2, Col: 3})
	})
}

func TestParseOp(t *testing.T) {
	Convey("Ops parse from long and short names", t, func() {
		for in, want := range map[string]Op{
			"uncover": OpUncover, "u": OpUncover,
			"reveal": OpReveal, "r": OpReveal,
			"flag": OpFlag, "f": OpFlag,
		} {
			op, err := ParseOp(in)
			So(err, ShouldBeNil)
			So(op, ShouldEqual, want)
		}
		_, err := ParseOp("chord")
		So(errors.Is(err, ErrUnknownOp), ShouldBeTrue)
		So(OpFlag.String(), ShouldEqual, "flag")
	})
}
