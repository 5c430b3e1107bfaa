package grid

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/view"
)

var Log = logrus.New()

var (
	ErrBadDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds   = errors.New("coordinate out of bounds")
	ErrUnknownOp     = errors.New("unknown operation")
)

// Record is a cell snapshot tied to its place on the board.
type Record struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Val    int  `json:"value"`
	Open   bool `json:"uncovered"`
	Marked bool `json:"marked_as_safe"`
}

// [Record] implements [cell.Field]
func (r Record) Value() int         { return r.Val }
func (r Record) Uncovered() bool    { return r.Open }
func (r Record) MarkedAsSafe() bool { return r.Marked }

func (r Record) Coordinate() cell.Coordinate {
	return cell.Coordinate{Row: r.Row, Col: r.Col}
}

// NewRecord places the persisted snapshot of s on the board.
func NewRecord(s cell.State) Record {
	c, snap := s.Coordinate(), s.Snapshot()
	return Record{
		Row:    c.Row,
		Col:    c.Col,
		Val:    snap.Val,
		Open:   snap.Open,
		Marked: snap.Marked,
	}
}

// Grid holds one view per coordinate, row-major.
type Grid struct {
	Rows, Cols int
	views      []*view.CellView
}

func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w (rows = %d, cols = %d)", ErrBadDimensions, rows, cols)
	}
	g := &Grid{Rows: rows, Cols: cols, views: make([]*view.CellView, rows*cols)}
	for i := range g.views {
		g.views[i] = view.New(cell.Coordinate{Row: i / cols, Col: i % cols})
	}
	return g, nil
}

func (g *Grid) InBounds(c cell.Coordinate) bool {
	return 0 <= c.Row && c.Row < g.Rows && 0 <= c.Col && c.Col < g.Cols
}

func (g *Grid) At(c cell.Coordinate) (*view.CellView, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return g.views[c.Row*g.Cols+c.Col], nil
}

// Restore loads every record; the whole batch is rejected if any record
// falls outside the grid.
func (g *Grid) Restore(records []Record) error {
	for _, r := range records {
		if !g.InBounds(r.Coordinate()) {
			return fmt.Errorf("%w: %s", ErrOutOfBounds, r.Coordinate())
		}
	}
	for _, r := range records {
		g.views[r.Row*g.Cols+r.Col].Load(r)
	}
	Log.WithFields(logrus.Fields{
		"rows":    g.Rows,
		"cols":    g.Cols,
		"records": len(records),
	}).Debug("restored grid")
	return nil
}

func (g *Grid) Apply(cmd Command) (bool, error) {
	v, err := g.At(cmd.Coordinate)
	if err != nil {
		return false, err
	}
	var redraw bool
	switch cmd.Op {
	case OpUncover:
		redraw = v.Uncover()
	case OpReveal:
		redraw = v.RevealAtGameEnd()
	case OpFlag:
		redraw = v.ToggleFlag()
	default:
		return false, fmt.Errorf("%w: %d", ErrUnknownOp, cmd.Op)
	}
	Log.WithFields(logrus.Fields{
		"op":   cmd.Op,
		"cell": cmd.Coordinate.String(),
	}).Debug("applied command")
	return redraw, nil
}

// Sweepable is anything holding a cell the game-end sweep can expose.
type Sweepable interface {
	State() cell.State
	RevealAtGameEnd() bool
}

// SweepAll exposes every bomb among cells and returns how many it touched.
func SweepAll[S Sweepable](cells []S) int {
	n := 0
	for _, c := range cells {
		if c.State().IsBomb() {
			c.RevealAtGameEnd()
			n++
		}
	}
	return n
}

func (g *Grid) Sweep() int {
	n := SweepAll(g.views)
	Log.WithField("bombs", n).Debug("game-end sweep")
	return n
}

// Assets resolves every cell, row by row.
func (g *Grid) Assets(dark bool) [][]string {
	theme := view.ThemeFunc(func() bool { return dark })
	res := make([][]string, g.Rows)
	for row := range g.Rows {
		res[row] = make([]string, g.Cols)
		for col := range g.Cols {
			res[row][col] = g.views[row*g.Cols+col].Asset(theme).String()
		}
	}
	return res
}

func (g *Grid) Snapshots() []Record {
	records := make([]Record, len(g.views))
	for i, v := range g.views {
		records[i] = NewRecord(v.State())
	}
	return records
}

// Dirty returns the coordinates of cells waiting for a redraw.
func (g *Grid) Dirty() []cell.Coordinate {
	var res []cell.Coordinate
	for _, v := range g.views {
		if v.Dirty() {
			res = append(res, v.Coordinate())
		}
	}
	return res
}

// Redraw draws every dirty cell with the drawer drawerFor returns for it.
func (g *Grid) Redraw(drawerFor func(cell.Coordinate) view.Drawer, theme view.ThemeSource) error {
	for _, v := range g.views {
		if !v.Dirty() {
			continue
		}
		if err := v.Redraw(drawerFor(v.Coordinate()), theme); err != nil {
			return err
		}
	}
	return nil
}
