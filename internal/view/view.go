package view

import (
	"fmt"
	"image"

	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/render"
)

// Drawer paints a sprite stretched over bounds.
type Drawer interface {
	Draw(id render.AssetID, bounds image.Rectangle) error
}

// ThemeSource reports the host's current theme. Hosts sample it once per
// render pass.
type ThemeSource interface {
	Dark() bool
}

type ThemeFunc func() bool

func (f ThemeFunc) Dark() bool {
	return f()
}

// CellView owns one cell's state. Commands only mark the view dirty; the
// host decides when to call [CellView.Redraw].
type CellView struct {
	state *cell.State
	side  int
	dirty bool
}

func New(c cell.Coordinate) *CellView {
	return &CellView{state: cell.New(c), dirty: true}
}

func (v *CellView) State() cell.State {
	return *v.state
}

func (v *CellView) Coordinate() cell.Coordinate {
	return v.state.Coordinate()
}

func (v *CellView) Load(f cell.Field) bool {
	v.state.Load(f)
	return v.invalidate(true)
}

func (v *CellView) Uncover() bool {
	return v.invalidate(v.state.Uncover())
}

func (v *CellView) RevealAtGameEnd() bool {
	return v.invalidate(v.state.RevealAtGameEnd())
}

func (v *CellView) ToggleFlag() bool {
	return v.invalidate(v.state.ToggleFlag())
}

func (v *CellView) invalidate(redraw bool) bool {
	if redraw {
		v.dirty = true
	}
	return redraw
}

func (v *CellView) Dirty() bool {
	return v.dirty
}

// Resize sets the side of the square the cell is drawn into.
func (v *CellView) Resize(side int) {
	if side < 0 {
		side = 0
	}
	if side != v.side {
		v.side = side
		v.dirty = true
	}
}

func (v *CellView) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.side, v.side)
}

func (v *CellView) Asset(theme ThemeSource) render.AssetID {
	return render.Resolve(*v.state, theme.Dark())
}

func (v *CellView) Redraw(d Drawer, theme ThemeSource) error {
	id := v.Asset(theme)
	if err := d.Draw(id, v.Bounds()); err != nil {
		return fmt.Errorf("unable to draw cell %s as %s: %w", v.Coordinate(), id, err)
	}
	v.dirty = false
	return nil
}
