package cellwidget

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cells/internal/assets"
	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/grid"
	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/view"
)

func newTestWidget(t *testing.T, dark bool) (*Widget, *canvas.Image) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	catalog, err := assets.Load()
	require.NoError(t, err)

	w := New(cell.Coordinate{Row: 2, Col: 5}, catalog)
	w.Theme = view.ThemeFunc(func() bool { return dark })

	r := test.WidgetRenderer(w)
	require.Len(t, r.Objects(), 1)
	img, ok := r.Objects()[0].(*canvas.Image)
	require.True(t, ok)
	return w, img
}

func TestInitialSprite(t *testing.T) {
	_, img := newTestWidget(t, false)
	require.NotNil(t, img.Resource)
	assert.Equal(t, "button_light.svg", img.Resource.Name())
	assert.Equal(t, canvas.ImageFillStretch, img.FillMode)
}

func TestCommandsSwapSprite(t *testing.T) {
	w, img := newTestWidget(t, true)
	w.Load(cell.Snapshot{Val: cell.Bomb})
	assert.Equal(t, "button_night.svg", img.Resource.Name())

	w.ToggleFlag()
	assert.Equal(t, "flag_night.svg", img.Resource.Name())

	w.ToggleFlag()
	w.RevealAtGameEnd()
	assert.Equal(t, "bomb_night.svg", img.Resource.Name())
	assert.Equal(t, "bomb_night", w.Asset().String())
}

func TestDetonation(t *testing.T) {
	w, img := newTestWidget(t, false)
	w.Load(cell.Snapshot{Val: cell.Bomb})
	w.Uncover()
	assert.Equal(t, "bomb_exploded_light.svg", img.Resource.Name())
	assert.True(t, w.State().IsUncovered())
}

func TestHint(t *testing.T) {
	w, img := newTestWidget(t, false)
	w.Load(cell.Snapshot{Val: 4, Open: true})
	assert.Equal(t, "minesweeper_4_light.svg", img.Resource.Name())
}

func TestLayoutFillsSquare(t *testing.T) {
	w, img := newTestWidget(t, false)

	assert.Equal(t, fyne.NewSquareSize(DefaultSide), w.MinSize())

	w.Resize(fyne.NewSize(60, 40))
	assert.Equal(t, fyne.NewSquareSize(40), img.Size())
	assert.Equal(t, fyne.NewPos(0, 0), img.Position())
}

func TestTaps(t *testing.T) {
	w, _ := newTestWidget(t, false)

	var primary, secondary []cell.Coordinate
	w.OnTapped = func(c cell.Coordinate) { primary = append(primary, c) }
	w.OnTappedSecondary = func(c cell.Coordinate) { secondary = append(secondary, c) }

	test.Tap(w)
	test.TapSecondary(w)
	test.TapSecondary(w)

	assert.Equal(t, []cell.Coordinate{{Row: 2, Col: 5}}, primary)
	assert.Len(t, secondary, 2)
}

func TestTapsWithoutHandlers(t *testing.T) {
	w, _ := newTestWidget(t, false)
	assert.NotPanics(t, func() {
		test.Tap(w)
		test.TapSecondary(w)
	})
}

func TestDrawPanicsOnMissingSprite(t *testing.T) {
	w, _ := newTestWidget(t, false)
	assert.Panics(t, func() {
		w.Draw(render.AssetID{Kind: render.Hint, Hint: 9}, image.Rect(0, 0, 8, 8))
	})
}

func TestSweepWidgets(t *testing.T) {
	bomb, bombImg := newTestWidget(t, false)
	bomb.Load(cell.Snapshot{Val: cell.Bomb})
	catalog, err := assets.Load()
	require.NoError(t, err)
	hint := New(cell.Coordinate{Row: 0, Col: 1}, catalog)
	hint.Load(cell.Snapshot{Val: 2})

	assert.Equal(t, 1, grid.SweepAll([]*Widget{bomb, hint}))
	assert.Equal(t, "bomb_light.svg", bombImg.Resource.Name())
	assert.False(t, hint.State().IsUncovered())
	assert.False(t, hint.State().WasRevealedAtGameEnd())
}
