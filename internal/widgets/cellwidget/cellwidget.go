package cellwidget

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/vancomm/minesweeper-cells/internal/assets"
	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/view"
)

const DefaultSide float32 = 32

// AppTheme reads the variant of the running fyne app.
type AppTheme struct{}

func (AppTheme) Dark() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	return app.Settings().ThemeVariant() == theme.VariantDark
}

type Widget struct {
	widget.BaseWidget

	Side  float32
	Theme view.ThemeSource

	OnTapped          func(cell.Coordinate)
	OnTappedSecondary func(cell.Coordinate)

	view    *view.CellView
	catalog *assets.Catalog
	image   *canvas.Image
}

func New(c cell.Coordinate, catalog *assets.Catalog) *Widget {
	w := &Widget{
		Side:    DefaultSide,
		Theme:   AppTheme{},
		view:    view.New(c),
		catalog: catalog,
		image:   &canvas.Image{FillMode: canvas.ImageFillStretch},
	}
	w.ExtendBaseWidget(w)
	return w
}

func (w *Widget) Coordinate() cell.Coordinate {
	return w.view.Coordinate()
}

func (w *Widget) State() cell.State {
	return w.view.State()
}

func (w *Widget) Asset() render.AssetID {
	return w.view.Asset(w.Theme)
}

func (w *Widget) Load(f cell.Field) bool {
	return w.refreshIf(w.view.Load(f))
}

func (w *Widget) Uncover() bool {
	return w.refreshIf(w.view.Uncover())
}

func (w *Widget) RevealAtGameEnd() bool {
	return w.refreshIf(w.view.RevealAtGameEnd())
}

func (w *Widget) ToggleFlag() bool {
	return w.refreshIf(w.view.ToggleFlag())
}

func (w *Widget) refreshIf(redraw bool) bool {
	if redraw {
		w.Refresh()
	}
	return redraw
}

// [Widget] implements [view.Drawer]. A sprite missing from the catalog
// means the build shipped without it, and Draw panics.
func (w *Widget) Draw(id render.AssetID, bounds image.Rectangle) error {
	w.image.Resource = w.catalog.MustLookup(id)
	w.image.Move(fyne.NewPos(float32(bounds.Min.X), float32(bounds.Min.Y)))
	w.image.Resize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))
	w.image.Refresh()
	return nil
}

func (w *Widget) Tapped(*fyne.PointEvent) {
	if w.OnTapped != nil {
		w.OnTapped(w.Coordinate())
	}
}

func (w *Widget) TappedSecondary(*fyne.PointEvent) {
	if w.OnTappedSecondary != nil {
		w.OnTappedSecondary(w.Coordinate())
	}
}

func (w *Widget) redraw() {
	if err := w.view.Redraw(w, w.Theme); err != nil {
		fyne.LogError("unable to redraw cell", err)
	}
}

func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	w.redraw()
	return &cellRenderer{w: w}
}

var (
	_ fyne.Tappable          = (*Widget)(nil)
	_ fyne.SecondaryTappable = (*Widget)(nil)
	_ view.Drawer            = (*Widget)(nil)
)

var _ fyne.WidgetRenderer = (*cellRenderer)(nil)

type cellRenderer struct {
	w *Widget
}

func (r *cellRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(r.w.Side)
}

func (r *cellRenderer) Layout(size fyne.Size) {
	r.w.view.Resize(int(fyne.Min(size.Width, size.Height)))
	r.w.redraw()
}

func (r *cellRenderer) Refresh() {
	r.w.redraw()
}

func (r *cellRenderer) Destroy() {
}

func (r *cellRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.w.image}
}
