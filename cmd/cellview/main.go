package main

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-cells/internal/assets"
	"github.com/vancomm/minesweeper-cells/internal/cell"
	"github.com/vancomm/minesweeper-cells/internal/config"
	"github.com/vancomm/minesweeper-cells/internal/grid"
	"github.com/vancomm/minesweeper-cells/internal/widgets/cellwidget"
)

var log = logrus.New()

func setupLogging() {
	logLevel := logrus.InfoLevel
	if config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   filepath.Join(dir, "cellview", "cellview.log"),
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Warn("file logging disabled: ", err)
		return
	}
	log.AddHook(hook)
	grid.Log.AddHook(hook)
	grid.Log.SetLevel(logLevel)
}

type preview struct {
	cells  []*cellwidget.Widget
	status *widget.Label
	over   bool
}

func (p *preview) reset(records []grid.Record) {
	for i, w := range p.cells {
		w.Load(records[i])
	}
	p.over = false
	p.status.SetText("")
	log.Info("board reset")
}

func (p *preview) uncover(c cell.Coordinate) {
	if p.over {
		return
	}
	w := p.cells[c.Row*len(layout[0])+c.Col]
	if w.State().IsMarkedAsSafe() {
		return
	}
	w.Uncover()
	log.WithField("cell", c.String()).Debug("uncovered")
	if w.State().IsBomb() {
		p.sweep()
		p.status.SetText("Boom")
	}
}

func (p *preview) flag(c cell.Coordinate) {
	if p.over {
		return
	}
	w := p.cells[c.Row*len(layout[0])+c.Col]
	if w.State().IsUncovered() {
		return
	}
	w.ToggleFlag()
	log.WithField("cell", c.String()).Debug("flag toggled")
}

func (p *preview) sweep() {
	n := grid.SweepAll(p.cells)
	p.over = true
	log.WithField("bombs", n).Info("game over")
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("unable to load .env: ", err)
	}
	setupLogging()

	catalog, err := assets.Load()
	if err != nil {
		log.Fatal("unable to load sprites: ", err)
	}

	a := app.NewWithID("com.vancomm.cellview")
	win := a.NewWindow("Cells")

	records, err := parseLayout(layout)
	if err != nil {
		log.Fatal(err)
	}
	p := &preview{status: widget.NewLabel("")}
	board := container.NewGridWithColumns(len(layout[0]))
	for _, rec := range records {
		w := cellwidget.New(rec.Coordinate(), catalog)
		w.Load(rec)
		w.OnTapped = p.uncover
		w.OnTappedSecondary = p.flag
		p.cells = append(p.cells, w)
		board.Add(w)
	}

	reset := widget.NewButton("Reset", func() { p.reset(records) })
	win.SetContent(container.NewBorder(nil, container.NewHBox(reset, p.status), nil, nil, board))
	win.Resize(fyne.NewSize(320, 360))

	log.Info("starting preview")
	win.ShowAndRun()
}
