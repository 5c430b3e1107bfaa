package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/vancomm/minesweeper-cells/internal/render"
)

//go:embed sprites/*.svg
var sprites embed.FS

var ErrMissingAsset = errors.New("missing asset")

type Catalog struct {
	resources map[render.AssetID]fyne.Resource
}

// Load indexes the embedded sprites. Every id in [render.All] must be
// present.
func Load() (*Catalog, error) {
	return FromFS(sprites, "sprites")
}

func FromFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read sprite dir: %w", err)
	}

	c := &Catalog{resources: make(map[render.AssetID]fyne.Resource, len(entries))}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".svg")
		if e.IsDir() || !ok {
			continue
		}
		id, err := render.ParseAssetID(name)
		if err != nil {
			return nil, err
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("unable to read sprite %s: %w", e.Name(), err)
		}
		c.resources[id] = &fyne.StaticResource{
			StaticName:    e.Name(),
			StaticContent: b,
		}
	}

	for _, id := range render.All() {
		if _, ok := c.resources[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAsset, id)
		}
	}
	return c, nil
}

func (c *Catalog) Lookup(id render.AssetID) (fyne.Resource, error) {
	res, ok := c.resources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingAsset, id)
	}
	return res, nil
}

// MustLookup panics on a missing asset.
func (c *Catalog) MustLookup(id render.AssetID) fyne.Resource {
	res, err := c.Lookup(id)
	if err != nil {
		panic(err)
	}
	return res
}

func (c *Catalog) Len() int {
	return len(c.resources)
}
