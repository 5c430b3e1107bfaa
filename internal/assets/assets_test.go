package assets

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cells/internal/render"
)

func TestLoadResolvesEveryAsset(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, len(render.All()), c.Len())

	for _, id := range render.All() {
		res, err := c.Lookup(id)
		require.NoError(t, err, id.String())
		assert.Equal(t, id.String()+".svg", res.Name())
		assert.NotEmpty(t, res.Content())
	}
}

func TestLookupMissing(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	id := render.AssetID{Kind: render.Hint, Hint: 9}
	_, err = c.Lookup(id)
	assert.ErrorIs(t, err, ErrMissingAsset)
	assert.ErrorContains(t, err, "minesweeper_9_light")

	assert.Panics(t, func() { c.MustLookup(id) })
	assert.NotPanics(t, func() { c.MustLookup(render.AssetID{Kind: render.Flag}) })
}

func TestFromFSIncomplete(t *testing.T) {
	fsys := fstest.MapFS{
		"s/button_light.svg": {Data: []byte("<svg/>")},
		"s/readme.txt":       {Data: []byte("ignored")},
	}
	_, err := FromFS(fsys, "s")
	assert.ErrorIs(t, err, ErrMissingAsset)
}

func TestFromFSUnknownSprite(t *testing.T) {
	fsys := fstest.MapFS{
		"s/minesweeper_9_light.svg": {Data: []byte("<svg/>")},
	}
	_, err := FromFS(fsys, "s")
	assert.ErrorIs(t, err, render.ErrUnknownAsset)
}
