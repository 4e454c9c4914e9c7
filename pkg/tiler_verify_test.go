package pkg

import (
	"testing"

	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/stretchr/testify/assert"
)

func TestVerifyTileSetDetectsErrorInversion(t *testing.T) {
	root := lod.NewNode(lod.KindGroup, nil, 10, false)
	root.AddChild(leafTree("a", 0, 1, 20))
	lod.ComputeBoundingVolumes(root)

	assert.ErrorIs(t, VerifyTileSet(lod.NewTileSet(root, 500)), tiler.ErrInvalidTileSet)
}

func TestVerifyTileSetDetectsEscapingVolume(t *testing.T) {
	root := lod.NewNode(lod.KindGroup, nil, 10, false)
	root.AddChild(leafTree("a", 0, 1, 1))
	lod.ComputeBoundingVolumes(root)
	root.AddChild(leafTree("b", 5, 6, 1))

	assert.ErrorIs(t, VerifyTileSet(lod.NewTileSet(root, 500)), tiler.ErrInvalidTileSet)
}

func TestVerifyTileSetRootAboveTileset(t *testing.T) {
	root := leafTree("a", 0, 1, 10)
	assert.ErrorIs(t, VerifyTileSet(lod.NewTileSet(root, 5)), tiler.ErrInvalidTileSet)
	assert.NoError(t, VerifyTileSet(lod.NewTileSet(root, 10)))
}

func TestVerifyTileSetDetectsEmptyLeaf(t *testing.T) {
	root := lod.NewNode(lod.KindGroup, nil, 10, false)
	root.AddChild(leafTree("a", 0, 1, 1))
	root.AddChild(lod.NewNode(lod.KindGroup, nil, 5, false))
	tileset := lod.NewTileSet(root, 500)

	err := VerifyTileSet(tileset)
	assert.ErrorIs(t, err, tiler.ErrInvalidTileSet)
	assert.Contains(t, err.Error(), "empty group leaf")
}
