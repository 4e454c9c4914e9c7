package pkg

import (
	"testing"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube(id string, min, max float64) *data.Feature {
	box := geometry.NewBoundingBox(min, max, min, max, min, max)
	return data.NewFeature(id, "Building", geometry.BoxTriangles(box), nil)
}

func leafTree(id string, min, max, geometricError float64) *lod.Node {
	node := lod.NewNode(lod.KindFull, data.NewFeatureList([]*data.Feature{cube(id, min, max)}), geometricError, false)
	lod.ComputeBoundingVolumes(node)
	return node
}

func TestMerge(t *testing.T) {
	a, b := leafTree("a", -1, 1, 1), leafTree("b", 0, 2, 5)

	root, err := Merge([]*lod.Node{a, b}, []string{"north", "south"}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, lod.KindGroup, root.Kind)
	assert.Equal(t, 10.0, root.GeometricError)
	assert.False(t, root.HasContent())
	assert.Equal(t, "north", a.SourceLabel)
	assert.Equal(t, "south", b.SourceLabel)
	assert.Same(t, root, a.GetParentNode())
	assert.Equal(t, []float64{-1, 2, -1, 2, -1, 2}, root.BoundingVolume.ToBoundingBox().GetAsArray())

	root, err = Merge([]*lod.Node{leafTree("a", 0, 1, 0)}, []string{"zero"}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, root.GeometricError)

	root, err = Merge([]*lod.Node{leafTree("a", 0, 1, 1)}, []string{"fixed"}, MergeOptions{GeometricError: 42})
	require.NoError(t, err)
	assert.Equal(t, 42.0, root.GeometricError)
}

func TestMergeRejectsBadInput(t *testing.T) {
	_, err := Merge(nil, nil, MergeOptions{})
	assert.ErrorIs(t, err, tiler.ErrInvalidOptions)

	_, err = Merge([]*lod.Node{leafTree("a", 0, 1, 1)}, []string{"a", "b"}, MergeOptions{})
	assert.ErrorIs(t, err, tiler.ErrInvalidOptions)

	_, err = Merge([]*lod.Node{leafTree("a", 0, 1, 5)}, []string{"a"}, MergeOptions{GeometricError: 5})
	assert.ErrorIs(t, err, tiler.ErrInvalidOptions)
}

func TestMergeTileSets(t *testing.T) {
	first := lod.NewTileSet(leafTree("a", -1, 1, 1), 500)
	second := lod.NewTileSet(leafTree("b", 0, 2, 1), 300)

	merged, err := MergeTileSets([]*lod.TileSet{first, second}, []string{"first", "second"}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 500.0, merged.GeometricError)
	assert.Equal(t, "first,second", merged.Extras["sources"])
	assert.NotEmpty(t, merged.Extras["id"])
	assert.NoError(t, VerifyTileSet(merged))

	again, err := MergeTileSets([]*lod.TileSet{
		lod.NewTileSet(leafTree("a", -1, 1, 1), 500),
		lod.NewTileSet(leafTree("b", 0, 2, 1), 300),
	}, []string{"first", "second"}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, merged.Extras["id"], again.Extras["id"])
}

func TestPrepareForMerge(t *testing.T) {
	features := data.NewFeatureList([]*data.Feature{cube("a", 0, 1)})
	converter := converters.NewOffsetCoordinateConverter(geometry.Coordinate{X: 100, Y: 200, Z: 10})

	require.NoError(t, PrepareForMerge(features, converter, 3946, 4978, geometry.Coordinate{X: 100, Y: 200}))
	assert.Equal(t, []float64{0, 1, 0, 1, 10, 11}, features.BoundingBox().GetAsArray())
}
