package data

import (
	"errors"
	"testing"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle(offset geometry.Coordinate) []geometry.Triangle {
	return []geometry.Triangle{
		geometry.Triangle{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 1}}.Translate(offset),
	}
}

func TestSetTrianglesNeverAliases(t *testing.T) {
	triangles := unitTriangle(geometry.Coordinate{})
	feature := NewFeature("a", "building", triangles, nil)

	triangles[0][0].X = 100
	assert.Equal(t, 0.0, feature.GetTriangles()[0][0].X)
	assert.Equal(t, geometry.Coordinate{X: 0.5, Y: 0.5, Z: 0.5}, feature.GetCentroid())
}

func TestSliceAndConcatShareFeatures(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	b := NewFeature("b", "building", unitTriangle(geometry.Coordinate{X: 2}), nil)
	c := NewFeature("c", "building", unitTriangle(geometry.Coordinate{X: 4}), nil)
	list := NewFeatureList([]*Feature{a, b, c})

	head := list.Slice(0, 1)
	tail := list.Slice(1, 3)
	require.Equal(t, 1, head.Len())
	require.Equal(t, 2, tail.Len())
	assert.Same(t, a, head.At(0))

	joined := tail.Concat(head)
	assert.Equal(t, []*Feature{b, c, a}, joined.Features())
	assert.Same(t, b, joined.At(0))
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, []Material{DefaultMaterial()}, joined.Materials())
}

func TestWithGeometryDropsDegenerateFeatures(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	empty := NewFeature("empty", "building", nil, nil)
	list := NewFeatureList([]*Feature{empty, a})

	filtered := list.WithGeometry()
	assert.Equal(t, []*Feature{a}, filtered.Features())
	assert.False(t, empty.HasGeometry())
	assert.Nil(t, empty.GetBoundingBox())
}

func TestTranslateAndScale(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	list := NewFeatureList([]*Feature{a})

	list.Translate(geometry.Coordinate{X: 1, Y: 1})
	assert.Equal(t, []float64{-1, 0, -1, 0, 0, 1}, a.GetBoundingBox().GetAsArray())

	list.Scale(2)
	assert.Equal(t, []float64{-1.5, 0.5, -1.5, 0.5, -0.5, 1.5}, a.GetBoundingBox().GetAsArray())
}

func TestChangeCRS(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	list := NewFeatureList([]*Feature{a})

	err := list.ChangeCRS(converters.NewOffsetCoordinateConverter(geometry.Coordinate{Z: 10}), 3946, 4978)
	require.NoError(t, err)
	assert.Equal(t, 10.5, a.GetCentroid().Z)
}

// Fails on every vertex above a height
type ceilingConverter struct {
	ceiling float64
}

func (c ceilingConverter) ConvertCoordinateSrid(_ int, _ int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	if coord.Z > c.ceiling {
		return coord, errors.New("out of range")
	}
	return geometry.Coordinate{X: coord.X + 100, Y: coord.Y, Z: coord.Z}, nil
}

func (c ceilingConverter) Cleanup() {}

func TestChangeCRSLeavesFeaturesOnError(t *testing.T) {
	low := NewFeature("low", "building", unitTriangle(geometry.Coordinate{}), nil)
	high := NewFeature("high", "building", unitTriangle(geometry.Coordinate{Z: 50}), nil)
	list := NewFeatureList([]*Feature{low, high})

	err := list.ChangeCRS(ceilingConverter{ceiling: 10}, 3946, 4978)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[high]")
	assert.Equal(t, unitTriangle(geometry.Coordinate{}), low.GetTriangles())
	assert.Equal(t, []float64{0, 1, 0, 1, 0, 1}, low.GetBoundingBox().GetAsArray())
	assert.Equal(t, unitTriangle(geometry.Coordinate{Z: 50}), high.GetTriangles())

	require.NoError(t, list.ChangeCRS(ceilingConverter{ceiling: 100}, 3946, 4978))
	assert.Equal(t, []float64{100, 101, 0, 1, 0, 1}, low.GetBoundingBox().GetAsArray())
	assert.Equal(t, 100.0, high.GetTriangles()[0][0].X)
}

func TestAllHaveTexture(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	b := NewFeature("b", "building", unitTriangle(geometry.Coordinate{}), nil)
	a.Texture = &Texture{URI: "a.jpg"}
	assert.False(t, NewFeatureList([]*Feature{a, b}).AllHaveTexture())

	b.Texture = &Texture{URI: "b.jpg"}
	assert.True(t, NewFeatureList([]*Feature{a, b}).AllHaveTexture())
}

type mapProvider map[string]*Feature

func (p mapProvider) ProvideGeometry(id string) (*Feature, error) {
	feature, ok := p[id]
	if !ok {
		return nil, errors.New("unknown id")
	}
	return feature, nil
}

func TestCollectFeatures(t *testing.T) {
	a := NewFeature("a", "building", unitTriangle(geometry.Coordinate{}), nil)
	b := NewFeature("b", "building", unitTriangle(geometry.Coordinate{}), nil)
	provider := mapProvider{"a": a, "b": b}

	list, err := CollectFeatures(provider, []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []*Feature{b, a}, list.Features())

	_, err = CollectFeatures(provider, []string{"c"})
	assert.Error(t, err)
}
