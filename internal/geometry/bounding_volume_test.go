package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxVolume(minX, minY, minZ, maxX, maxY, maxZ float64) *BoundingVolumeBox {
	return NewBoundingVolumeBox(NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ))
}

func TestAggregateEnclosesChildren(t *testing.T) {
	a := boxVolume(-1, -1, -1, 1, 1, 1)
	b := boxVolume(0, 0, 0, 2, 2, 2)

	union := Aggregate(a, b)
	require.NotNil(t, union)

	bbox := union.ToBoundingBox()
	assert.Equal(t, []float64{-1, 2, -1, 2, -1, 2}, bbox.GetAsArray())
	assert.True(t, union.Contains(a))
	assert.True(t, union.Contains(b))
	assert.False(t, a.Contains(union))
}

func TestAggregateSkipsNil(t *testing.T) {
	assert.Nil(t, Aggregate())
	assert.Nil(t, Aggregate(nil, nil))

	a := boxVolume(0, 0, 0, 1, 1, 1)
	assert.Equal(t, a, Aggregate(nil, a))
}

func TestComputeLeafFromTriangles(t *testing.T) {
	triangles := []Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 2, Z: 0}},
		{{X: 0, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 3}, {X: 0, Y: 2, Z: 0}},
	}
	leaf := ComputeLeaf(triangles)
	require.NotNil(t, leaf)
	assert.Equal(t, Coordinate{X: 1.5, Y: 1, Z: 1.5}, leaf.Center)
	assert.Equal(t, Coordinate{X: 2.5}, leaf.HalfAxes[0])
	assert.Equal(t, Coordinate{Y: 1}, leaf.HalfAxes[1])
	assert.Equal(t, Coordinate{Z: 1.5}, leaf.HalfAxes[2])

	assert.Nil(t, ComputeLeaf(nil))
}

func TestAsArrayRoundsOnlyAtTheEnd(t *testing.T) {
	volume := boxVolume(0.00011, 0, 0, 1.23456, 1, 1)
	values := volume.AsArray()
	require.Len(t, values, 12)
	assert.Equal(t, 0.617, values[0])
	assert.Equal(t, 0.617, values[3])

	// the volume itself keeps full precision
	assert.InDelta(t, 0.617335, volume.Center.X, 1e-12)
}

func TestConvexHull(t *testing.T) {
	points := []orb.Point{{0, 0}, {2, 0}, {1, 1}, {2, 2}, {0, 2}, {1, 0}}
	hull := ConvexHull(points)
	require.Len(t, hull, 5)
	assert.Equal(t, hull[0], hull[len(hull)-1])
	assert.Equal(t, orb.CCW, hull.Orientation())
	assert.NotContains(t, hull, orb.Point{1, 1})

	assert.Nil(t, ConvexHull([]orb.Point{{0, 0}, {1, 1}, {2, 2}}))
}

func TestTriangulateConcavePolygon(t *testing.T) {
	// L shaped footprint, clockwise on purpose
	ring := orb.Ring{{0, 0}, {0, 2}, {1, 2}, {1, 1}, {2, 1}, {2, 0}, {0, 0}}
	pts, faces := Triangulate(ring)
	require.Len(t, pts, 6)
	require.Len(t, faces, 4)

	area := 0.0
	for _, f := range faces {
		tri := []orb.Point{pts[f[0]], pts[f[1]], pts[f[2]]}
		a := signedArea(tri)
		assert.Greater(t, a, 0.0)
		area += a
	}
	assert.InDelta(t, 3.0, area, 1e-9)
}

func TestBoxTriangles(t *testing.T) {
	bbox := NewBoundingBox(0, 1, 0, 2, 0, 3)
	triangles := BoxTriangles(bbox)
	assert.Len(t, triangles, 12)
	assert.Equal(t, bbox.GetAsArray(), NewBoundingBoxFromTriangles(triangles).GetAsArray())
}
