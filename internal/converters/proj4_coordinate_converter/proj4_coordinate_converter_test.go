package proj4_coordinate_converter

import (
	"testing"

	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSridIsPassthrough(t *testing.T) {
	converter := NewProj4CoordinateConverter()
	defer converter.Cleanup()

	coord := geometry.Coordinate{X: 1843000.5, Y: 5175000.25, Z: 170}
	converted, err := converter.ConvertCoordinateSrid(3946, 3946, coord)
	require.NoError(t, err)
	assert.Equal(t, coord, converted)
}

func TestUnknownSridFails(t *testing.T) {
	converter := NewProj4CoordinateConverter()
	defer converter.Cleanup()

	coord := geometry.Coordinate{X: 1, Y: 2, Z: 3}
	converted, err := converter.ConvertCoordinateSrid(999999, 4326, coord)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EPSG:999999")
	assert.Equal(t, coord, converted)
}

func TestWgs84ToWebMercator(t *testing.T) {
	converter := NewProj4CoordinateConverter()
	defer converter.Cleanup()

	origin, err := converter.ConvertCoordinateSrid(4326, 3857, geometry.Coordinate{})
	require.NoError(t, err)
	assert.InDelta(t, 0, origin.X, 1e-6)
	assert.InDelta(t, 0, origin.Y, 1e-6)

	// x = R * lon, y = R * ln(tan(pi/4 + lat/2)) on the 6378137 m sphere
	point, err := converter.ConvertCoordinateSrid(4326, 3857, geometry.Coordinate{X: 10, Y: 45, Z: 12})
	require.NoError(t, err)
	assert.InDelta(t, 1113194.9079, point.X, 1e-2)
	assert.InDelta(t, 5621521.4862, point.Y, 1e-2)
	assert.InDelta(t, 12, point.Z, 1e-6)

	back, err := converter.ConvertCoordinateSrid(3857, 4326, point)
	require.NoError(t, err)
	assert.InDelta(t, 10, back.X, 1e-7)
	assert.InDelta(t, 45, back.Y, 1e-7)
}

func TestCleanupReleasesProjections(t *testing.T) {
	converter := NewProj4CoordinateConverter().(*proj4CoordinateConverter)

	_, err := converter.ConvertCoordinateSrid(4326, 3857, geometry.Coordinate{X: 4.85, Y: 45.76})
	require.NoError(t, err)
	assert.Len(t, converter.projections, 2)

	converter.Cleanup()
	assert.Empty(t, converter.projections)

	// projections are initialized again on demand
	_, err = converter.ConvertCoordinateSrid(4326, 3857, geometry.Coordinate{X: 4.85, Y: 45.76})
	require.NoError(t, err)
	converter.Cleanup()
}
