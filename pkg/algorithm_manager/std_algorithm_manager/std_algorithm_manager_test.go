package std_algorithm_manager

import (
	"testing"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/grouping"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestGroupingAlgorithmFollowsOptions(t *testing.T) {
	converter := converters.NewOffsetCoordinateConverter(geometry.Coordinate{})
	opts := tiler.DefaultOptions()

	assert.IsType(t, &grouping.KdTreeStrategy{}, NewAlgorithmManagerWithConverter(opts, converter).GetGroupingAlgorithm())

	opts.Algorithm = tiler.Cube
	assert.IsType(t, &grouping.CubeStrategy{}, NewAlgorithmManagerWithConverter(opts, converter).GetGroupingAlgorithm())

	opts.Algorithm = tiler.Polygon
	opts.Polygons = []orb.Polygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}
	manager := NewAlgorithmManagerWithConverter(opts, converter)
	opts.Polygons[0][0][0] = orb.Point{5, 5}
	strategy, ok := manager.GetGroupingAlgorithm().(*grouping.PolygonStrategy)
	assert.True(t, ok)
	assert.Equal(t, orb.Point{0, 0}, strategy.Polygons[0][0][0])

	opts.Algorithm = tiler.Roads
	assert.IsType(t, &grouping.RoadNetworkStrategy{}, NewAlgorithmManagerWithConverter(opts, converter).GetGroupingAlgorithm())

	opts.Algorithm = "HEXAGONS"
	assert.Nil(t, NewAlgorithmManagerWithConverter(opts, converter).GetGroupingAlgorithm())
	assert.Same(t, converter, NewAlgorithmManagerWithConverter(opts, converter).GetCoordinateConverterAlgorithm())
}
