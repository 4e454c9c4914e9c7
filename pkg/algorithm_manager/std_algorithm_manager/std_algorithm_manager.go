package std_algorithm_manager

import (
	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/city_tiler/internal/grouping"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/ecopia-map/city_tiler/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *tiler.TilerOptions
	coordinateConverter converters.CoordinateConverter
}

// Builds a manager converting coordinates with proj4
func NewAlgorithmManager(opts *tiler.TilerOptions) algorithm_manager.AlgorithmManager {
	return NewAlgorithmManagerWithConverter(opts, proj4_coordinate_converter.NewProj4CoordinateConverter())
}

func NewAlgorithmManagerWithConverter(opts *tiler.TilerOptions, converter converters.CoordinateConverter) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:             opts.Copy(),
		coordinateConverter: converter,
	}
}

// Returns the grouping strategy selected by the options, nil for an unknown algorithm
func (am *StandardAlgorithmManager) GetGroupingAlgorithm() grouping.Strategy {
	switch am.options.Algorithm {
	case tiler.KdTree:
		return grouping.NewKdTreeStrategy(am.options.MaxGroupSize)
	case tiler.Cube:
		return grouping.NewCubeStrategy(am.options.CellSize)
	case tiler.Polygon:
		return grouping.NewPolygonStrategy(am.options.Polygons)
	case tiler.Roads:
		return grouping.NewRoadNetworkStrategy(am.options.Roads, am.options.RoadTolerance)
	}
	return nil
}

func (am *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return am.coordinateConverter
}
