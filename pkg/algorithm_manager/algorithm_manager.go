package algorithm_manager

import (
	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/grouping"
)

type AlgorithmManager interface {
	GetGroupingAlgorithm() grouping.Strategy
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
}
