package converters

import "github.com/ecopia-map/city_tiler/internal/geometry"

// Converter that ignores reference systems and only shifts coordinates by a fixed offset.
// Used when the source and target systems only differ by a local origin.
type OffsetCoordinateConverter struct {
	Offset geometry.Coordinate
}

func NewOffsetCoordinateConverter(offset geometry.Coordinate) CoordinateConverter {
	return &OffsetCoordinateConverter{
		Offset: offset,
	}
}

func (c *OffsetCoordinateConverter) ConvertCoordinateSrid(_ int, _ int, coord geometry.Coordinate) (geometry.Coordinate, error) {
	return coord.Add(c.Offset), nil
}

func (c *OffsetCoordinateConverter) Cleanup() {}
