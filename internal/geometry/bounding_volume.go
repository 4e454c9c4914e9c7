package geometry

import (
	"math"

	"github.com/shopspring/decimal"
)

// Number of decimals kept when a box leaves the engine
const SerializationPrecision = 3

// Oriented box as used by 3D Tiles: a center and three half axis vectors.
// Boxes produced by this package are axis aligned.
type BoundingVolumeBox struct {
	Center   Coordinate
	HalfAxes [3]Coordinate
}

func NewBoundingVolumeBox(bbox *BoundingBox) *BoundingVolumeBox {
	return &BoundingVolumeBox{
		Center: bbox.Center(),
		HalfAxes: [3]Coordinate{
			{X: (bbox.Xmax - bbox.Xmin) / 2},
			{Y: (bbox.Ymax - bbox.Ymin) / 2},
			{Z: (bbox.Zmax - bbox.Zmin) / 2},
		},
	}
}

// Computes the leaf volume of a triangle soup from its vertex extrema
func ComputeLeaf(triangles []Triangle) *BoundingVolumeBox {
	bbox := NewBoundingBoxFromTriangles(triangles)
	if bbox == nil {
		return nil
	}
	return NewBoundingVolumeBox(bbox)
}

// Axis aligned extent of the box. For axis aligned boxes this is exactly min/max.
func (b *BoundingVolumeBox) ToBoundingBox() *BoundingBox {
	var extent Coordinate
	for _, axis := range b.HalfAxes {
		extent.X += math.Abs(axis.X)
		extent.Y += math.Abs(axis.Y)
		extent.Z += math.Abs(axis.Z)
	}
	return NewBoundingBoxFromMinMax(b.Center.Sub(extent), b.Center.Add(extent))
}

// Aggregates the volumes into the minimal axis aligned box enclosing them all. Nil volumes are skipped,
// nil is returned when nothing is left.
func Aggregate(volumes ...*BoundingVolumeBox) *BoundingVolumeBox {
	var union *BoundingBox
	for _, volume := range volumes {
		if volume == nil {
			continue
		}
		union = union.Merge(volume.ToBoundingBox())
	}
	if union == nil {
		return nil
	}
	return NewBoundingVolumeBox(union)
}

// True if other is fully enclosed, with a small tolerance for float noise
func (b *BoundingVolumeBox) Contains(other *BoundingVolumeBox) bool {
	const eps = 1e-9
	outer := b.ToBoundingBox()
	inner := other.ToBoundingBox()
	return outer.Xmin-eps <= inner.Xmin && outer.Ymin-eps <= inner.Ymin && outer.Zmin-eps <= inner.Zmin &&
		outer.Xmax+eps >= inner.Xmax && outer.Ymax+eps >= inner.Ymax && outer.Zmax+eps >= inner.Zmax
}

// Returns the 12 numbers of a 3D Tiles box rounded to SerializationPrecision.
// Rounding happens here only, never while aggregating.
func (b *BoundingVolumeBox) AsArray() []float64 {
	values := []float64{b.Center.X, b.Center.Y, b.Center.Z}
	for _, axis := range b.HalfAxes {
		values = append(values, axis.X, axis.Y, axis.Z)
	}
	return RoundAll(values, SerializationPrecision)
}

// Rounds every value to the given number of decimals
func RoundAll(values []float64, places int32) []float64 {
	rounded := make([]float64, len(values))
	for i, v := range values {
		rounded[i], _ = decimal.NewFromFloat(v).Round(places).Float64()
	}
	return rounded
}
