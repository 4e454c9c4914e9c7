package geometry

import "math"

// Axis aligned bounding box. Mid values are kept in sync with min and max by the constructors.
type BoundingBox struct {
	Xmin, Xmax       float64
	Ymin, Ymax       float64
	Zmin, Zmax       float64
	Xmid, Ymid, Zmid float64
}

// Builds a bounding box from the given extrema
func NewBoundingBox(minX, maxX, minY, maxY, minZ, maxZ float64) *BoundingBox {
	return &BoundingBox{
		Xmin: minX,
		Xmax: maxX,
		Ymin: minY,
		Ymax: maxY,
		Zmin: minZ,
		Zmax: maxZ,
		Xmid: (minX + maxX) / 2,
		Ymid: (minY + maxY) / 2,
		Zmid: (minZ + maxZ) / 2,
	}
}

func NewBoundingBoxFromMinMax(min, max Coordinate) *BoundingBox {
	return NewBoundingBox(min.X, max.X, min.Y, max.Y, min.Z, max.Z)
}

// Computes the extrema of the vertices of the given triangles. Returns nil if there are no triangles.
func NewBoundingBoxFromTriangles(triangles []Triangle) *BoundingBox {
	if len(triangles) == 0 {
		return nil
	}
	min := Coordinate{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max := Coordinate{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, triangle := range triangles {
		for _, vertex := range triangle {
			min = min.Min(vertex)
			max = max.Max(vertex)
		}
	}
	return NewBoundingBoxFromMinMax(min, max)
}

func (b *BoundingBox) Min() Coordinate {
	return Coordinate{X: b.Xmin, Y: b.Ymin, Z: b.Zmin}
}

func (b *BoundingBox) Max() Coordinate {
	return Coordinate{X: b.Xmax, Y: b.Ymax, Z: b.Zmax}
}

func (b *BoundingBox) Center() Coordinate {
	return Coordinate{X: b.Xmid, Y: b.Ymid, Z: b.Zmid}
}

// Returns a new box enclosing both boxes. A nil operand is ignored.
func (b *BoundingBox) Merge(other *BoundingBox) *BoundingBox {
	if b == nil {
		return other
	}
	if other == nil {
		return b
	}
	return NewBoundingBoxFromMinMax(b.Min().Min(other.Min()), b.Max().Max(other.Max()))
}

// True if other lies within b, borders included
func (b *BoundingBox) Contains(other *BoundingBox) bool {
	return b.Xmin <= other.Xmin && b.Ymin <= other.Ymin && b.Zmin <= other.Zmin &&
		b.Xmax >= other.Xmax && b.Ymax >= other.Ymax && b.Zmax >= other.Zmax
}

// Returns the box as [minX, maxX, minY, maxY, minZ, maxZ]
func (b *BoundingBox) GetAsArray() []float64 {
	return []float64{b.Xmin, b.Xmax, b.Ymin, b.Ymax, b.Zmin, b.Zmax}
}
