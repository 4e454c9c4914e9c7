package geometry

import "math"

// A 3D point or vector expressed in the working reference system of the features
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

// One facet of a triangle soup
type Triangle [3]Coordinate

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

func (c Coordinate) Scale(f float64) Coordinate {
	return Coordinate{X: c.X * f, Y: c.Y * f, Z: c.Z * f}
}

// Componentwise min
func (c Coordinate) Min(o Coordinate) Coordinate {
	return Coordinate{X: math.Min(c.X, o.X), Y: math.Min(c.Y, o.Y), Z: math.Min(c.Z, o.Z)}
}

// Componentwise max
func (c Coordinate) Max(o Coordinate) Coordinate {
	return Coordinate{X: math.Max(c.X, o.X), Y: math.Max(c.Y, o.Y), Z: math.Max(c.Z, o.Z)}
}

func (c Coordinate) AsArray() [3]float64 {
	return [3]float64{c.X, c.Y, c.Z}
}

// Returns a copy of the triangle translated by the given offset
func (t Triangle) Translate(offset Coordinate) Triangle {
	return Triangle{t[0].Add(offset), t[1].Add(offset), t[2].Add(offset)}
}
