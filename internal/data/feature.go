package data

import (
	"github.com/ecopia-map/city_tiler/internal/geometry"
)

// Image applied to a feature. The engine only checks for its presence, the bytes are
// carried through untouched for the serializer.
type Texture struct {
	URI  string
	Data []byte
}

// Contains one tileable object: its triangle soup, semantic class, attributes and
// the derived bounding box and centroid
type Feature struct {
	ID         string
	ParentID   string // semantic parent, empty for roots
	Class      string
	Properties map[string]interface{}
	Texture    *Texture

	// index in the material palette of the owning FeatureList
	MaterialIndex int

	triangles []geometry.Triangle
	box       *geometry.BoundingBox
	centroid  geometry.Coordinate
}

// Builds a new Feature and computes its box and centroid from the given triangles
func NewFeature(id string, class string, triangles []geometry.Triangle, properties map[string]interface{}) *Feature {
	feature := &Feature{
		ID:         id,
		Class:      class,
		Properties: properties,
	}
	feature.SetTriangles(triangles)
	return feature
}

// Replaces the triangle list with a copy of the given one and recomputes box and centroid.
// The caller's slice is never aliased.
func (f *Feature) SetTriangles(triangles []geometry.Triangle) {
	f.triangles = make([]geometry.Triangle, len(triangles))
	copy(f.triangles, triangles)
	f.SetBox()
}

// Recomputes the bounding box and centroid from the triangles
func (f *Feature) SetBox() {
	f.box = geometry.NewBoundingBoxFromTriangles(f.triangles)
	if f.box == nil {
		f.centroid = geometry.Coordinate{}
		return
	}
	f.centroid = f.box.Center()
}

func (f *Feature) GetTriangles() []geometry.Triangle {
	return f.triangles
}

func (f *Feature) GetBoundingBox() *geometry.BoundingBox {
	return f.box
}

func (f *Feature) GetCentroid() geometry.Coordinate {
	return f.centroid
}

// A feature without triangles carries semantics only and never produces a tile
func (f *Feature) HasGeometry() bool {
	return len(f.triangles) > 0
}

func (f *Feature) HasTexture() bool {
	return f.Texture != nil
}

// Height of the feature box
func (f *Feature) Height() float64 {
	if f.box == nil {
		return 0
	}
	return f.box.Zmax - f.box.Zmin
}

// Applies fn to every vertex, replacing the triangle list
func (f *Feature) transformVertices(fn func(geometry.Coordinate) (geometry.Coordinate, error)) error {
	triangles, err := f.transformedTriangles(fn)
	if err != nil {
		return err
	}
	f.replaceTriangles(triangles)
	return nil
}

// Triangles with fn applied to every vertex, the feature is left untouched
func (f *Feature) transformedTriangles(fn func(geometry.Coordinate) (geometry.Coordinate, error)) ([]geometry.Triangle, error) {
	triangles := make([]geometry.Triangle, len(f.triangles))
	for i, triangle := range f.triangles {
		for j, vertex := range triangle {
			v, err := fn(vertex)
			if err != nil {
				return nil, err
			}
			triangles[i][j] = v
		}
	}
	return triangles, nil
}

func (f *Feature) replaceTriangles(triangles []geometry.Triangle) {
	f.triangles = triangles
	f.SetBox()
}
