package data

import (
	"fmt"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/golang/glog"
)

// Color material referenced by features through their MaterialIndex
type Material struct {
	Name  string
	RGBA  [4]float32
	Metal float32
	Rough float32
}

// Material used when no palette is given
func DefaultMaterial() Material {
	return Material{Name: "default", RGBA: [4]float32{1, 1, 1, 1}, Rough: 1}
}

// Ordered collection of features sharing a material palette. Insertion order is
// preserved, it drives default identifiers and hierarchy positions.
type FeatureList struct {
	features  []*Feature
	materials []Material
}

// Builds a FeatureList with the given palette. An empty palette gets DefaultMaterial.
func NewFeatureList(features []*Feature, materials ...Material) *FeatureList {
	if len(materials) == 0 {
		materials = []Material{DefaultMaterial()}
	}
	list := &FeatureList{
		features:  make([]*Feature, len(features)),
		materials: materials,
	}
	copy(list.features, features)
	return list
}

// Number of features, 0 for a nil list
func (l *FeatureList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.features)
}

func (l *FeatureList) At(i int) *Feature {
	return l.features[i]
}

func (l *FeatureList) Features() []*Feature {
	if l == nil {
		return nil
	}
	return l.features
}

func (l *FeatureList) Materials() []Material {
	return l.materials
}

func (l *FeatureList) Append(features ...*Feature) {
	l.features = append(l.features, features...)
}

// Returns the features in [i, j). Features are shared, not copied.
func (l *FeatureList) Slice(i, j int) *FeatureList {
	return NewFeatureList(l.features[i:j], l.materials...)
}

// Returns a new list holding the features of l followed by those of other, with the palette of l
func (l *FeatureList) Concat(other *FeatureList) *FeatureList {
	features := make([]*Feature, 0, l.Len()+other.Len())
	features = append(features, l.features...)
	features = append(features, other.features...)
	return NewFeatureList(features, l.materials...)
}

// Returns a list with the same palette restricted to the features carrying triangles.
// Dropped features are logged.
func (l *FeatureList) WithGeometry() *FeatureList {
	kept := make([]*Feature, 0, len(l.features))
	for _, feature := range l.features {
		if !feature.HasGeometry() {
			glog.V(1).Infof("degenerate geometry: feature [%s] has no triangles, dropped from tiling", feature.ID)
			continue
		}
		kept = append(kept, feature)
	}
	if dropped := len(l.features) - len(kept); dropped > 0 {
		glog.Warningf("dropped %d feature(s) without geometry", dropped)
	}
	return NewFeatureList(kept, l.materials...)
}

// Mean of the feature centroids
func (l *FeatureList) Centroid() geometry.Coordinate {
	var sum geometry.Coordinate
	if len(l.features) == 0 {
		return sum
	}
	for _, feature := range l.features {
		sum = sum.Add(feature.GetCentroid())
	}
	return sum.Scale(1 / float64(len(l.features)))
}

// Union of the feature boxes, nil when no feature has geometry
func (l *FeatureList) BoundingBox() *geometry.BoundingBox {
	var box *geometry.BoundingBox
	for _, feature := range l.features {
		box = box.Merge(feature.GetBoundingBox())
	}
	return box
}

func (l *FeatureList) AllHaveTexture() bool {
	for _, feature := range l.features {
		if !feature.HasTexture() {
			return false
		}
	}
	return true
}

// Moves every feature by subtracting the offset
func (l *FeatureList) Translate(offset geometry.Coordinate) {
	for _, feature := range l.features {
		_ = feature.transformVertices(func(c geometry.Coordinate) (geometry.Coordinate, error) {
			return c.Sub(offset), nil
		})
	}
}

// Scales every feature around the centroid of the list
func (l *FeatureList) Scale(factor float64) {
	centroid := l.Centroid()
	for _, feature := range l.features {
		_ = feature.transformVertices(func(c geometry.Coordinate) (geometry.Coordinate, error) {
			return c.Sub(centroid).Scale(factor).Add(centroid), nil
		})
	}
}

// Reprojects every feature from sourceSrid to targetSrid. On error no feature is changed.
func (l *FeatureList) ChangeCRS(converter converters.CoordinateConverter, sourceSrid, targetSrid int) error {
	convert := func(c geometry.Coordinate) (geometry.Coordinate, error) {
		return converter.ConvertCoordinateSrid(sourceSrid, targetSrid, c)
	}

	converted := make([][]geometry.Triangle, len(l.features))
	for i, feature := range l.features {
		triangles, err := feature.transformedTriangles(convert)
		if err != nil {
			return fmt.Errorf("feature [%s]: %w", feature.ID, err)
		}
		converted[i] = triangles
	}
	for i, feature := range l.features {
		feature.replaceTriangles(converted[i])
	}
	return nil
}
