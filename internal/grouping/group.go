package grouping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Raised when a set of groups does not cover its input exactly once
var ErrCoverage = errors.New("groups do not cover the input exactly once")

// Namespace of the deterministic ids given to proxy features
var proxyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("city_tiler/proxy"))

// Aggregated geometry standing for a whole group at coarse levels of detail
type Proxy struct {
	ID         string
	Footprint  orb.Ring // closed ring
	MinZ       float64
	MaxZ       float64
	Properties map[string]interface{}
}

// Contains a sub collection of features and the optional proxy built for them
type Group struct {
	Features           *data.FeatureList
	SimplifiedGeometry *Proxy
	AuxiliaryPoints    []orb.Point // points the proxy footprint is widened to
}

// Partitions a feature list into groups. Every implementation returns groups covering
// the input exhaustively and disjointly.
type Strategy interface {
	Group(features *data.FeatureList) ([]*Group, error)
}

func NewGroup(features *data.FeatureList) *Group {
	return &Group{Features: features}
}

func (g *Group) HasProxy() bool {
	return g.SimplifiedGeometry != nil && len(g.SimplifiedGeometry.Footprint) >= 4
}

// Builds the extruded proxy feature of the group, nil when the group has no proxy.
// Auxiliary points widen the footprint to their convex hull with it.
func (g *Group) ProxyFeature() *data.Feature {
	if !g.HasProxy() {
		return nil
	}
	proxy := g.SimplifiedGeometry

	footprint := proxy.Footprint
	if len(g.AuxiliaryPoints) > 0 {
		points := make([]orb.Point, 0, len(footprint)+len(g.AuxiliaryPoints))
		points = append(points, footprint...)
		points = append(points, g.AuxiliaryPoints...)
		if hull := geometry.ConvexHull(points); hull != nil {
			footprint = hull
		}
	}

	feature := data.NewFeature(proxy.ID, "", geometry.Extrude(footprint, proxy.MinZ, proxy.MaxZ), proxy.Properties)
	if feature.HasGeometry() && g.Features.Len() > 0 {
		feature.MaterialIndex = g.Features.At(0).MaterialIndex
	}
	return feature
}

// Verifies that every feature of input appears in exactly one group and that groups hold
// nothing else
func CheckCoverage(input *data.FeatureList, groups []*Group) error {
	seen := make(map[*data.Feature]int, input.Len())
	for i, group := range groups {
		for _, feature := range group.Features.Features() {
			if previous, ok := seen[feature]; ok {
				return fmt.Errorf("%w: feature [%s] in groups %d and %d", ErrCoverage, feature.ID, previous, i)
			}
			seen[feature] = i
		}
	}
	for _, feature := range input.Features() {
		if _, ok := seen[feature]; !ok {
			return fmt.Errorf("%w: feature [%s] in no group", ErrCoverage, feature.ID)
		}
	}
	if len(seen) != input.Len() {
		return fmt.Errorf("%w: %d grouped features for %d input features", ErrCoverage, len(seen), input.Len())
	}
	return nil
}

func newProxyID(key string) string {
	return uuid.NewSHA1(proxyNamespace, []byte(key)).String()
}

// Averages the numeric properties shared by the features, over the features having them
func averageProperties(features []*data.Feature) map[string]interface{} {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, feature := range features {
		for name, value := range feature.Properties {
			if v, ok := toFloat(value); ok {
				sums[name] += v
				counts[name]++
			}
		}
	}
	if len(sums) == 0 {
		return nil
	}

	names := make([]string, 0, len(sums))
	for name := range sums {
		names = append(names, name)
	}
	sort.Strings(names)

	properties := make(map[string]interface{}, len(names))
	for _, name := range names {
		properties[name] = sums[name] / float64(counts[name])
	}
	return properties
}

func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// Lowest and highest Z of the features
func zRange(features []*data.Feature) (float64, float64) {
	var box *geometry.BoundingBox
	for _, feature := range features {
		box = box.Merge(feature.GetBoundingBox())
	}
	if box == nil {
		return 0, 0
	}
	return box.Zmin, box.Zmax
}
