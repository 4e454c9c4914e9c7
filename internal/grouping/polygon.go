package grouping

import (
	"fmt"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/golang/glog"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Groups features by the first polygon containing their centroid. Features outside every
// polygon end in a trailing group without proxy.
type PolygonStrategy struct {
	Polygons []orb.Polygon
}

func NewPolygonStrategy(polygons []orb.Polygon) *PolygonStrategy {
	return &PolygonStrategy{Polygons: polygons}
}

func (s *PolygonStrategy) Group(features *data.FeatureList) ([]*Group, error) {
	members := make([][]*data.Feature, len(s.Polygons))
	var residual []*data.Feature

	for _, feature := range features.Features() {
		index := s.containingPolygon(feature)
		if index < 0 {
			residual = append(residual, feature)
			continue
		}
		members[index] = append(members[index], feature)
	}

	var groups []*Group
	for i, polygon := range s.Polygons {
		if len(members[i]) == 0 {
			continue
		}
		group := NewGroup(data.NewFeatureList(members[i], features.Materials()...))
		group.SimplifiedGeometry = polygonProxy(i, polygon, members[i])
		group.AuxiliaryPoints = outsidePoints(polygon, members[i])
		groups = append(groups, group)
	}
	if len(residual) > 0 {
		groups = append(groups, NewGroup(data.NewFeatureList(residual, features.Materials()...)))
	}

	glog.V(1).Infof("polygon grouping put %d features in %d groups, %d outside every polygon", features.Len(), len(groups), len(residual))
	return groups, nil
}

// Index of the first polygon containing the feature centroid, -1 if none does
func (s *PolygonStrategy) containingPolygon(feature *data.Feature) int {
	c := feature.GetCentroid()
	point := orb.Point{c.X, c.Y}

	found := -1
	for i, polygon := range s.Polygons {
		if !planar.PolygonContains(polygon, point) {
			continue
		}
		if found >= 0 {
			glog.V(2).Infof("feature [%s] is in polygons %d and %d, keeping %d", feature.ID, found, i, found)
			break
		}
		found = i
	}
	return found
}

func polygonProxy(index int, polygon orb.Polygon, members []*data.Feature) *Proxy {
	if len(polygon) == 0 {
		return nil
	}
	footprint := polygon[0].Clone()
	if len(footprint) > 0 && !footprint.Closed() {
		footprint = append(footprint, footprint[0])
	}

	minZ, maxZ := zRange(members)
	return &Proxy{
		ID:         newProxyID(fmt.Sprintf("polygon:%d:%v", index, polygon.Bound())),
		Footprint:  footprint,
		MinZ:       minZ,
		MaxZ:       maxZ,
		Properties: averageProperties(members),
	}
}

// Footprint corners of the members lying outside the polygon
func outsidePoints(polygon orb.Polygon, members []*data.Feature) []orb.Point {
	var points []orb.Point
	for _, feature := range members {
		for _, corner := range geometry.FootprintCorners(feature.GetBoundingBox()) {
			if !planar.PolygonContains(polygon, corner) {
				points = append(points, corner)
			}
		}
	}
	return points
}
