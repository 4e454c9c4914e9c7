package grouping

import (
	"fmt"
	"math"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/golang/glog"
	"github.com/paulmach/orb"
)

// Groups features whose centroids snap to the same grid node. Each group gets a proxy
// made of the convex hull of the member footprints, raised from the lowest member base
// by the mean member height.
type CubeStrategy struct {
	CellSize geometry.Coordinate
}

func NewCubeStrategy(cellSize geometry.Coordinate) *CubeStrategy {
	return &CubeStrategy{CellSize: cellSize}
}

type cellKey [3]int64

func (k cellKey) String() string {
	return fmt.Sprintf("cube:%d_%d_%d", k[0], k[1], k[2])
}

func (s *CubeStrategy) Group(features *data.FeatureList) ([]*Group, error) {
	if s.CellSize.X <= 0 || s.CellSize.Y <= 0 || s.CellSize.Z <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive on every axis, got %+v", tiler.ErrInvalidOptions, s.CellSize)
	}

	// cells in order of first appearance
	var keys []cellKey
	members := make(map[cellKey][]*data.Feature)
	for _, feature := range features.Features() {
		key := s.snap(feature.GetCentroid())
		if _, ok := members[key]; !ok {
			keys = append(keys, key)
		}
		members[key] = append(members[key], feature)
	}

	groups := make([]*Group, 0, len(keys))
	for _, key := range keys {
		cell := members[key]
		group := NewGroup(data.NewFeatureList(cell, features.Materials()...))
		group.SimplifiedGeometry = cubeProxy(key, cell)
		groups = append(groups, group)
	}

	glog.V(1).Infof("cube grouping put %d features in %d cells", features.Len(), len(groups))
	return groups, nil
}

// Index of the nearest multiple of the cell size on each axis
func (s *CubeStrategy) snap(c geometry.Coordinate) cellKey {
	return cellKey{
		int64(math.Round(c.X / s.CellSize.X)),
		int64(math.Round(c.Y / s.CellSize.Y)),
		int64(math.Round(c.Z / s.CellSize.Z)),
	}
}

func cubeProxy(key cellKey, cell []*data.Feature) *Proxy {
	var corners []orb.Point
	var height float64
	for _, feature := range cell {
		corners = append(corners, geometry.FootprintCorners(feature.GetBoundingBox())...)
		height += feature.Height()
	}
	footprint := geometry.ConvexHull(corners)
	if footprint == nil {
		return nil
	}

	minZ, _ := zRange(cell)
	return &Proxy{
		ID:         newProxyID(key.String()),
		Footprint:  footprint,
		MinZ:       minZ,
		MaxZ:       minZ + height/float64(len(cell)),
		Properties: averageProperties(cell),
	}
}
