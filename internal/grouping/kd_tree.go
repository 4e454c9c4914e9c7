package grouping

import (
	"fmt"
	"sort"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/golang/glog"
)

// A pending set of features and the depth it was split at
type kdSpan struct {
	features []*data.Feature
	depth    int
}

// Splits the features by the median of their centroids, X at even depths and Y at odd
// depths, until the lower half holds at most maxGroupSize features. Only the planar
// centroid is considered. The returned lists are in depth first order, lower half first.
func Partition(features *data.FeatureList, maxGroupSize int) ([]*data.FeatureList, error) {
	if maxGroupSize < 1 {
		return nil, fmt.Errorf("%w: max group size must be greater than 0, got %d", tiler.ErrInvalidOptions, maxGroupSize)
	}
	if features.Len() == 0 {
		return nil, nil
	}

	materials := features.Materials()
	var groups []*data.FeatureList

	// explicit stack, the top is always the next span in recursive order
	stack := []kdSpan{{features: features.Features(), depth: 0}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sorted := make([]*data.Feature, len(span.features))
		copy(sorted, span.features)
		axis := span.depth % 2
		sort.SliceStable(sorted, func(i, j int) bool {
			ci, cj := sorted[i].GetCentroid(), sorted[j].GetCentroid()
			if axis == 0 {
				return ci.X < cj.X
			}
			return ci.Y < cj.Y
		})

		mid := len(sorted) / 2
		lower, upper := sorted[:mid], sorted[mid:]
		if len(lower) > maxGroupSize {
			stack = append(stack,
				kdSpan{features: upper, depth: span.depth + 1},
				kdSpan{features: lower, depth: span.depth + 1},
			)
			continue
		}

		for _, half := range [][]*data.Feature{lower, upper} {
			if len(half) > 0 {
				groups = append(groups, data.NewFeatureList(half, materials...))
			}
		}
	}

	glog.V(1).Infof("kd-tree split %d features into %d groups", features.Len(), len(groups))
	return groups, nil
}

// Groups features with the median split partitioner. Groups carry no proxy.
type KdTreeStrategy struct {
	MaxGroupSize int
}

func NewKdTreeStrategy(maxGroupSize int) *KdTreeStrategy {
	return &KdTreeStrategy{MaxGroupSize: maxGroupSize}
}

func (s *KdTreeStrategy) Group(features *data.FeatureList) ([]*Group, error) {
	lists, err := Partition(features, s.MaxGroupSize)
	if err != nil {
		return nil, err
	}

	groups := make([]*Group, len(lists))
	for i, list := range lists {
		groups[i] = NewGroup(list)
	}
	return groups, nil
}
