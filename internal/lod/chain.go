package lod

import (
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/grouping"
	"github.com/golang/glog"
)

// Builds the chain of nodes of a group, one node per level from coarse to fine, each the
// only child of the previous one. The loa level is skipped when the group has no proxy.
// Bounding volumes are computed before returning.
func BuildChain(group *grouping.Group, levels []Level, keepTexture bool) (*Node, error) {
	if err := ValidateLevels(levels); err != nil {
		return nil, err
	}

	var top, bottom *Node
	for _, level := range levels {
		var node *Node
		switch level.Kind {
		case KindLoa:
			node = buildLoaNode(group, level.GeometricError)
		case KindLod1:
			node = NewNode(KindLod1, boxProxies(group.Features), level.GeometricError, false)
		case KindFull:
			node = NewNode(KindFull, group.Features, level.GeometricError, keepTexture)
		}
		if node == nil {
			continue
		}

		if top == nil {
			top = node
		} else {
			bottom.AddChild(node)
		}
		bottom = node
	}

	ComputeBoundingVolumes(top)
	return top, nil
}

func buildLoaNode(group *grouping.Group, geometricError float64) *Node {
	proxy := group.ProxyFeature()
	if proxy == nil || !proxy.HasGeometry() {
		glog.V(2).Infof("group of %d features has no proxy, skipping the loa level", group.Features.Len())
		return nil
	}
	return NewNode(KindLoa, data.NewFeatureList([]*data.Feature{proxy}, group.Features.Materials()...), geometricError, false)
}

// Replaces every feature by the 12 triangles of its bounding box
func boxProxies(features *data.FeatureList) *data.FeatureList {
	boxes := make([]*data.Feature, 0, features.Len())
	for _, feature := range features.Features() {
		box := feature.GetBoundingBox()
		if box == nil {
			continue
		}
		proxy := data.NewFeature(feature.ID, feature.Class, geometry.BoxTriangles(box), feature.Properties)
		proxy.ParentID = feature.ParentID
		proxy.MaterialIndex = feature.MaterialIndex
		boxes = append(boxes, proxy)
	}
	return data.NewFeatureList(boxes, features.Materials()...)
}

// Computes the bounding volume of every node below node, bottom up, as the union of its
// own content and of its children volumes. Returns the volume of node.
func ComputeBoundingVolumes(node *Node) *geometry.BoundingVolumeBox {
	if node == nil {
		return nil
	}

	volumes := make([]*geometry.BoundingVolumeBox, 0, len(node.Children)+1)
	volumes = append(volumes, contentVolume(node.Features))
	for _, child := range node.Children {
		volumes = append(volumes, ComputeBoundingVolumes(child))
	}
	node.BoundingVolume = geometry.Aggregate(volumes...)
	return node.BoundingVolume
}

func contentVolume(features *data.FeatureList) *geometry.BoundingVolumeBox {
	if features == nil {
		return nil
	}
	volumes := make([]*geometry.BoundingVolumeBox, 0, features.Len())
	for _, feature := range features.Features() {
		volumes = append(volumes, geometry.ComputeLeaf(feature.GetTriangles()))
	}
	return geometry.Aggregate(volumes...)
}
