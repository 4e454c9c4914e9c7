package lod

import (
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
)

type ITree interface {
	GetRootNode() INode
	// Geometric error above the root, the one of the whole tree
	GetGeometricError() float64
}

type INode interface {
	IsRoot() bool
	IsLeaf() bool
	GetKind() Kind
	GetFeatures() *data.FeatureList
	GetChildren() []INode
	GetParent() INode
	ComputeGeometricError() float64
	GetBoundingVolume() *geometry.BoundingVolumeBox
}
