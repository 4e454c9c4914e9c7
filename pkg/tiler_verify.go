package pkg

import (
	"errors"
	"fmt"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/ecopia-map/city_tiler/pkg/algorithm_manager"
	"github.com/ecopia-map/city_tiler/tools"
	"github.com/golang/glog"
)

// Tiler checking the tree it produced before returning it
type TilerVerify struct {
	tiler ITiler
}

func NewTilerVerify(algorithmManager algorithm_manager.AlgorithmManager) ITiler {
	return &TilerVerify{
		tiler: NewTiler(algorithmManager),
	}
}

func (tilerVerify *TilerVerify) RunTiler(features *data.FeatureList, opts *tiler.TilerOptions) (*Result, error) {
	result, err := tilerVerify.tiler.RunTiler(features, opts)
	if err != nil {
		return nil, err
	}
	if err := VerifyTileSet(result.TileSet); err != nil {
		return nil, err
	}
	glog.Infoln("> tileset verified")
	return result, nil
}

// Checks every node of the tree: each one needs a bounding volume enclosing those of its
// children, and errors strictly decrease from parents to children. All problems found are reported.
func VerifyTileSet(tree lod.ITree) error {
	root := tree.GetRootNode()
	if root == nil {
		return fmt.Errorf("%w: no root", tiler.ErrInvalidTileSet)
	}

	var errs []error
	if root.ComputeGeometricError() > tree.GetGeometricError() && !tools.IsFloatEqual(root.ComputeGeometricError(), tree.GetGeometricError()) {
		errs = append(errs, fmt.Errorf("%w: root error %v above tileset error %v", tiler.ErrInvalidTileSet,
			root.ComputeGeometricError(), tree.GetGeometricError()))
	}

	nodes, checked := []lod.INode{root}, 0
	for len(nodes) > 0 {
		node := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		checked++

		volume := node.GetBoundingVolume()
		switch {
		case volume != nil:
		case node.GetFeatures().Len() > 0:
			errs = append(errs, fmt.Errorf("%w: %s node with content has no bounding volume", tiler.ErrInvalidTileSet, node.GetKind()))
		case len(node.GetChildren()) == 0:
			errs = append(errs, fmt.Errorf("%w: empty %s leaf without content or bounding volume", tiler.ErrInvalidTileSet, node.GetKind()))
		default:
			errs = append(errs, fmt.Errorf("%w: %s node has no bounding volume", tiler.ErrInvalidTileSet, node.GetKind()))
		}
		for _, child := range node.GetChildren() {
			if child.ComputeGeometricError() >= node.ComputeGeometricError() {
				errs = append(errs, fmt.Errorf("%w: %s child error %v not below %s parent error %v", tiler.ErrInvalidTileSet,
					child.GetKind(), child.ComputeGeometricError(), node.GetKind(), node.ComputeGeometricError()))
			}
			if childVolume := child.GetBoundingVolume(); childVolume != nil && (volume == nil || !volume.Contains(childVolume)) {
				errs = append(errs, fmt.Errorf("%w: %s child volume escapes its %s parent", tiler.ErrInvalidTileSet,
					child.GetKind(), node.GetKind()))
			}
			nodes = append(nodes, child)
		}
	}

	glog.V(1).Infof("verified %d nodes, %d problems", checked, len(errs))
	return errors.Join(errs...)
}
