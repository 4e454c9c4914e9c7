package pkg

import (
	"fmt"
	"strconv"

	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/grouping"
	"github.com/ecopia-map/city_tiler/internal/hierarchy"
	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/pipeline"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/ecopia-map/city_tiler/pkg/algorithm_manager"
	"github.com/ecopia-map/city_tiler/tools"
	"github.com/golang/glog"
)

type TilerIndex struct {
	algorithmManager algorithm_manager.AlgorithmManager
}

func NewTiler(algorithmManager algorithm_manager.AlgorithmManager) ITiler {
	return &TilerIndex{
		algorithmManager: algorithmManager,
	}
}

// Starts the tiling process: places the features with geometry in the output reference
// system, groups them, builds the chain of every group under a common root and encodes
// the hierarchy of all the features. Vertices of the input features are modified in place.
func (tilerIndex *TilerIndex) RunTiler(features *data.FeatureList, opts *tiler.TilerOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if features == nil {
		return nil, tiler.ErrEmptyInput
	}

	tileable := features.WithGeometry()
	if tileable.Len() == 0 {
		return nil, tiler.ErrEmptyInput
	}
	glog.Infof("tiling %d features out of %d with the %s algorithm", tileable.Len(), features.Len(), opts.Algorithm)

	offset, err := tilerIndex.placeFeatures(tileable, opts)
	if err != nil {
		return nil, err
	}

	groups, err := tilerIndex.groupFeatures(tileable)
	if err != nil {
		return nil, err
	}

	tools.LogOutput("> building", len(groups), "chains...")
	chains, err := pipeline.BuildChains(groups, lod.LevelsFromOptions(opts.Levels), opts.KeepTexture, opts.NumWorkers)
	if err != nil {
		return nil, err
	}

	root := lod.NewNode(lod.KindGroup, nil, opts.RootGeometricError, false)
	for _, chain := range chains {
		root.AddChild(chain)
	}
	lod.ComputeBoundingVolumes(root)

	tileset := lod.NewTileSet(root, opts.RootGeometricError)
	tileset.AddExtras("algorithm", string(opts.Algorithm))
	tileset.AddExtras("groups", strconv.Itoa(len(groups)))
	tileset.AddExtras("offset", fmt.Sprintf("%v,%v,%v", offset.X, offset.Y, offset.Z))
	if opts.TargetSrid != 0 {
		tileset.AddExtras("srid", strconv.Itoa(opts.TargetSrid))
	}
	if glog.V(2) {
		glog.Infoln("tileset", tools.FmtJSONString(tileset.Document()))
	}

	result := &Result{TileSet: tileset}
	if opts.Hierarchy != nil {
		tools.LogOutput("> encoding hierarchy...")
		encoder := hierarchy.NewEncoder(hierarchy.Config{
			Classes:        opts.Hierarchy.Classes,
			SkipUndeclared: opts.Hierarchy.SkipUndeclared,
		})
		entries, err := encoder.BuildEntries(features)
		if err != nil {
			return nil, err
		}
		result.Hierarchy = entries
		result.Classes = encoder.Classes()
	}

	tools.LogOutput("> done tiling", tileable.Len(), "features")
	return result, nil
}

// Reprojects, scales then offsets the features. Returns the offset subtracted from the vertices.
func (tilerIndex *TilerIndex) placeFeatures(features *data.FeatureList, opts *tiler.TilerOptions) (geometry.Coordinate, error) {
	if opts.Reprojects() {
		converter := tilerIndex.algorithmManager.GetCoordinateConverterAlgorithm()
		if converter == nil {
			return geometry.Coordinate{}, fmt.Errorf("%w: no coordinate converter available", tiler.ErrInvalidOptions)
		}
		tools.LogOutput("> reprojecting from EPSG:", opts.Srid, "to EPSG:", opts.TargetSrid)
		if err := features.ChangeCRS(converter, opts.Srid, opts.TargetSrid); err != nil {
			return geometry.Coordinate{}, fmt.Errorf("reprojecting from %d to %d: %w", opts.Srid, opts.TargetSrid, err)
		}
	}

	if opts.Scale != 1 {
		features.Scale(opts.Scale)
	}

	offset := opts.Offset
	if opts.OffsetToCentroid {
		offset = features.Centroid()
	}
	if offset != (geometry.Coordinate{}) {
		glog.V(1).Infof("offsetting %d features by %+v", features.Len(), offset)
		features.Translate(offset)
	}
	return offset, nil
}

func (tilerIndex *TilerIndex) groupFeatures(features *data.FeatureList) ([]*grouping.Group, error) {
	strategy := tilerIndex.algorithmManager.GetGroupingAlgorithm()
	if strategy == nil {
		return nil, fmt.Errorf("%w: no grouping algorithm available", tiler.ErrInvalidOptions)
	}

	tools.LogOutput("> grouping features...")
	groups, err := strategy.Group(features)
	if err != nil {
		return nil, err
	}
	if err := grouping.CheckCoverage(features, groups); err != nil {
		return nil, fmt.Errorf("grouping with %T: %w", strategy, err)
	}
	return groups, nil
}
