package pkg

import (
	"fmt"
	"strings"

	"github.com/ecopia-map/city_tiler/internal/converters"
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/ecopia-map/city_tiler/tools"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

var mergeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("city_tiler/merge"))

type MergeOptions struct {
	// Error of the new root, twice the largest error of the merged roots when 0
	GeometricError float64
}

// Gathers the trees under a new content-less root. Every former root is labelled with
// its source. Features are left untouched: bring them to a shared frame beforehand,
// see PrepareForMerge.
func Merge(trees []*lod.Node, sourceLabels []string, opts MergeOptions) (*lod.Node, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", tiler.ErrInvalidOptions)
	}
	if len(trees) != len(sourceLabels) {
		return nil, fmt.Errorf("%w: %d trees for %d source labels", tiler.ErrInvalidOptions, len(trees), len(sourceLabels))
	}

	var largest float64
	for i, tree := range trees {
		if tree == nil {
			return nil, fmt.Errorf("%w: tree %d [%s] is nil", tiler.ErrInvalidOptions, i, sourceLabels[i])
		}
		if tree.GeometricError > largest {
			largest = tree.GeometricError
		}
	}

	geometricError := opts.GeometricError
	if geometricError == 0 {
		geometricError = 2 * largest
		if geometricError == 0 {
			geometricError = 1
		}
	}
	if geometricError <= largest {
		return nil, fmt.Errorf("%w: merge error %v must be greater than the largest root error %v", tiler.ErrInvalidOptions, geometricError, largest)
	}

	root := lod.NewNode(lod.KindGroup, nil, geometricError, false)
	for i, tree := range trees {
		tree.SourceLabel = sourceLabels[i]
		root.AddChild(tree)
	}
	lod.ComputeBoundingVolumes(root)

	glog.Infof("merged %d trees, root error %v", len(trees), geometricError)
	return root, nil
}

// Merges whole tilesets. The merged tileset keeps the largest of the tileset errors
// when it exceeds the new root error.
func MergeTileSets(tilesets []*lod.TileSet, sourceLabels []string, opts MergeOptions) (*lod.TileSet, error) {
	roots := make([]*lod.Node, len(tilesets))
	var tilesetError float64
	for i, tileset := range tilesets {
		if tileset == nil {
			return nil, fmt.Errorf("%w: tileset %d is nil", tiler.ErrInvalidOptions, i)
		}
		roots[i] = tileset.Root
		if tileset.GeometricError > tilesetError {
			tilesetError = tileset.GeometricError
		}
	}

	root, err := Merge(roots, sourceLabels, opts)
	if err != nil {
		return nil, err
	}
	if root.GeometricError > tilesetError {
		tilesetError = root.GeometricError
	}

	merged := lod.NewTileSet(root, tilesetError)
	merged.AddExtras("id", uuid.NewSHA1(mergeNamespace, []byte(strings.Join(sourceLabels, "\x00"))).String())
	merged.AddExtras("sources", strings.Join(sourceLabels, ","))
	tools.LogOutput("> done merging", sourceLabels)
	return merged, nil
}

// Reprojects features from sourceSrid to targetSrid, then moves them by -offset so that
// trees built apart share the same local origin
func PrepareForMerge(features *data.FeatureList, converter converters.CoordinateConverter, sourceSrid, targetSrid int, offset geometry.Coordinate) error {
	if err := features.ChangeCRS(converter, sourceSrid, targetSrid); err != nil {
		return fmt.Errorf("reprojecting from %d to %d: %w", sourceSrid, targetSrid, err)
	}
	features.Translate(offset)
	return nil
}
