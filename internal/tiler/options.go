package tiler

import (
	"fmt"
	"strings"

	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/paulmach/orb"
)

type Algorithm string
type RefineMode string

const (
	// Recursive median split of the centroids, groups hold at most MaxGroupSize features (one more for odd splits)
	KdTree Algorithm = "KDTREE"

	// Centroids snapped to a grid of CellSize cells, one group per occupied cell
	Cube Algorithm = "CUBE"

	// Features grouped by the first polygon of Polygons containing their centroid
	Polygon Algorithm = "POLYGON"

	// Polygons derived from the faces of the Roads line network, then grouped as Polygon
	Roads Algorithm = "ROADS"
)

// Children add to the content of their parent. It is the only refinement produced.
const RefineModeAdd RefineMode = "ADD"

func (e RefineMode) String() string {
	if e == RefineModeAdd {
		return "ADD"
	}
	return ""
}

func ParseRefineMode(value string) RefineMode {
	normalizedValue := strings.Trim(strings.ToUpper(value), " ")
	if normalizedValue == "ADD" {
		return RefineModeAdd
	}
	return ""
}

func ParseAlgorithm(value string) Algorithm {
	switch a := Algorithm(strings.Trim(strings.ToUpper(value), " ")); a {
	case KdTree, Cube, Polygon, Roads:
		return a
	}
	return ""
}

// Geometric errors of the detail levels, coarse to fine
type LevelOptions struct {
	CreateLoa  bool    `toml:"create_loa"`  // add the proxy level when the grouping provides one
	CreateLod1 bool    `toml:"create_lod1"` // add the box level
	LoaError   float64 `toml:"loa_error"`
	Lod1Error  float64 `toml:"lod1_error"`
	BaseError  float64 `toml:"base_error"`
}

// Class declarations for the batch table hierarchy. A nil *HierarchyOptions disables the encoding.
type HierarchyOptions struct {
	Classes        map[string][]string `toml:"classes"`         // class tag -> retained property names
	SkipUndeclared bool                `toml:"skip_undeclared"` // skip features of undeclared classes instead of failing
}

// Contains the options needed for the tiling algorithm
type TilerOptions struct {
	Algorithm          Algorithm           `toml:"algorithm"`            // Grouping algorithm to use
	MaxGroupSize       int                 `toml:"max_group_size"`       // Max number of features per group for the kd-tree algorithm
	CellSize           geometry.Coordinate `toml:"cell_size"`            // Cell size per axis for the cube algorithm
	Polygons           []orb.Polygon       `toml:"polygons"`             // Grouping polygons for the polygon algorithm, in priority order
	Roads              []orb.LineString    `toml:"roads"`                // Line network for the roads algorithm
	RoadTolerance      float64             `toml:"road_tolerance"`       // Distance below which two road vertices are the same node
	Levels             LevelOptions        `toml:"levels"`               // Detail levels of each group chain
	RootGeometricError float64             `toml:"root_geometric_error"` // Geometric error of the tileset and of its root node
	KeepTexture        bool                `toml:"keep_texture"`         // Keep feature textures in nodes whose features are all textured
	RefineMode         RefineMode          `toml:"refine_mode"`          // Refine mode to use to generate the tileset
	NumWorkers         int                 `toml:"num_workers"`          // Number of chain builders, 0 means one per CPU
	Hierarchy          *HierarchyOptions   `toml:"hierarchy"`            // Batch table hierarchy declarations
	Scale              float64             `toml:"scale"`                // Factor applied around the centroid of the features before tiling
	Offset             geometry.Coordinate `toml:"offset"`               // Subtracted from every vertex after scaling
	OffsetToCentroid   bool                `toml:"offset_to_centroid"`   // Use the centroid of the features as Offset
	Srid               int                 `toml:"srid"`                 // EPSG code of the input vertices
	TargetSrid         int                 `toml:"target_srid"`          // EPSG code of the output vertices, reprojected when it differs from Srid
}

// Returns the options used when nothing else is configured
func DefaultOptions() *TilerOptions {
	return &TilerOptions{
		Algorithm:     KdTree,
		MaxGroupSize:  20,
		CellSize:      geometry.Coordinate{X: 100, Y: 100, Z: 100},
		RoadTolerance: 1e-6,
		Levels: LevelOptions{
			CreateLoa:  false,
			CreateLod1: false,
			LoaError:   20,
			Lod1Error:  5,
			BaseError:  1,
		},
		RootGeometricError: 500,
		RefineMode:         RefineModeAdd,
		Scale:              1,
	}
}

// Whether the vertices change reference system before tiling
func (opt *TilerOptions) Reprojects() bool {
	return opt.Srid != opt.TargetSrid
}

// Checks the options and returns an error wrapping ErrInvalidOptions describing the first problem found
func (opt *TilerOptions) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
	}

	switch opt.Algorithm {
	case KdTree:
		if opt.MaxGroupSize < 1 {
			return invalid("max_group_size must be greater than 0, got %d", opt.MaxGroupSize)
		}
	case Cube:
		if opt.CellSize.X <= 0 || opt.CellSize.Y <= 0 || opt.CellSize.Z <= 0 {
			return invalid("cell_size must be positive on every axis, got %+v", opt.CellSize)
		}
	case Polygon:
		if len(opt.Polygons) == 0 {
			return invalid("polygon algorithm needs at least one polygon")
		}
	case Roads:
		if len(opt.Roads) == 0 {
			return invalid("roads algorithm needs at least one line")
		}
		if opt.RoadTolerance < 0 {
			return invalid("road_tolerance cannot be negative")
		}
	default:
		return invalid("unknown algorithm %q", opt.Algorithm)
	}

	if opt.RefineMode != RefineModeAdd {
		return invalid("refine_mode should be ADD")
	}

	if opt.Levels.BaseError < 0 {
		return invalid("base_error cannot be negative")
	}
	coarsest := opt.Levels.BaseError
	if opt.Levels.CreateLod1 {
		if opt.Levels.Lod1Error <= coarsest {
			return invalid("lod1_error (%v) must be greater than base_error (%v)", opt.Levels.Lod1Error, coarsest)
		}
		coarsest = opt.Levels.Lod1Error
	}
	if opt.Levels.CreateLoa {
		if opt.Levels.LoaError <= coarsest {
			return invalid("loa_error (%v) must be greater than the finer levels (%v)", opt.Levels.LoaError, coarsest)
		}
		coarsest = opt.Levels.LoaError
	}
	if opt.RootGeometricError <= coarsest {
		return invalid("root_geometric_error (%v) must be greater than every level error (%v)", opt.RootGeometricError, coarsest)
	}

	if opt.NumWorkers < 0 {
		return invalid("num_workers cannot be negative")
	}

	if opt.Scale <= 0 {
		return invalid("scale must be greater than 0, got %v", opt.Scale)
	}
	if opt.Srid < 0 || opt.TargetSrid < 0 {
		return invalid("srid and target_srid cannot be negative")
	}
	if (opt.Srid == 0) != (opt.TargetSrid == 0) {
		return invalid("srid (%d) and target_srid (%d) must be set together", opt.Srid, opt.TargetSrid)
	}

	return nil
}

func (opt *TilerOptions) Copy() *TilerOptions {
	newOpt := *opt

	newOpt.Polygons = make([]orb.Polygon, len(opt.Polygons))
	for i, polygon := range opt.Polygons {
		newOpt.Polygons[i] = polygon.Clone()
	}
	newOpt.Roads = make([]orb.LineString, len(opt.Roads))
	for i, road := range opt.Roads {
		newOpt.Roads[i] = road.Clone()
	}

	if opt.Hierarchy != nil {
		hierarchyOpt := *opt.Hierarchy
		hierarchyOpt.Classes = make(map[string][]string, len(opt.Hierarchy.Classes))
		for class, properties := range opt.Hierarchy.Classes {
			hierarchyOpt.Classes[class] = append([]string(nil), properties...)
		}
		newOpt.Hierarchy = &hierarchyOpt
	}

	return &newOpt
}
