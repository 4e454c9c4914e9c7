package pkg

import (
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/hierarchy"
	"github.com/ecopia-map/city_tiler/internal/lod"
	"github.com/ecopia-map/city_tiler/internal/tiler"
)

type ITiler interface {
	RunTiler(features *data.FeatureList, opts *tiler.TilerOptions) (*Result, error)
}

// Contains everything a tiling run produces
type Result struct {
	TileSet   *lod.TileSet
	Hierarchy []hierarchy.Entry // nil when no class is declared
	Classes   []hierarchy.Class
}

// Batch table hierarchy of the result, nil when no hierarchy was built
func (r *Result) HierarchyTable() *hierarchy.Table {
	if r.Hierarchy == nil {
		return nil
	}
	return hierarchy.NewTable(r.Hierarchy, r.Classes)
}
