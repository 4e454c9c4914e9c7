package pipeline

import (
	"github.com/ecopia-map/city_tiler/internal/grouping"
)

// Contains the minimal data needed to build the level of detail chain of a single group
type WorkUnit struct {
	Index int // slot of the chain in the result slice
	Group *grouping.Group
}
