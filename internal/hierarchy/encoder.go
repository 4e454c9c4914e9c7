package hierarchy

import (
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/tiler"
	"github.com/golang/glog"
)

// Contains the class declarations of the encoder
type Config struct {
	Classes        map[string][]string // class tag -> retained property names
	SkipUndeclared bool                // skip features of undeclared classes instead of failing
}

// One row of the hierarchy table
type Entry struct {
	FeatureID       string
	Class           string
	ClassIndex      int // position of Class in the class table
	Properties      map[string]interface{}
	ParentPositions []int // at most one position, empty for roots
}

// A class of the hierarchy table with the property names of its instances
type Class struct {
	Name          string
	Length        int
	PropertyNames []string
}

// Builds the semantic hierarchy table of a feature set
type Encoder struct {
	config  Config
	classes []Class
}

func NewEncoder(config Config) *Encoder {
	return &Encoder{config: config}
}

// Builds one entry per feature in two passes. The first pass assigns the positions,
// features with geometry first then the others, each in input order. The second builds
// the entries and resolves parents through the position of their id.
func (e *Encoder) BuildEntries(features *data.FeatureList) ([]Entry, error) {
	ordered := make([]*data.Feature, 0, features.Len())
	positions := make(map[string]int, features.Len())

	assign := func(feature *data.Feature) error {
		if _, ok := e.config.Classes[feature.Class]; !ok {
			if !e.config.SkipUndeclared {
				return &tiler.UndeclaredClassError{FeatureID: feature.ID, Class: feature.Class}
			}
			glog.Warningf("skipping feature [%s] of undeclared class [%s]", feature.ID, feature.Class)
			return nil
		}
		if previous, ok := positions[feature.ID]; ok {
			glog.Warningf("duplicate feature id [%s], parents resolve to position %d", feature.ID, previous)
		} else {
			positions[feature.ID] = len(ordered)
		}
		ordered = append(ordered, feature)
		return nil
	}

	for _, geometric := range []bool{true, false} {
		for _, feature := range features.Features() {
			if feature.HasGeometry() != geometric {
				continue
			}
			if err := assign(feature); err != nil {
				return nil, err
			}
		}
	}

	e.classes = nil
	classIndex := make(map[string]int)
	entries := make([]Entry, len(ordered))
	for position, feature := range ordered {
		index, ok := classIndex[feature.Class]
		if !ok {
			index = len(e.classes)
			classIndex[feature.Class] = index
			e.classes = append(e.classes, Class{
				Name:          feature.Class,
				PropertyNames: append([]string(nil), e.config.Classes[feature.Class]...),
			})
		}
		e.classes[index].Length++

		entries[position] = Entry{
			FeatureID:       feature.ID,
			Class:           feature.Class,
			ClassIndex:      index,
			Properties:      e.declaredProperties(feature),
			ParentPositions: e.resolveParent(feature, position, positions),
		}
	}

	glog.V(1).Infof("hierarchy holds %d entries in %d classes", len(entries), len(e.classes))
	return entries, nil
}

// Class table of the last BuildEntries call, in order of first use
func (e *Encoder) Classes() []Class {
	return e.classes
}

// Declared properties of the feature class, nil for the absent ones
func (e *Encoder) declaredProperties(feature *data.Feature) map[string]interface{} {
	names := e.config.Classes[feature.Class]
	properties := make(map[string]interface{}, len(names))
	for _, name := range names {
		properties[name] = feature.Properties[name]
	}
	return properties
}

func (e *Encoder) resolveParent(feature *data.Feature, position int, positions map[string]int) []int {
	if feature.ParentID == "" {
		return []int{}
	}
	parent, ok := positions[feature.ParentID]
	if !ok || parent == position {
		glog.Warningf("unresolved parent [%s] of feature [%s], entry becomes a root", feature.ParentID, feature.ID)
		return []int{}
	}
	return []int{parent}
}
