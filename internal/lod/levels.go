package lod

import (
	"fmt"

	"github.com/ecopia-map/city_tiler/internal/tiler"
)

// One level of a group chain and the geometric error of its node
type Level struct {
	Kind           Kind
	GeometricError float64
}

// Returns every level with its usual error, coarse to fine
func DefaultLevels() []Level {
	return []Level{
		{Kind: KindLoa, GeometricError: 20},
		{Kind: KindLod1, GeometricError: 5},
		{Kind: KindFull, GeometricError: 1},
	}
}

// Returns the levels enabled in the options, coarse to fine
func LevelsFromOptions(opts tiler.LevelOptions) []Level {
	var levels []Level
	if opts.CreateLoa {
		levels = append(levels, Level{Kind: KindLoa, GeometricError: opts.LoaError})
	}
	if opts.CreateLod1 {
		levels = append(levels, Level{Kind: KindLod1, GeometricError: opts.Lod1Error})
	}
	return append(levels, Level{Kind: KindFull, GeometricError: opts.BaseError})
}

// Checks that levels end with the full level, appear once each and have strictly
// decreasing errors
func ValidateLevels(levels []Level) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: no level of detail", tiler.ErrInvalidOptions)
	}
	if last := levels[len(levels)-1]; last.Kind != KindFull {
		return fmt.Errorf("%w: the finest level must be %s, got %s", tiler.ErrInvalidOptions, KindFull, last.Kind)
	}

	seen := make(map[Kind]bool, len(levels))
	for i, level := range levels {
		switch level.Kind {
		case KindFull, KindLod1, KindLoa:
		default:
			return fmt.Errorf("%w: unknown level kind %q", tiler.ErrInvalidOptions, level.Kind)
		}
		if seen[level.Kind] {
			return fmt.Errorf("%w: level %s appears twice", tiler.ErrInvalidOptions, level.Kind)
		}
		seen[level.Kind] = true

		if level.GeometricError < 0 {
			return fmt.Errorf("%w: negative geometric error for level %s", tiler.ErrInvalidOptions, level.Kind)
		}
		if i > 0 && level.GeometricError >= levels[i-1].GeometricError {
			return fmt.Errorf("%w: level %s error %v is not below level %s error %v", tiler.ErrInvalidOptions,
				level.Kind, level.GeometricError, levels[i-1].Kind, levels[i-1].GeometricError)
		}
	}
	return nil
}
