package tiler

import (
	"errors"
	"fmt"
)

var (
	// No feature with geometry is left to tile
	ErrEmptyInput = errors.New("no feature with geometry to tile")

	// The options cannot produce a valid tileset
	ErrInvalidOptions = errors.New("invalid tiler options")

	// A built tree breaks the error or bounding volume ordering of its nodes
	ErrInvalidTileSet = errors.New("invalid tileset")
)

// Raised by the hierarchy encoder for a feature whose class has no property declaration
type UndeclaredClassError struct {
	FeatureID string
	Class     string
}

func (e *UndeclaredClassError) Error() string {
	return fmt.Sprintf("feature [%s] has undeclared class [%s]", e.FeatureID, e.Class)
}
