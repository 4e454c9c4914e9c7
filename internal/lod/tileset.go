package lod

import (
	"fmt"

	"github.com/ecopia-map/city_tiler/internal/geometry"
)

const TilesetVersion = "1.0"

// A level of detail tree ready to be serialized
type TileSet struct {
	Root           *Node
	Version        string
	GeometricError float64
	BoundingVolume *geometry.BoundingVolumeBox
	Extras         map[string]string // origin and provenance of the tiles
}

// Builds a tileset around root, computing the missing bounding volumes
func NewTileSet(root *Node, geometricError float64) *TileSet {
	volume := root.BoundingVolume
	if volume == nil {
		volume = ComputeBoundingVolumes(root)
	}
	return &TileSet{
		Root:           root,
		Version:        TilesetVersion,
		GeometricError: geometricError,
		BoundingVolume: volume,
		Extras:         make(map[string]string),
	}
}

func (t *TileSet) AddExtras(key, value string) {
	if t.Extras == nil {
		t.Extras = make(map[string]string)
	}
	t.Extras[key] = value
}

func (t *TileSet) GetRootNode() INode {
	if t.Root == nil {
		return nil
	}
	return t.Root
}

func (t *TileSet) GetGeometricError() float64 {
	return t.GeometricError
}

// Json model of tileset.json
type Tileset struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Tile    `json:"root"`
}

type Asset struct {
	Version string            `json:"version"`
	Extras  map[string]string `json:"extras,omitempty"`
}

type Tile struct {
	Content        *Content       `json:"content,omitempty"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Children       []Tile         `json:"children,omitempty"`
	Extras         *TileExtras    `json:"extras,omitempty"`
}

type Content struct {
	Uri string `json:"uri"`
}

type BoundingVolume struct {
	Box []float64 `json:"box"`
}

type TileExtras struct {
	Kind        string `json:"kind,omitempty"`
	SourceLabel string `json:"source,omitempty"`
	Features    int    `json:"features,omitempty"`
}

// Builds the json model of the tileset. Boxes are rounded here, content uris are numbered
// in depth first order of the nodes having content. Subtrees without content are left out.
func (t *TileSet) Document() *Tileset {
	extras := make(map[string]string, len(t.Extras))
	for key, value := range t.Extras {
		extras[key] = value
	}

	contentIndex := 0
	return &Tileset{
		Asset:          Asset{Version: t.Version, Extras: extras},
		GeometricError: t.GeometricError,
		Root:           buildTile(t.Root, &contentIndex),
	}
}

func buildTile(node *Node, contentIndex *int) Tile {
	tile := Tile{
		GeometricError: node.GeometricError,
		Refine:         node.Refine.String(),
		Extras: &TileExtras{
			Kind:        string(node.Kind),
			SourceLabel: node.SourceLabel,
		},
	}
	if node.HasContent() {
		tile.Extras.Features = node.Features.Len()
	}
	if node.BoundingVolume != nil {
		tile.BoundingVolume = BoundingVolume{Box: node.BoundingVolume.AsArray()}
	}
	if node.HasContent() {
		tile.Content = &Content{Uri: fmt.Sprintf("tiles/%d.b3dm", *contentIndex)}
		*contentIndex++
	}
	for _, child := range node.Children {
		if child.IsEmpty() {
			continue
		}
		tile.Children = append(tile.Children, buildTile(child, contentIndex))
	}
	return tile
}
