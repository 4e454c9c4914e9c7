package lod

import (
	"github.com/ecopia-map/city_tiler/internal/data"
	"github.com/ecopia-map/city_tiler/internal/geometry"
	"github.com/ecopia-map/city_tiler/internal/tiler"
)

// Level of detail held by a node
type Kind string

const (
	KindFull  Kind = "full"  // the features themselves
	KindLod1  Kind = "lod1"  // one box per feature
	KindLoa   Kind = "loa"   // the extruded group proxy
	KindGroup Kind = "group" // content-less node gathering other trees
)

// Models a node of the level of detail tree. Children refine their parent additively and
// always carry a smaller geometric error.
type Node struct {
	Features       *data.FeatureList
	GeometricError float64
	Refine         tiler.RefineMode
	Children       []*Node
	Kind           Kind
	KeepTexture    bool
	BoundingVolume *geometry.BoundingVolumeBox
	SourceLabel    string // tree the node came from when merged

	parent *Node
}

// Instantiates a new Node. Textures are kept only if asked and every feature has one.
func NewNode(kind Kind, features *data.FeatureList, geometricError float64, keepTexture bool) *Node {
	if features == nil {
		features = data.NewFeatureList(nil)
	}
	return &Node{
		Features:       features,
		GeometricError: geometricError,
		Refine:         tiler.RefineModeAdd,
		Kind:           kind,
		KeepTexture:    keepTexture && features.Len() > 0 && features.AllHaveTexture(),
	}
}

// Appends child to the node children and makes the node its parent
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

func (n *Node) HasContent() bool {
	return n.Features != nil && n.Features.Len() > 0
}

// Whether no node of the subtree has content
func (n *Node) IsEmpty() bool {
	if n.HasContent() {
		return false
	}
	for _, child := range n.Children {
		if !child.IsEmpty() {
			return false
		}
	}
	return true
}

func (n *Node) GetParentNode() *Node {
	return n.parent
}

func (n *Node) IsRoot() bool {
	return n.parent == nil
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) GetKind() Kind {
	return n.Kind
}

func (n *Node) GetFeatures() *data.FeatureList {
	return n.Features
}

func (n *Node) GetChildren() []INode {
	children := make([]INode, len(n.Children))
	for i, child := range n.Children {
		children[i] = child
	}
	return children
}

func (n *Node) GetParent() INode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ComputeGeometricError() float64 {
	return n.GeometricError
}

func (n *Node) GetBoundingVolume() *geometry.BoundingVolumeBox {
	return n.BoundingVolume
}

// Visits the node and its descendants depth first, parents before children.
// Stops at the first error returned by fn.
func (n *Node) Walk(fn func(node *Node, depth int) error) error {
	type visit struct {
		node  *Node
		depth int
	}
	stack := []visit{{n, 0}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(v.node, v.depth); err != nil {
			return err
		}
		for i := len(v.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, visit{v.node.Children[i], v.depth + 1})
		}
	}
	return nil
}
