package scene

import (
	"github.com/goki/mat32"

	"github.com/RajeshDM/habitat-sim/common"
)

// Drawable marks a node as carrying a render asset instance. The actual mesh
// and material data live in the resource manager's asset cache; the node only
// references them by filepath.
type Drawable struct {
	// AssetPath is the cache key of the render asset this node instantiates.
	AssetPath string
	// IsRGBD marks the instance as visible to color and depth sensors.
	IsRGBD bool
	// IsSemantic marks the instance as visible to semantic sensors.
	IsSemantic bool
}

// Node is a single scene graph node. Nodes are owned by their Graph and live
// until removed; holders of *Node references do not own them. Each node has
// a rigid pose plus a non-uniform scale, an optional semantic id, and an
// optional Drawable record.
type Node struct {
	id       int
	graph    *Graph
	parent   *Node
	children []*Node

	translation mat32.Vec3
	rotation    mat32.Quat
	scale       mat32.Vec3

	semanticID int
	drawable   *Drawable
}

// ID returns the node's id, unique within its graph.
func (n *Node) ID() int { return n.id }

// Graph returns the graph that owns this node.
func (n *Node) Graph() *Graph { return n.graph }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's direct children in creation order.
func (n *Node) Children() []*Node { return n.children }

// CreateChild creates a new child node with an identity pose and unit scale.
//
// Returns:
//   - *Node: the newly created child, owned by the graph
func (n *Node) CreateChild() *Node {
	child := n.graph.newNode(n)
	n.children = append(n.children, child)
	return child
}

// Translation returns the node's local translation.
func (n *Node) Translation() mat32.Vec3 { return n.translation }

// SetTranslation sets the node's local translation.
//
// Parameters:
//   - t: the new translation
func (n *Node) SetTranslation(t mat32.Vec3) { n.translation = t }

// Rotation returns the node's local rotation.
func (n *Node) Rotation() mat32.Quat { return n.rotation }

// SetRotation sets the node's local rotation.
//
// Parameters:
//   - q: the new rotation quaternion
func (n *Node) SetRotation(q mat32.Quat) { n.rotation = q }

// Scale returns the node's local scale.
func (n *Node) Scale() mat32.Vec3 { return n.scale }

// SetScale sets the node's local scale.
//
// Parameters:
//   - s: the new scale
func (n *Node) SetScale(s mat32.Vec3) { n.scale = s }

// SemanticID returns the node's semantic object id, or common.IDUndefined
// when the node carries no semantic annotation.
func (n *Node) SemanticID() int { return n.semanticID }

// SetSemanticID sets the node's semantic object id.
//
// Parameters:
//   - id: the semantic id to assign
func (n *Node) SetSemanticID(id int) { n.semanticID = id }

// Drawable returns the node's render asset instance record, or nil when the
// node is purely structural.
func (n *Node) Drawable() *Drawable { return n.drawable }

// SetDrawable attaches a render asset instance record to the node.
//
// Parameters:
//   - d: the drawable record; nil detaches
func (n *Node) SetDrawable(d *Drawable) { n.drawable = d }

// LocalMatrix returns the node's local transform matrix composed from its
// translation, rotation, and scale.
//
// Returns:
//   - mat32.Mat4: the local transform
func (n *Node) LocalMatrix() mat32.Mat4 {
	var m mat32.Mat4
	m.SetTransform(n.translation, n.rotation, n.scale)
	return m
}

// WorldMatrix returns the node's absolute transform, composed root-down from
// every ancestor's local matrix.
//
// Returns:
//   - mat32.Mat4: the world transform
func (n *Node) WorldMatrix() mat32.Mat4 {
	local := n.LocalMatrix()
	if n.parent == nil {
		return local
	}
	parentWorld := n.parent.WorldMatrix()
	var world mat32.Mat4
	world.MulMatrices(&parentWorld, &local)
	return world
}

// Remove detaches the node and its whole subtree from the graph. Removing an
// already-removed node is a no-op. The root node cannot be removed.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.graph.unregisterSubtree(n)
}

// newNodeDefaults initializes pose fields shared by every freshly created node.
func (n *Node) initDefaults() {
	n.rotation = common.QuatIdentity()
	n.scale = mat32.Vec3{X: 1, Y: 1, Z: 1}
	n.semanticID = common.IDUndefined
}
