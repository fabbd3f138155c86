package drei

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/drei/gfx"
)

// Frame describes the frame being rendered.
type Frame struct {
	Count   int
	Elapsed time.Duration // since the previous frame
}

// RenderContext is passed down the tree during a render pass.
// Transform is the accumulated transform from the camera to the node
// currently being visited.
type RenderContext struct {
	GL        gfx.Context
	Transform mgl32.Mat4
	Frame     Frame
}

// Drawable is the per-node draw hook.
type Drawable interface {
	Draw(rc RenderContext)
}

// Node is an element of the transform hierarchy. A Node without a
// Drawable only contributes its transform to its descendants.
//
// The tree is strictly a tree: a Node has at most one parent, which owns it
// through its child list. The parent link is a back-reference only.
//
// A zero Transform reads as identity, so a zero-value Node is usable as a
// grouping node.
type Node struct {
	Name      string
	Transform mgl32.Mat4 // local transform
	Drawable  Drawable

	parent   *Node
	children []*Node
}

// NewNode returns a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Transform: mgl32.Ident4()}
}

func (n *Node) String() string {
	if n.Name == "" {
		return fmt.Sprintf("Node(%p)", n)
	}
	return n.Name
}

// Parent returns the parent of n, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of n in draw order. The slice must not be
// modified.
func (n *Node) Children() []*Node {
	return n.children
}

// AddChild appends child to n's children.
//
// It panics if child already has a parent (detach it with RemoveChild or
// Detach first) or if child is n or one of n's ancestors.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		panic(fmt.Sprintf("drei: AddChild(%v): node already has parent %v", child, child.parent))
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			panic(fmt.Sprintf("drei: AddChild(%v): would create a cycle under %v", child, n))
		}
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child from n's children and clears its parent link.
// It is a no-op if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	i := slices.Index(n.children, child)
	if i < 0 {
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// WorldTransform returns the composition of all ancestor transforms with
// n's local transform.
func (n *Node) WorldTransform() mgl32.Mat4 {
	if n.parent == nil {
		return n.local()
	}
	return n.parent.WorldTransform().Mul4(n.local())
}

// local returns the local transform, with the zero matrix read as identity.
func (n *Node) local() mgl32.Mat4 {
	if n.Transform == (mgl32.Mat4{}) {
		return mgl32.Ident4()
	}
	return n.Transform
}

// Translate post-multiplies a translation onto the local transform.
func (n *Node) Translate(v mgl32.Vec3) {
	n.Transform = n.local().Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// Rotate post-multiplies a rotation of angle radians about axis onto the
// local transform.
func (n *Node) Rotate(angle float32, axis mgl32.Vec3) {
	n.Transform = n.local().Mul4(mgl32.HomogRotate3D(angle, axis.Normalize()))
}

// Scale post-multiplies a scale onto the local transform.
func (n *Node) Scale(v mgl32.Vec3) {
	n.Transform = n.local().Mul4(mgl32.Scale3D(v[0], v[1], v[2]))
}

// Render draws n and its subtree in pre-order, children in insertion
// order. rc.Transform is the accumulated transform of n's parent.
func (n *Node) Render(rc RenderContext) {
	rc.Transform = rc.Transform.Mul4(n.local())
	if n.Drawable != nil {
		n.Drawable.Draw(rc)
	}
	for _, c := range n.children {
		c.Render(rc)
	}
}
