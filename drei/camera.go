package drei

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/drei/gfx"
)

// Lens computes a projection for a viewport of the given size in pixels.
type Lens interface {
	Projection(width, height int) mgl32.Mat4
}

// Ortho is an orthographic projection with fixed clip planes.
type Ortho struct {
	Left, Right, Bottom, Top, Near, Far float32
}

func (o *Ortho) Projection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
}

// Perspective is a perspective projection whose aspect ratio follows the
// viewport. FovY is the vertical field of view in radians.
type Perspective struct {
	FovY, Near, Far float32
}

func (p *Perspective) Projection(width, height int) mgl32.Mat4 {
	return mgl32.Perspective(p.FovY, aspect(width, height), p.Near, p.Far)
}

// Screen is an orthographic projection mapping one unit to one pixel,
// centered on the viewport. It suits HUD overlays.
type Screen struct {
	Near, Far float32
}

func (s *Screen) Projection(width, height int) mgl32.Mat4 {
	hw, hh := float32(width)/2, float32(height)/2
	return mgl32.Ortho(-hw, hw, -hh, hh, s.Near, s.Far)
}

// aspect returns width/height, or 1 for an empty viewport.
func aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

// Camera is a node that renders a tree through its projection.
//
// The projection is computed only by UpdateProjection. It must be called
// before the first render and again whenever the lens parameters or the
// viewport size change; rendering never refreshes it implicitly.
type Camera struct {
	*Node
	Lens Lens

	gl         gfx.Context
	projection mgl32.Mat4
	ready      bool
}

// NewCamera returns a camera with the given lens. Its projection is the
// identity until UpdateProjection is called.
func NewCamera(ctx gfx.Context, lens Lens) *Camera {
	return &Camera{
		Node:       NewNode("camera"),
		Lens:       lens,
		gl:         ctx,
		projection: mgl32.Ident4(),
	}
}

// NewOrthoCamera returns a camera with an orthographic lens.
func NewOrthoCamera(ctx gfx.Context, left, right, bottom, top, near, far float32) *Camera {
	return NewCamera(ctx, &Ortho{Left: left, Right: right, Bottom: bottom, Top: top, Near: near, Far: far})
}

// NewPerspectiveCamera returns a camera with a perspective lens.
func NewPerspectiveCamera(ctx gfx.Context, fovy, near, far float32) *Camera {
	return NewCamera(ctx, &Perspective{FovY: fovy, Near: near, Far: far})
}

// NewScreenCamera returns a camera with a pixel-space lens.
func NewScreenCamera(ctx gfx.Context, near, far float32) *Camera {
	return NewCamera(ctx, &Screen{Near: near, Far: far})
}

// UpdateProjection recomputes the projection from the lens and the current
// drawable size.
func (c *Camera) UpdateProjection() {
	width, height := c.gl.DrawableSize()
	c.projection = c.Lens.Projection(width, height)
	c.ready = true
}

// Ready reports whether UpdateProjection has been called.
func (c *Camera) Ready() bool {
	return c.ready
}

// Projection returns the last computed projection.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.projection
}

// ViewProjection returns projection × inverse(world transform). A singular
// world transform is treated as the identity.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	world := c.WorldTransform()
	view := mgl32.Ident4()
	if world.Det() != 0 {
		view = world.Inv()
	}
	return c.projection.Mul4(view)
}

// RenderTree renders root and its subtree through c.
// It panics if UpdateProjection was never called.
func (c *Camera) RenderTree(root *Node, frame Frame) {
	if !c.ready {
		panic(fmt.Sprintf("drei: RenderTree(%v): camera projection not computed; call UpdateProjection first", root))
	}
	root.Render(RenderContext{
		GL:        c.gl,
		Transform: c.ViewProjection(),
		Frame:     frame,
	})
}
