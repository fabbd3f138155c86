package drei

import (
	"github.com/gmlewis/drei/gfx"
)

// Scene owns the root of a node tree and the global render state.
type Scene struct {
	Root     *Node
	settings Settings
	gl       gfx.Context
}

// NewScene applies settings to ctx and returns an empty scene.
func NewScene(ctx gfx.Context, settings Settings) *Scene {
	s := &Scene{
		Root:     NewNode("root"),
		settings: settings,
		gl:       ctx,
	}
	s.apply()
	return s
}

func (s *Scene) apply() {
	c := s.settings.ClearColor
	s.gl.ClearColor(c[0], c[1], c[2], c[3])
	s.gl.ClearDepth(s.settings.ClearDepth)
	if s.settings.DepthEnabled {
		s.gl.Enable(gfx.DepthTest)
	} else {
		s.gl.Disable(gfx.DepthTest)
	}
	s.gl.DepthFunc(s.settings.DepthFunc)
}

// Settings returns the settings the scene was created with.
func (s *Scene) Settings() Settings {
	return s.settings
}

// Add attaches n to the scene root.
func (s *Scene) Add(n *Node) {
	s.Root.AddChild(n)
}

// Render clears the framebuffer and renders the tree through camera.
// The depth buffer is cleared only when depth testing is enabled.
func (s *Scene) Render(camera *Camera, frame Frame) {
	mask := gfx.ColorBufferBit
	if s.settings.DepthEnabled {
		mask |= gfx.DepthBufferBit
	}
	s.gl.Clear(mask)
	camera.RenderTree(s.Root, frame)
}
