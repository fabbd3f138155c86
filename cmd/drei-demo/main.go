// drei-demo opens a window and renders a spinning colored quad over a
// static triangle, with a pixel-space marker drawn by a second camera.
//
// Usage:
//
//	drei-demo [-config scene.yaml] [-width 800] [-height 600] [-fovy 70]
package main

import (
	"flag"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/drei/drei"
	"github.com/gmlewis/drei/gfx"
	"github.com/gmlewis/drei/gfx/opengl"
)

var (
	config = flag.String("config", "", "YAML file with scene settings")
	width  = flag.Int("width", 800, "window width")
	height = flag.Int("height", 600, "window height")
	fovy   = flag.Float64("fovy", 70, "vertical field of view in degrees")
	frames = flag.Int("frames", 0, "stop after this many frames (0 runs until closed)")
)

func main() {
	flag.Parse()

	settings := drei.DefaultSettings()
	if *config != "" {
		var err error
		if settings, err = drei.LoadSettings(*config); err != nil {
			log.Fatalf("LoadSettings: %v", err)
		}
	}

	win, err := opengl.NewWindow(*width, *height, "drei", true)
	if err != nil {
		log.Fatalf("NewWindow: %v", err)
	}
	defer win.Close()
	ctx := win.Context()

	material, err := drei.NewMaterial(ctx, vertexShader, fragmentShader)
	if err != nil {
		log.Fatalf("NewMaterial: %v", err)
	}
	defer material.Release()

	scene := drei.NewScene(ctx, settings)
	spinner, meshes := buildWorld(scene, material)
	for _, m := range meshes {
		defer m.Release()
	}

	camera := drei.NewPerspectiveCamera(ctx, mgl32.DegToRad(float32(*fovy)), 0.01, 1000)
	camera.Translate(mgl32.Vec3{0, 0, 5})
	camera.UpdateProjection()

	hud := drei.NewScreenCamera(ctx, -1, 1)
	hud.UpdateProjection()
	overlay := buildOverlay(material)
	defer overlay.Drawable.(*drei.Mesh).Release()

	var frame drei.Frame
	last := time.Now()
	for !win.ShouldClose() {
		if win.Resized() {
			camera.UpdateProjection()
			hud.UpdateProjection()
		}

		now := time.Now()
		frame.Count++
		frame.Elapsed = now.Sub(last)
		last = now

		spinner.Rotate(float32(frame.Elapsed.Seconds()), mgl32.Vec3{0, 1, 0})

		scene.Render(camera, frame)
		hud.RenderTree(overlay, frame)
		if err := ctx.CheckError("render"); err != nil {
			log.Printf("frame %v: %v", frame.Count, err)
		}
		win.SwapBuffers()

		if *frames > 0 && frame.Count >= *frames {
			break
		}
	}
}

func buildWorld(scene *drei.Scene, material *drei.Material) (*drei.Node, []*drei.Mesh) {
	t := drei.NewTessellator(material)
	t.Append("position", -1, -1, 0).Append("color", 1, 0, 0)
	t.Append("position", 1, -1, 0).Append("color", 0, 1, 0)
	t.Append("position", 1, 1, 0).Append("color", 0, 0, 1)
	t.Append("position", -1, 1, 0).Append("color", 1, 1, 0)
	quad := t.Build(gfx.TriangleFan)
	quad.SetUniform("tint")

	t.Reset()
	t.Append("position", -2, -1.5, -1)
	t.Append("position", 2, -1.5, -1)
	t.Append("position", 0, 2, -1)
	triangle := t.Build(gfx.Triangles)
	triangle.SetUniform("tint", 0.3, 0.3, 0.3)

	spinner := drei.NewNode("spinner")
	spinner.Drawable = quad
	backdrop := drei.NewNode("backdrop")
	backdrop.Drawable = triangle
	scene.Add(backdrop)
	scene.Add(spinner)
	return spinner, []*drei.Mesh{quad, triangle}
}

// buildOverlay returns a 20-pixel marker centered on the screen.
func buildOverlay(material *drei.Material) *drei.Node {
	t := drei.NewTessellator(material)
	t.Append("position", -10, -10, 0).Append("color", 1, 1, 1)
	t.Append("position", 10, -10, 0)
	t.Append("position", 10, 10, 0)
	t.Append("position", -10, 10, 0)
	mesh := t.Build(gfx.LineLoop)
	mesh.SetUniform("tint", 1, 1, 1)
	marker := drei.NewNode("marker")
	marker.Drawable = mesh
	return marker
}

const vertexShader = `#version 330
uniform mat4 modelViewProjectionMatrix;
in vec3 position;
in vec4 color;
out vec4 fragColor;
void main() {
	gl_Position = modelViewProjectionMatrix * vec4(position, 1);
	fragColor = color;
}`

const fragmentShader = `#version 330
uniform vec4 tint;
in vec4 fragColor;
out vec4 outputColor;
void main() {
	outputColor = fragColor + tint;
}`
