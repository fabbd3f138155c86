package drei

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmlewis/drei/gfx"
	"github.com/gmlewis/drei/gfx/gfxtest"
)

func unpack(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[4*i:]))
	}
	return out
}

func TestTessellatorBackfill(t *testing.T) {
	_, m := newColoredMaterial(t)
	tess := NewTessellator(m)

	tess.Append("position", 0, 0, 0)
	tess.Append("position", 1, 0, 0)
	tess.Append("position", 0, 1, 0)
	tess.Append("color", 1, 0, 0, 0.5)

	assert.Equal(t, 3, tess.Len())
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, tess.Attribute("position"))
	assert.Equal(t, []float32{
		0, 0, 0, 1,
		0, 0, 0, 1,
		1, 0, 0, 0.5,
	}, tess.Attribute("color"))
}

func TestTessellatorTrailingDefaults(t *testing.T) {
	_, m := newColoredMaterial(t)
	tess := NewTessellator(m)

	tess.Append("position", 1, 1, 1).Append("position", 2, 2, 2).Append("position", 3, 3, 3)
	assert.Equal(t, 3, tess.Len())
	// color was never written: every row takes the default
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}, tess.Attribute("color"))
}

func TestTessellatorComponentPadding(t *testing.T) {
	_, m := newColoredMaterial(t)
	tess := NewTessellator(m)

	tess.Append("color", 0.2)
	tess.Append("position", 1, 2, 3, 4)
	assert.Equal(t, []float32{0.2, 0, 0, 1}, tess.Attribute("color"))
	assert.Equal(t, []float32{1, 2, 3}, tess.Attribute("position"))
}

func TestTessellatorInterleaved(t *testing.T) {
	_, m := newColoredMaterial(t)
	build := func(positionFirst bool) *Tessellator {
		tess := NewTessellator(m)
		for i := 0; i < 3; i++ {
			f := float32(i)
			if positionFirst {
				tess.Append("position", f, f, f).Append("color", f, 0, 0, 1)
			} else {
				tess.Append("color", f, 0, 0, 1).Append("position", f, f, f)
			}
		}
		return tess
	}

	a, b := build(true), build(false)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, a.Len(), b.Len())
	assert.Equal(t, a.Attribute("position"), b.Attribute("position"))
	assert.Equal(t, a.Attribute("color"), b.Attribute("color"))
	assert.Equal(t, []float32{0, 0, 0, 1, 1, 0, 0, 1, 2, 0, 0, 1}, a.Attribute("color"))
}

func TestTessellatorUndeclared(t *testing.T) {
	_, m := newColoredMaterial(t)
	tess := NewTessellator(m)
	assert.Panics(t, func() { tess.Append("normal", 0, 0, 1) })
	assert.Nil(t, tess.Attribute("normal"))
}

func TestTessellatorBuild(t *testing.T) {
	rec, m := newColoredMaterial(t)
	tess := NewTessellator(m)
	tess.Append("position", 0, 0, 0).Append("color", 1, 0, 0, 1)
	tess.Append("position", 1, 0, 0)
	tess.Append("position", 1, 1, 0)

	mesh := tess.Build(gfx.Triangles)
	assert.Equal(t, 3, mesh.VertexCount)
	assert.Equal(t, gfx.Triangles, mesh.Topology)

	for _, name := range m.AttributeNames() {
		b, _ := m.AttributeBinding(name)
		buf, ok := mesh.Buffer(name)
		require.True(t, ok, name)
		data := rec.BufferContents[buf]
		assert.Len(t, data, tess.Len()*b.Type.Components()*b.Type.ElementSize(), name)
		assert.Equal(t, tess.Attribute(name), unpack(data), name)
	}
	for _, c := range rec.Named("BufferData") {
		assert.Equal(t, gfx.StaticDraw, c.Args[2])
	}
}

func TestTessellatorReuse(t *testing.T) {
	rec, m := newColoredMaterial(t)
	tess := NewTessellator(m)
	tess.Append("position", 0, 0, 0)
	first := tess.Build(gfx.Points)
	before := tess.Attribute("color")

	// Build pads a copy; the tessellator state is untouched
	assert.Equal(t, before, tess.Attribute("color"))

	tess.Append("position", 1, 1, 1)
	second := tess.Build(gfx.Points)
	assert.Equal(t, 1, first.VertexCount)
	assert.Equal(t, 2, second.VertexCount)

	buf, _ := first.Buffer("position")
	assert.Equal(t, []float32{0, 0, 0}, unpack(rec.BufferContents[buf]))

	tess.Reset()
	assert.Equal(t, 0, tess.Len())
	assert.Empty(t, tess.Attribute("position"))
}

func TestEndToEnd(t *testing.T) {
	rec := gfxtest.New(
		[]gfx.ActiveInfo{{Name: "position", Type: gfx.FloatVec3, Size: 1}},
		[]gfx.ActiveInfo{{Name: ModelViewProjection, Type: gfx.FloatMat4, Size: 1}},
	)
	m, err := NewMaterial(rec, passthroughVS, passthroughFS)
	require.NoError(t, err)

	tess := NewTessellator(m)
	tess.Append("position", -1, -1, 0)
	tess.Append("position", 1, -1, 0)
	tess.Append("position", 0, 1, 0)
	mesh := tess.Build(gfx.Triangles)

	assert.Equal(t, 3, mesh.VertexCount)
	buf, ok := mesh.Buffer("position")
	require.True(t, ok)
	floats := unpack(rec.BufferContents[buf])
	assert.Len(t, floats, 9)
	assert.Equal(t, []float32{-1, -1, 0, 1, -1, 0, 0, 1, 0}, floats)

	scene := NewScene(rec, DefaultSettings())
	node := NewNode("triangle")
	node.Drawable = mesh
	scene.Add(node)
	cam := NewPerspectiveCamera(rec, 1, 0.1, 10)
	cam.UpdateProjection()

	rec.Reset()
	scene.Render(cam, Frame{Count: 1})
	draws := rec.Named("DrawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gfx.Triangles, 0, 3}, draws[0].Args)
}
