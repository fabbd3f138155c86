package drei

import (
	"encoding/binary"
	"log/slog"
	"math"

	"github.com/gmlewis/drei/gfx"
)

// ModelViewProjection is the uniform every Mesh sets from the accumulated
// render transform. It is reserved: values placed in Mesh.Uniforms under
// this name are ignored.
const ModelViewProjection = "modelViewProjectionMatrix"

// Mesh draws non-indexed geometry with a Material. It owns one buffer per
// attribute declared by the Material; the Material itself is shared.
type Mesh struct {
	Topology    gfx.Topology
	VertexCount int
	// Uniforms holds per-draw uniform values by name. Short values are
	// padded with the uniform type's defaults, long ones truncated. An
	// array uniform takes its elements back to back under its base name.
	Uniforms map[string][]float32

	material *Material
	buffers  map[string]gfx.Buffer
	warned   map[string]bool
}

// NewMesh returns an empty mesh with a buffer for every attribute of m.
func NewMesh(m *Material, topology gfx.Topology) *Mesh {
	return &Mesh{
		Topology: topology,
		Uniforms: map[string][]float32{},
		material: m,
		buffers:  m.CreateBuffers(),
	}
}

// Material returns the material the mesh was built with.
func (ms *Mesh) Material() *Material {
	return ms.material
}

// Buffer returns the buffer backing a declared attribute.
func (ms *Mesh) Buffer(name string) (gfx.Buffer, bool) {
	b, ok := ms.buffers[name]
	return b, ok
}

// SetUniform sets a per-draw uniform value.
func (ms *Mesh) SetUniform(name string, values ...float32) {
	ms.Uniforms[name] = values
}

// SetAttribute uploads tightly packed data for a declared attribute.
// It panics if the material does not declare name.
func (ms *Mesh) SetAttribute(name string, data []float32) {
	b, ok := ms.buffers[name]
	if !ok {
		panic("drei: SetAttribute: attribute " + name + " not declared by material")
	}
	ctx := ms.material.gl
	ctx.BindBuffer(gfx.ArrayBuffer, b)
	ctx.BufferData(gfx.ArrayBuffer, pack(data), gfx.StaticDraw)
}

// pack encodes floats in native byte order, the layout GL reads.
func pack(data []float32) []byte {
	out := make([]byte, 4*len(data))
	for i, f := range data {
		binary.NativeEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

// Release deletes the mesh's buffers.
func (ms *Mesh) Release() {
	ctx := ms.material.gl
	for _, name := range sortedKeys(ms.buffers) {
		ctx.DeleteBuffer(ms.buffers[name])
	}
	ms.buffers = nil
}

// Draw implements Drawable.
func (ms *Mesh) Draw(rc RenderContext) {
	m := ms.material
	m.Use()
	m.EnableAttribs()
	ms.draw(rc)
	m.DisableAttribs()
}

func (ms *Mesh) draw(rc RenderContext) {
	m := ms.material
	ctx := rc.GL

	if b, ok := m.uniforms[ModelViewProjection]; ok {
		b.Type.upload(ctx, m.Uniform(ModelViewProjection), b.Type.padN(rc.Transform[:], b.Size))
	}

	for _, name := range sortedKeys(ms.Uniforms) {
		if name == ModelViewProjection {
			continue
		}
		b, ok := m.uniforms[name]
		if !ok {
			ms.warnUnknown(name)
			continue
		}
		b.Type.upload(ctx, m.Uniform(name), b.Type.padN(ms.Uniforms[name], b.Size))
	}

	for _, name := range m.attrNames {
		buf, ok := ms.buffers[name]
		if !ok {
			continue
		}
		t := m.attributes[name].Type
		ctx.BindBuffer(gfx.ArrayBuffer, buf)
		ctx.VertexAttribPointer(m.Attrib(name), t.Components(), t.ElementType(), false, 0, 0)
	}

	ctx.DrawArrays(ms.Topology, 0, ms.VertexCount)
}

// warnUnknown logs an undeclared uniform once per mesh.
func (ms *Mesh) warnUnknown(name string) {
	if ms.warned[name] {
		return
	}
	if ms.warned == nil {
		ms.warned = map[string]bool{}
	}
	ms.warned[name] = true
	slog.Warn("drei: uniform not declared by material", "uniform", name)
}
