// Package gfxtest provides a recording gfx.Context for tests.
package gfxtest

import (
	"fmt"
	"slices"

	"github.com/gmlewis/drei/gfx"
)

// Call is one recorded Context method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%v%v", c.Name, c.Args)
}

// Recorder is a gfx.Context that records every call and never touches a GPU.
//
// Attribute i reflects to location i and uniform i reflects to location
// 100+i, so the two ranges never collide in assertions.
type Recorder struct {
	Attributes []gfx.ActiveInfo
	Uniforms   []gfx.ActiveInfo

	// CompileLog makes CompileShader fail for a stage with the given log.
	CompileLog map[gfx.ShaderStage]string
	// LinkLog makes LinkProgram fail with the given log when non-empty.
	LinkLog string

	Width, Height int

	Calls []Call

	// BufferContents holds the last data uploaded to each buffer.
	BufferContents map[gfx.Buffer][]byte
	// UniformValues holds the last value uploaded to each uniform location.
	UniformValues map[gfx.Location][]float32

	nextHandle uint32
	bound      gfx.Buffer
	deleted    map[uint32]bool
}

// UniformBase is the location of the first reflected uniform.
const UniformBase = 100

var _ gfx.Context = (*Recorder)(nil)

// New returns a Recorder reflecting the given attributes and uniforms.
func New(attributes, uniforms []gfx.ActiveInfo) *Recorder {
	return &Recorder{
		Attributes: attributes,
		Uniforms:   uniforms,
		Width:      800,
		Height:     600,
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) handle() uint32 {
	r.nextHandle++
	return r.nextHandle
}

// Reset forgets recorded calls, keeping buffer and uniform state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Named returns the recorded calls with the given method name, in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the method names of all recorded calls, in order.
func (r *Recorder) Names() []string {
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Name)
	}
	return out
}

// Deleted reports whether a shader, program or buffer handle was released.
func (r *Recorder) Deleted(handle uint32) bool {
	return r.deleted[handle]
}

func (r *Recorder) markDeleted(handle uint32) {
	if r.deleted == nil {
		r.deleted = map[uint32]bool{}
	}
	r.deleted[handle] = true
}

func (r *Recorder) CompileShader(stage gfx.ShaderStage, source string) (gfx.Shader, error) {
	r.record("CompileShader", stage)
	if log, ok := r.CompileLog[stage]; ok {
		return 0, &gfx.CompileError{Stage: stage, Log: log}
	}
	return gfx.Shader(r.handle()), nil
}

func (r *Recorder) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	r.record("LinkProgram", vertex, fragment)
	if r.LinkLog != "" {
		return 0, &gfx.LinkError{Log: r.LinkLog}
	}
	return gfx.Program(r.handle()), nil
}

func (r *Recorder) DeleteShader(s gfx.Shader) {
	r.record("DeleteShader", s)
	r.markDeleted(uint32(s))
}

func (r *Recorder) DeleteProgram(p gfx.Program) {
	r.record("DeleteProgram", p)
	r.markDeleted(uint32(p))
}

func (r *Recorder) UseProgram(p gfx.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) ActiveAttributeCount(p gfx.Program) int {
	return len(r.Attributes)
}

func (r *Recorder) ActiveAttribute(p gfx.Program, index int) gfx.ActiveInfo {
	return r.Attributes[index]
}

func (r *Recorder) ActiveUniformCount(p gfx.Program) int {
	return len(r.Uniforms)
}

func (r *Recorder) ActiveUniform(p gfx.Program, index int) gfx.ActiveInfo {
	return r.Uniforms[index]
}

func (r *Recorder) AttribLocation(p gfx.Program, name string) gfx.Location {
	i := slices.IndexFunc(r.Attributes, func(a gfx.ActiveInfo) bool { return a.Name == name })
	return gfx.Location(i)
}

func (r *Recorder) UniformLocation(p gfx.Program, name string) gfx.Location {
	i := slices.IndexFunc(r.Uniforms, func(u gfx.ActiveInfo) bool { return u.Name == name })
	if i < 0 {
		return -1
	}
	return gfx.Location(UniformBase + i)
}

func (r *Recorder) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(r.handle())
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) DeleteBuffer(b gfx.Buffer) {
	r.record("DeleteBuffer", b)
	r.markDeleted(uint32(b))
}

func (r *Recorder) BindBuffer(target gfx.BufferTarget, b gfx.Buffer) {
	r.record("BindBuffer", target, b)
	r.bound = b
}

func (r *Recorder) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	r.record("BufferData", target, len(data), usage)
	if r.BufferContents == nil {
		r.BufferContents = map[gfx.Buffer][]byte{}
	}
	r.BufferContents[r.bound] = slices.Clone(data)
}

func (r *Recorder) EnableVertexAttribArray(loc gfx.Location) {
	r.record("EnableVertexAttribArray", loc)
}

func (r *Recorder) DisableVertexAttribArray(loc gfx.Location) {
	r.record("DisableVertexAttribArray", loc)
}

func (r *Recorder) VertexAttribPointer(loc gfx.Location, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", loc, size, typ, normalized, stride, offset)
}

func (r *Recorder) uniform(name string, loc gfx.Location, v []float32) {
	r.record(name, loc, slices.Clone(v))
	if r.UniformValues == nil {
		r.UniformValues = map[gfx.Location][]float32{}
	}
	r.UniformValues[loc] = slices.Clone(v)
}

func (r *Recorder) Uniform1fv(loc gfx.Location, v []float32) { r.uniform("Uniform1fv", loc, v) }
func (r *Recorder) Uniform2fv(loc gfx.Location, v []float32) { r.uniform("Uniform2fv", loc, v) }
func (r *Recorder) Uniform3fv(loc gfx.Location, v []float32) { r.uniform("Uniform3fv", loc, v) }
func (r *Recorder) Uniform4fv(loc gfx.Location, v []float32) { r.uniform("Uniform4fv", loc, v) }

func (r *Recorder) UniformMatrix2fv(loc gfx.Location, transpose bool, v []float32) {
	r.uniform("UniformMatrix2fv", loc, v)
}

func (r *Recorder) UniformMatrix3fv(loc gfx.Location, transpose bool, v []float32) {
	r.uniform("UniformMatrix3fv", loc, v)
}

func (r *Recorder) UniformMatrix4fv(loc gfx.Location, transpose bool, v []float32) {
	r.uniform("UniformMatrix4fv", loc, v)
}

func (r *Recorder) DrawArrays(mode gfx.Topology, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) Clear(mask gfx.ClearMask) { r.record("Clear", mask) }

func (r *Recorder) Enable(c gfx.Capability) { r.record("Enable", c) }

func (r *Recorder) Disable(c gfx.Capability) { r.record("Disable", c) }

func (r *Recorder) DepthFunc(f gfx.DepthFunc) { r.record("DepthFunc", f) }

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearDepth(d float32) { r.record("ClearDepth", d) }

func (r *Recorder) DrawableSize() (width, height int) {
	return r.Width, r.Height
}
