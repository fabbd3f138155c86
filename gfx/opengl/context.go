// Package opengl implements gfx.Context on top of an OpenGL 4.1 core
// profile context, and provides a GLFW window that owns such a context.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gmlewis/drei/gfx"
)

// Context issues gfx calls against the OpenGL context current on the
// calling thread.
type Context struct {
	vao     uint32
	current gfx.Program
	size    func() (width, height int)
}

var _ gfx.Context = (*Context)(nil)

// NewContext wraps the current GL context. gl.Init must already have been
// called. size reports the drawable size in pixels.
//
// The core profile refuses vertex input without a bound vertex array
// object, so a single one is created and left bound for the lifetime of
// the Context.
func NewContext(size func() (width, height int)) *Context {
	c := &Context{size: size}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c
}

// Release deletes the vertex array object owned by c.
func (c *Context) Release() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// CheckError reports the pending GL error, if any.
func (c *Context) CheckError(where string) error {
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("%v: GL error %#x", where, e)
	}
	return nil
}

func cstr(s string) *uint8 {
	if !strings.HasSuffix(s, "\x00") {
		s += "\x00"
	}
	return gl.Str(s)
}

func (c *Context) CompileShader(stage gfx.ShaderStage, source string) (gfx.Shader, error) {
	shader := gl.CreateShader(uint32(stage))

	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, &gfx.CompileError{Stage: stage, Log: strings.TrimRight(log, "\x00")}
	}

	return gfx.Shader(shader), nil
}

func (c *Context) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	program := gl.CreateProgram()

	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, &gfx.LinkError{Log: strings.TrimRight(log, "\x00")}
	}

	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))
	return gfx.Program(program), nil
}

func (c *Context) DeleteShader(s gfx.Shader) {
	gl.DeleteShader(uint32(s))
}

func (c *Context) DeleteProgram(p gfx.Program) {
	if c.current == p {
		c.current = 0
	}
	gl.DeleteProgram(uint32(p))
}

// UseProgram skips the GL call when p is already active.
func (c *Context) UseProgram(p gfx.Program) {
	if c.current == p {
		return
	}
	c.current = p
	gl.UseProgram(uint32(p))
}

func (c *Context) ActiveAttributeCount(p gfx.Program) int {
	var n int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTES, &n)
	return int(n)
}

func (c *Context) ActiveAttribute(p gfx.Program, index int) gfx.ActiveInfo {
	var maxLength int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLength)
	return activeInfo(maxLength, func(bufSize int32, length, size *int32, xtype *uint32, name *uint8) {
		gl.GetActiveAttrib(uint32(p), uint32(index), bufSize, length, size, xtype, name)
	})
}

func (c *Context) ActiveUniformCount(p gfx.Program) int {
	var n int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_UNIFORMS, &n)
	return int(n)
}

func (c *Context) ActiveUniform(p gfx.Program, index int) gfx.ActiveInfo {
	var maxLength int32
	gl.GetProgramiv(uint32(p), gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLength)
	return activeInfo(maxLength, func(bufSize int32, length, size *int32, xtype *uint32, name *uint8) {
		gl.GetActiveUniform(uint32(p), uint32(index), bufSize, length, size, xtype, name)
	})
}

func activeInfo(maxLength int32, query func(bufSize int32, length, size *int32, xtype *uint32, name *uint8)) gfx.ActiveInfo {
	buf := make([]uint8, maxLength+1)
	var length, size int32
	var xtype uint32
	query(int32(len(buf)), &length, &size, &xtype, &buf[0])
	return gfx.ActiveInfo{
		Name: string(buf[:length]),
		Type: gfx.Enum(xtype),
		Size: int(size),
	}
}

func (c *Context) AttribLocation(p gfx.Program, name string) gfx.Location {
	return gfx.Location(gl.GetAttribLocation(uint32(p), cstr(name)))
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.Location {
	return gfx.Location(gl.GetUniformLocation(uint32(p), cstr(name)))
}

func (c *Context) CreateBuffer() gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.Buffer(b)
}

func (c *Context) DeleteBuffer(b gfx.Buffer) {
	buf := uint32(b)
	gl.DeleteBuffers(1, &buf)
}

func (c *Context) BindBuffer(target gfx.BufferTarget, b gfx.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b))
}

func (c *Context) BufferData(target gfx.BufferTarget, data []byte, usage gfx.Usage) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(&data[0]), uint32(usage))
}

func (c *Context) EnableVertexAttribArray(loc gfx.Location) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (c *Context) DisableVertexAttribArray(loc gfx.Location) {
	gl.DisableVertexAttribArray(uint32(loc))
}

func (c *Context) VertexAttribPointer(loc gfx.Location, size int, typ gfx.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(loc), int32(size), uint32(typ), normalized, int32(stride), gl.PtrOffset(offset))
}

func (c *Context) Uniform1fv(loc gfx.Location, v []float32) {
	gl.Uniform1fv(int32(loc), int32(len(v)), &v[0])
}

func (c *Context) Uniform2fv(loc gfx.Location, v []float32) {
	gl.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *Context) Uniform3fv(loc gfx.Location, v []float32) {
	gl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}

func (c *Context) Uniform4fv(loc gfx.Location, v []float32) {
	gl.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
}

func (c *Context) UniformMatrix2fv(loc gfx.Location, transpose bool, v []float32) {
	gl.UniformMatrix2fv(int32(loc), int32(len(v)/4), transpose, &v[0])
}

func (c *Context) UniformMatrix3fv(loc gfx.Location, transpose bool, v []float32) {
	gl.UniformMatrix3fv(int32(loc), int32(len(v)/9), transpose, &v[0])
}

func (c *Context) UniformMatrix4fv(loc gfx.Location, transpose bool, v []float32) {
	gl.UniformMatrix4fv(int32(loc), int32(len(v)/16), transpose, &v[0])
}

func (c *Context) DrawArrays(mode gfx.Topology, first, count int) {
	gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (c *Context) Clear(mask gfx.ClearMask) {
	gl.Clear(uint32(mask))
}

func (c *Context) Enable(capability gfx.Capability) {
	gl.Enable(uint32(capability))
}

func (c *Context) Disable(capability gfx.Capability) {
	gl.Disable(uint32(capability))
}

func (c *Context) DepthFunc(f gfx.DepthFunc) {
	gl.DepthFunc(uint32(f))
}

func (c *Context) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *Context) ClearDepth(d float32) {
	gl.ClearDepth(float64(d))
}

func (c *Context) DrawableSize() (width, height int) {
	if c.size == nil {
		var viewport [4]int32
		gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
		return int(viewport[2]), int(viewport[3])
	}
	return c.size()
}
