// Package gfx describes the immediate-mode graphics capabilities the drei
// engine is built on: program compilation and introspection, vertex buffers,
// uniform upload, draw calls and a handful of global state toggles.
//
// Enum values are the OpenGL ones, so a GL-backed Context can pass them
// straight through.
package gfx

// Shader is a compiled shader stage handle.
type Shader uint32

// Program is a linked shader program handle.
type Program uint32

// Buffer is a GPU buffer handle.
type Buffer uint32

// Location is an attribute or uniform binding slot. -1 means not found.
type Location int32

// Enum is a raw GL enumerant, used for reflected data types.
type Enum uint32

// Reflected data types.
const (
	Int       Enum = 0x1404
	Float     Enum = 0x1406
	FloatVec2 Enum = 0x8B50
	FloatVec3 Enum = 0x8B51
	FloatVec4 Enum = 0x8B52
	Bool      Enum = 0x8B56
	FloatMat2 Enum = 0x8B5A
	FloatMat3 Enum = 0x8B5B
	FloatMat4 Enum = 0x8B5C
	Sampler2D Enum = 0x8B5E
)

// ShaderStage selects the pipeline stage a shader source is compiled for.
type ShaderStage uint32

const (
	FragmentShader ShaderStage = 0x8B30
	VertexShader   ShaderStage = 0x8B31
)

func (s ShaderStage) String() string {
	switch s {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Topology is the primitive assembly mode of a draw call.
type Topology uint32

const (
	Points        Topology = 0x0000
	Lines         Topology = 0x0001
	LineLoop      Topology = 0x0002
	LineStrip     Topology = 0x0003
	Triangles     Topology = 0x0004
	TriangleStrip Topology = 0x0005
	TriangleFan   Topology = 0x0006
)

// BufferTarget is a buffer binding point.
type BufferTarget uint32

const ArrayBuffer BufferTarget = 0x8892

// Usage is a buffer data usage hint.
type Usage uint32

const StaticDraw Usage = 0x88E4

// Capability is a server-side capability toggled with Enable/Disable.
type Capability uint32

const DepthTest Capability = 0x0B71

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint32

const (
	DepthBufferBit ClearMask = 0x0100
	ColorBufferBit ClearMask = 0x4000
)

// ActiveInfo describes one active attribute or uniform of a linked program.
type ActiveInfo struct {
	Name string
	Type Enum
	Size int // array length, 1 for non-arrays
}

// Context is the graphics API the engine drives. All calls are assumed to
// happen on the thread owning the underlying context.
type Context interface {
	CompileShader(stage ShaderStage, source string) (Shader, error)
	LinkProgram(vertex, fragment Shader) (Program, error)
	DeleteShader(s Shader)
	DeleteProgram(p Program)
	UseProgram(p Program)

	ActiveAttributeCount(p Program) int
	ActiveAttribute(p Program, index int) ActiveInfo
	ActiveUniformCount(p Program) int
	ActiveUniform(p Program, index int) ActiveInfo
	AttribLocation(p Program, name string) Location
	UniformLocation(p Program, name string) Location

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target BufferTarget, b Buffer)
	BufferData(target BufferTarget, data []byte, usage Usage)
	EnableVertexAttribArray(loc Location)
	DisableVertexAttribArray(loc Location)
	VertexAttribPointer(loc Location, size int, typ Enum, normalized bool, stride, offset int)

	Uniform1fv(loc Location, v []float32)
	Uniform2fv(loc Location, v []float32)
	Uniform3fv(loc Location, v []float32)
	Uniform4fv(loc Location, v []float32)
	UniformMatrix2fv(loc Location, transpose bool, v []float32)
	UniformMatrix3fv(loc Location, transpose bool, v []float32)
	UniformMatrix4fv(loc Location, transpose bool, v []float32)

	DrawArrays(mode Topology, first, count int)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)
	DepthFunc(f DepthFunc)
	ClearColor(r, g, b, a float32)
	ClearDepth(d float32)

	// DrawableSize reports the current viewport size in pixels.
	DrawableSize() (width, height int)
}
