package drei

import (
	"fmt"

	"github.com/gmlewis/drei/gfx"
)

// Type is the shape of a reflected attribute or uniform. Only the float
// family is supported.
type Type uint8

const (
	Scalar Type = iota + 1
	Vec2
	Vec3
	Vec4
	Mat2
	Mat3
	Mat4
)

type typeInfo struct {
	name       string
	gl         gfx.Enum
	components int
	defaults   []float32
	upload     func(ctx gfx.Context, loc gfx.Location, v []float32)
}

var typeTable = [...]typeInfo{
	Scalar: {"float", gfx.Float, 1, []float32{0},
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.Uniform1fv(loc, v) }},
	Vec2: {"vec2", gfx.FloatVec2, 2, []float32{0, 0},
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.Uniform2fv(loc, v) }},
	Vec3: {"vec3", gfx.FloatVec3, 3, []float32{0, 0, 0},
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.Uniform3fv(loc, v) }},
	Vec4: {"vec4", gfx.FloatVec4, 4, []float32{0, 0, 0, 1},
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.Uniform4fv(loc, v) }},
	Mat2: {"mat2", gfx.FloatMat2, 4, make([]float32, 4),
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.UniformMatrix2fv(loc, false, v) }},
	Mat3: {"mat3", gfx.FloatMat3, 9, make([]float32, 9),
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.UniformMatrix3fv(loc, false, v) }},
	Mat4: {"mat4", gfx.FloatMat4, 16, make([]float32, 16),
		func(ctx gfx.Context, loc gfx.Location, v []float32) { ctx.UniformMatrix4fv(loc, false, v) }},
}

func (t Type) info() *typeInfo {
	if t < Scalar || t > Mat4 {
		panic(fmt.Sprintf("drei: invalid type %d", t))
	}
	return &typeTable[t]
}

func (t Type) String() string {
	if t < Scalar || t > Mat4 {
		return fmt.Sprintf("Type(%d)", t)
	}
	return typeTable[t].name
}

// Components is the number of float components of one value of t.
func (t Type) Components() int { return t.info().components }

// Defaults returns the value used for missing components of t. The vec4
// default has w = 1 so an omitted alpha or homogeneous coordinate is opaque.
func (t Type) Defaults() []float32 {
	return append([]float32(nil), t.info().defaults...)
}

// ElementType is the GL type of each component.
func (t Type) ElementType() gfx.Enum { return gfx.Float }

// ElementSize is the size in bytes of each component.
func (t Type) ElementSize() int { return 4 }

// IsMatrix reports whether t is uploaded with a matrix setter.
func (t Type) IsMatrix() bool { return t >= Mat2 }

// GL returns the reflected GL type enum for t.
func (t Type) GL() gfx.Enum { return t.info().gl }

// TypeOf resolves a reflected GL type enum.
func TypeOf(e gfx.Enum) (Type, bool) {
	for t := Scalar; t <= Mat4; t++ {
		if typeTable[t].gl == e {
			return t, true
		}
	}
	return 0, false
}

// pad fits v to t's component count, filling missing trailing components
// from t's defaults and dropping extra ones.
func (t Type) pad(v []float32) []float32 {
	d := t.info().defaults
	out := make([]float32, len(d))
	n := copy(out, v)
	copy(out[n:], d[n:])
	return out
}

// padN fits v to count consecutive values of t, padding each element
// independently.
func (t Type) padN(v []float32, count int) []float32 {
	c := t.Components()
	out := make([]float32, 0, c*count)
	for i := 0; i < count; i++ {
		lo := min(i*c, len(v))
		hi := min(lo+c, len(v))
		out = append(out, t.pad(v[lo:hi])...)
	}
	return out
}

// upload pushes values of t to a uniform location.
func (t Type) upload(ctx gfx.Context, loc gfx.Location, v []float32) {
	t.info().upload(ctx, loc, v)
}
