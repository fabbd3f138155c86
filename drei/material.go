package drei

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gmlewis/drei/gfx"
)

// ConfigurationError is returned when a program declares an attribute or
// uniform whose type the engine cannot bind.
type ConfigurationError struct {
	Kind   string // "attribute" or "uniform"
	Name   string
	GLType gfx.Enum
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unsupported %v %q of GL type %#x", e.Kind, e.Name, uint32(e.GLType))
}

// Binding is the reflected metadata of one attribute or uniform.
type Binding struct {
	Name     string
	Type     Type
	Size     int // array length, 1 for non-arrays
	Location gfx.Location
}

// Material is a linked shader program together with the attributes and
// uniforms it declares. The metadata is fixed at construction and drives
// all generic binding; nothing else hardcodes a layout.
//
// A Material owns its program and must outlive every Mesh built from it.
type Material struct {
	gl         gfx.Context
	program    gfx.Program
	attributes map[string]Binding
	uniforms   map[string]Binding
	attrNames  []string
}

// NewMaterial compiles and links the two shader stages and reflects the
// program. Compile and link failures are returned as *gfx.CompileError and
// *gfx.LinkError; an attribute or uniform outside the float family, or an
// array attribute, yields a *ConfigurationError. No program is left
// allocated on error.
func NewMaterial(ctx gfx.Context, vertexSource, fragmentSource string) (*Material, error) {
	vs, err := ctx.CompileShader(gfx.VertexShader, vertexSource)
	if err != nil {
		return nil, fmt.Errorf("NewMaterial: %w", err)
	}
	defer ctx.DeleteShader(vs)

	fs, err := ctx.CompileShader(gfx.FragmentShader, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("NewMaterial: %w", err)
	}
	defer ctx.DeleteShader(fs)

	program, err := ctx.LinkProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("NewMaterial: %w", err)
	}

	m := &Material{
		gl:         ctx,
		program:    program,
		attributes: map[string]Binding{},
		uniforms:   map[string]Binding{},
	}
	if err := m.reflect(); err != nil {
		ctx.DeleteProgram(program)
		return nil, fmt.Errorf("NewMaterial: %w", err)
	}
	return m, nil
}

func (m *Material) reflect() error {
	for i, n := 0, m.gl.ActiveAttributeCount(m.program); i < n; i++ {
		info := m.gl.ActiveAttribute(m.program, i)
		if builtin(info.Name) {
			continue
		}
		t, ok := TypeOf(info.Type)
		// matrix and array attributes span several slots, which a single
		// VertexAttribPointer call cannot describe
		if !ok || t.IsMatrix() || info.Size > 1 {
			return &ConfigurationError{Kind: "attribute", Name: info.Name, GLType: info.Type}
		}
		m.attributes[info.Name] = Binding{
			Name:     info.Name,
			Type:     t,
			Size:     1,
			Location: m.gl.AttribLocation(m.program, info.Name),
		}
	}

	for i, n := 0, m.gl.ActiveUniformCount(m.program); i < n; i++ {
		info := m.gl.ActiveUniform(m.program, i)
		if builtin(info.Name) {
			continue
		}
		t, ok := TypeOf(info.Type)
		if !ok {
			return &ConfigurationError{Kind: "uniform", Name: info.Name, GLType: info.Type}
		}
		// arrays are reported as "name[0]" and registered under "name"
		name := strings.TrimSuffix(info.Name, "[0]")
		m.uniforms[name] = Binding{
			Name:     name,
			Type:     t,
			Size:     max(info.Size, 1),
			Location: m.gl.UniformLocation(m.program, info.Name),
		}
	}

	m.attrNames = sortedKeys(m.attributes)
	return nil
}

func builtin(name string) bool {
	return strings.HasPrefix(name, "gl_")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Release deletes the program. The Material must not be used afterwards.
func (m *Material) Release() {
	if m.program != 0 {
		m.gl.DeleteProgram(m.program)
		m.program = 0
	}
}

// Program returns the program handle.
func (m *Material) Program() gfx.Program {
	return m.program
}

// Use makes the program active.
func (m *Material) Use() {
	m.gl.UseProgram(m.program)
}

// Attrib activates the program and returns the location of a declared
// attribute, or -1 if the program does not declare it.
func (m *Material) Attrib(name string) gfx.Location {
	m.Use()
	if b, ok := m.attributes[name]; ok {
		return b.Location
	}
	return -1
}

// Uniform activates the program and returns the location of a declared
// uniform, or -1 if the program does not declare it.
func (m *Material) Uniform(name string) gfx.Location {
	m.Use()
	if b, ok := m.uniforms[name]; ok {
		return b.Location
	}
	return -1
}

// AttributeBinding returns the metadata of a declared attribute.
func (m *Material) AttributeBinding(name string) (Binding, bool) {
	b, ok := m.attributes[name]
	return b, ok
}

// UniformBinding returns the metadata of a declared uniform.
func (m *Material) UniformBinding(name string) (Binding, bool) {
	b, ok := m.uniforms[name]
	return b, ok
}

// AttributeNames returns the declared attribute names in sorted order.
func (m *Material) AttributeNames() []string {
	return slices.Clone(m.attrNames)
}

// UniformNames returns the declared uniform names in sorted order.
func (m *Material) UniformNames() []string {
	return sortedKeys(m.uniforms)
}

// EnableAttribs enables the vertex input slot of every declared attribute.
func (m *Material) EnableAttribs() {
	for _, name := range m.attrNames {
		m.gl.EnableVertexAttribArray(m.Attrib(name))
	}
}

// DisableAttribs disables the slots enabled by EnableAttribs.
func (m *Material) DisableAttribs() {
	for _, name := range m.attrNames {
		m.gl.DisableVertexAttribArray(m.Attrib(name))
	}
}

// CreateBuffers allocates one empty buffer per declared attribute.
func (m *Material) CreateBuffers() map[string]gfx.Buffer {
	buffers := make(map[string]gfx.Buffer, len(m.attrNames))
	for _, name := range m.attrNames {
		buffers[name] = m.gl.CreateBuffer()
	}
	return buffers
}
