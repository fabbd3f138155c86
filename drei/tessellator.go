package drei

import (
	"fmt"
	"slices"

	"github.com/gmlewis/drei/gfx"
)

// Tessellator accumulates vertex data one attribute at a time and keeps
// every attribute column row-aligned.
//
// Writing row i of one attribute first fills every other attribute that
// has fewer than i rows with its type's default value, so a column that is
// never written for some vertex holds the default there. Len is the number
// of vertices: the longest column.
//
//	t := drei.NewTessellator(material)
//	t.Append("position", 0, 0, 0).Append("color", 1, 0, 0)
//	t.Append("position", 1, 0, 0)
//	mesh := t.Build(gfx.Triangles)
type Tessellator struct {
	material *Material
	columns  map[string][]float32
	rows     map[string]int
	length   int
}

// NewTessellator returns an empty tessellator for the attributes of m.
func NewTessellator(m *Material) *Tessellator {
	t := &Tessellator{material: m}
	t.Reset()
	return t
}

// Reset discards all appended data.
func (t *Tessellator) Reset() {
	t.columns = make(map[string][]float32, len(t.material.attrNames))
	t.rows = make(map[string]int, len(t.material.attrNames))
	for _, name := range t.material.attrNames {
		t.columns[name] = nil
		t.rows[name] = 0
	}
	t.length = 0
}

// Len returns the number of vertices appended so far.
func (t *Tessellator) Len() int {
	return t.length
}

// Append writes the next row of attribute name. Missing components take
// the type's defaults and extra ones are dropped.
// It panics if the material does not declare name.
func (t *Tessellator) Append(name string, data ...float32) *Tessellator {
	row, ok := t.rows[name]
	if !ok {
		panic(fmt.Sprintf("drei: Tessellator.Append: attribute %q not declared by material", name))
	}
	t.synchronize(row)
	t.write(name, data)
	t.rows[name] = row + 1
	t.length = max(t.length, row+1)
	return t
}

func (t *Tessellator) write(name string, data []float32) {
	typ := t.material.attributes[name].Type
	t.columns[name] = append(t.columns[name], typ.pad(data)...)
}

// synchronize brings every column up to at least row rows with defaults.
func (t *Tessellator) synchronize(row int) {
	for _, name := range t.material.attrNames {
		for t.rows[name] < row {
			t.write(name, nil)
			t.rows[name]++
		}
	}
}

// Attribute returns the column of a declared attribute padded to Len rows,
// exactly as Build uploads it.
func (t *Tessellator) Attribute(name string) []float32 {
	b, ok := t.material.attributes[name]
	if !ok {
		return nil
	}
	column := slices.Clone(t.columns[name])
	for n := t.rows[name]; n < t.length; n++ {
		column = append(column, b.Type.Defaults()...)
	}
	return column
}

// Build uploads every column to a new Mesh drawn with topology. The
// tessellator is left unchanged and may keep being appended to.
func (t *Tessellator) Build(topology gfx.Topology) *Mesh {
	mesh := NewMesh(t.material, topology)
	for _, name := range t.material.attrNames {
		mesh.SetAttribute(name, t.Attribute(name))
	}
	mesh.VertexCount = t.length
	return mesh
}
