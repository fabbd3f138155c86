// Package drei is a small scene-graph renderer over an immediate-mode
// graphics API.
//
// A Material compiles a shader program and reflects its attributes and
// uniforms. A Tessellator collects vertex data per attribute and builds a
// Mesh, which is attached to a Node as its Drawable. A Camera renders a
// Node tree by seeding the traversal with its view-projection, and a Scene
// owns the root and the global render state.
//
// Everything here must run on the thread owning the graphics context.
package drei
