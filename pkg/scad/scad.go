// Package scad is the output model backend: a tree of OpenSCAD nodes built
// by the renderer and written out as deterministic script text. Nodes carry
// an optional diagnostic name, emitted as a comment, and a set of OpenSCAD
// visibility modifiers.
package scad

// Modifier is an OpenSCAD visibility modifier prefix.
type Modifier byte

const (
	// Disable removes the subtree from rendering ('*').
	Disable Modifier = 1 << iota
	// ShowOnly renders only this subtree ('!').
	ShowOnly
	// Debug highlights the subtree ('#').
	Debug
	// Transparent renders the subtree as background ('%').
	Transparent
)

// modifierOrder fixes the prefix emission order.
var modifierOrder = []struct {
	m Modifier
	c byte
}{
	{Disable, '*'},
	{ShowOnly, '!'},
	{Debug, '#'},
	{Transparent, '%'},
}

// Node is a node of the output model tree.
type Node interface {
	// SetName tags the node with a diagnostic name, written as a comment.
	SetName(name string)
	// Name returns the diagnostic name, if any.
	Name() string
	// AddModifier adds visibility modifiers to the node.
	AddModifier(m Modifier)
	// Modifiers returns the node's modifier flags.
	Modifiers() Modifier

	write(w *writer)
}

// meta carries the diagnostic name and modifier flags common to all nodes.
type meta struct {
	name string
	mods Modifier
}

func (m *meta) SetName(name string) { m.name = name }

func (m *meta) Name() string { return m.name }

func (m *meta) AddModifier(mod Modifier) { m.mods |= mod }

func (m *meta) Modifiers() Modifier { return m.mods }

func (m *meta) writeName(w *writer) {
	if m.name != "" {
		w.linef("// %q", m.name)
	}
}

func (m *meta) prefix() string {
	var p []byte
	for _, e := range modifierOrder {
		if m.mods&e.m != 0 {
			p = append(p, e.c)
		}
	}
	return string(p)
}

// Group is an operator node holding children: union, difference,
// intersection, hull, minkowski, or a head wrapper (color, multmatrix).
type Group struct {
	meta
	head     string // e.g. "union()" or "multmatrix(m=...)"
	children []Node
}

// Append adds children to the group.
func (g *Group) Append(children ...Node) {
	g.children = append(g.children, children...)
}

// Children returns the group's children.
func (g *Group) Children() []Node {
	return g.children
}

// Head returns the operator text of the group, e.g. "union()".
func (g *Group) Head() string {
	return g.head
}

func (g *Group) write(w *writer) {
	g.writeName(w)
	w.linef("%s%s {", g.prefix(), g.head)
	w.push()
	for _, c := range g.children {
		c.write(w)
	}
	w.pop()
	w.line("}")
}

// Union returns a union() node.
func Union(children ...Node) *Group {
	return &Group{head: "union()", children: children}
}

// Difference returns a difference() node. The first child is the base;
// the rest are subtracted.
func Difference(children ...Node) *Group {
	return &Group{head: "difference()", children: children}
}

// Intersection returns an intersection() node.
func Intersection(children ...Node) *Group {
	return &Group{head: "intersection()", children: children}
}

// Hull returns a hull() node.
func Hull(children ...Node) *Group {
	return &Group{head: "hull()", children: children}
}

// Minkowski returns a minkowski() node.
func Minkowski(children ...Node) *Group {
	return &Group{head: "minkowski()", children: children}
}

// MultMatrix returns a multmatrix(m=...) head wrapper for the given
// row-major affine matrix.
func MultMatrix(rows [4][4]float64) *MultMatrixNode {
	return &MultMatrixNode{Group{head: "multmatrix(m=" + fmtMatrix(rows) + ")"}, rows}
}

// MultMatrixNode is a multmatrix head wrapper retaining its matrix.
type MultMatrixNode struct {
	Group
	rows [4][4]float64
}

// Matrix returns the wrapped affine matrix, row-major.
func (m *MultMatrixNode) Matrix() [4][4]float64 {
	return m.rows
}

// Color returns a color(c=[r,g,b,a]) head wrapper.
func Color(r, g, b, a float64) *ColorNode {
	rows := [4]float64{r, g, b, a}
	return &ColorNode{Group{head: "color(c=" + fmtVec4(rows) + ")"}, rows}
}

// ColorNode is a color head wrapper retaining its RGBA value.
type ColorNode struct {
	Group
	rgba [4]float64
}

// RGBA returns the wrapped colour value.
func (c *ColorNode) RGBA() [4]float64 {
	return c.rgba
}
