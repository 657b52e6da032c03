package scad

// Module is a named sub-unit definition: module name() { ... }.
type Module struct {
	meta
	ModName  string
	children []Node
}

// NewModule returns an empty module definition with the given name.
func NewModule(name string) *Module {
	return &Module{ModName: name}
}

// Append adds children to the module body.
func (m *Module) Append(children ...Node) {
	m.children = append(m.children, children...)
}

// Children returns the module body.
func (m *Module) Children() []Node {
	return m.children
}

func (m *Module) write(w *writer) {
	m.writeName(w)
	w.linef("module %s() {", m.ModName)
	w.push()
	for _, c := range m.children {
		c.write(w)
	}
	w.pop()
	w.linef("} // end module %s", m.ModName)
}

// Call is an invocation of a module definition.
type Call struct {
	meta
	ModName string
}

// NewCall returns a call of the named module.
func NewCall(name string) *Call {
	return &Call{ModName: name}
}

func (c *Call) write(w *writer) {
	c.writeName(w)
	w.linef("%s%s();", c.prefix(), c.ModName)
}

// LazyUnion is the top-level node of a render result. Its children are
// emitted sequentially without a wrapping union so that slicers supporting
// lazy union treat each child as a separate object.
type LazyUnion struct {
	meta
	children []Node
}

// NewLazyUnion returns an empty top-level node.
func NewLazyUnion() *LazyUnion {
	return &LazyUnion{}
}

// Append adds children to the lazy union.
func (l *LazyUnion) Append(children ...Node) {
	l.children = append(l.children, children...)
}

// Children returns the lazy union's children.
func (l *LazyUnion) Children() []Node {
	return l.children
}

func (l *LazyUnion) write(w *writer) {
	w.line("// Start: lazy_union")
	for _, c := range l.children {
		c.write(w)
	}
	w.line("// End: lazy_union")
}
