package core

import (
	"fmt"
	"strings"

	"github.com/chazu/tenon/pkg/linear"
)

// Maker is the composition tree node: one reference frame defining the
// node's local origin plus a flat, insertion-ordered map of named,
// moded sub-frames. Anchors are resolved by composing entry frames.
//
// A Maker is mutated only through Add and AddAt, which return the same
// logical owner. Naming a Maker inside another tree copies it, so trees
// never alias entries.
type Maker struct {
	reference modeFrame
	order     []string
	entries   map[string]modeFrame
}

var _ Shape = (*Maker)(nil)

// newMaker wraps a framed shape as the reference of a fresh tree. The
// reference entry is stored inverted so anchor lookups compose correctly:
// the tree's local origin is the resolved anchor point.
func newMaker(mode Mode, frame ShapeFrame, attrs *Attributes) *Maker {
	ref := modeFrame{mode: mode, frame: frame, attrs: attrs}
	m := &Maker{
		reference: ref,
		order:     []string{frame.Name},
		entries:   map[string]modeFrame{frame.Name: ref.inverted()},
	}
	return m
}

// Copy returns a Maker sharing the same shapes but owning its own entry
// map, so later Add calls do not affect the original.
func (m *Maker) Copy() *Maker {
	c := &Maker{
		reference: m.reference,
		order:     make([]string, len(m.order)),
		entries:   make(map[string]modeFrame, len(m.entries)),
	}
	copy(c.order, m.order)
	for k, v := range m.entries {
		c.entries[k] = v
	}
	return c
}

// Name returns the name of the tree's reference entry.
func (m *Maker) Name() string {
	return m.reference.frame.Name
}

func (m *Maker) addEntry(e modeFrame) error {
	name := e.frame.Name
	if prev, ok := m.entries[name]; ok {
		return fmt.Errorf("%w: %q already exists with mode %s",
			ErrDuplicateName, name, prev.mode)
	}
	m.order = append(m.order, name)
	m.entries[name] = e
	return nil
}

// Add merges every entry of other into m. The operation is atomic: on any
// name collision no entries are applied and ErrDuplicateName is returned.
func (m *Maker) Add(other *Maker) (*Maker, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: Add requires a Maker", ErrIllegalParameter)
	}
	for _, name := range other.order {
		if prev, ok := m.entries[name]; ok {
			return nil, fmt.Errorf("%w: %q already exists with mode %s",
				ErrDuplicateName, name, prev.mode)
		}
	}
	for _, name := range other.order {
		if err := m.addEntry(other.entries[name]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddAt merges every entry of other into m, relocated at an anchor of m.
// The argument list is an anchor path (name then anchor args), optionally
// with Pre/Post adjustments or an AnchorSpec selector instead of the path.
// With no path at all the entries are merged at m's local origin.
// Like Add, the operation is atomic on name collision.
func (m *Maker) AddAt(other *Maker, args ...any) (*Maker, error) {
	if other == nil {
		return nil, fmt.Errorf("%w: AddAt requires a Maker", ErrIllegalParameter)
	}
	call, err := splitAnchorArgs(args)
	if err != nil {
		return nil, err
	}

	local := linear.Identity
	switch {
	case call.spec != nil:
		local, err = call.spec.Apply(m)
	case len(call.args) > 0:
		name, ok := call.args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: anchor name must be a string, got %T",
				ErrIncorrectAnchorArgs, call.args[0])
		}
		local, err = m.At(name, call.args[1:]...)
	}
	if err != nil {
		return nil, err
	}
	local = call.adjust(local)

	for _, name := range other.order {
		if prev, ok := m.entries[name]; ok {
			return nil, fmt.Errorf("%w: %q already exists with mode %s",
				ErrDuplicateName, name, prev.mode)
		}
	}
	for _, name := range other.order {
		if err := m.addEntry(other.entries[name].preMul(local)); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// HasAnchor implements Shape.
func (m *Maker) HasAnchor(name string) bool {
	if m.reference.frame.Shape.HasAnchor(name) {
		return true
	}
	_, ok := m.entries[name]
	return ok
}

// AnchorNames implements Shape: the reference shape's anchors followed by
// the entry names.
func (m *Maker) AnchorNames() []string {
	names := m.reference.frame.Shape.AnchorNames()
	return append(names, m.order...)
}

// At resolves an anchor to a transform. An anchor exposed by the reference
// shape itself is delegated through the (inverted) reference entry; other
// names select an entry and the remaining args resolve within its shape.
func (m *Maker) At(name string, args ...any) (linear.M, error) {
	ref := m.reference.frame.Shape
	if ref.HasAnchor(name) {
		entry := m.entries[m.reference.frame.Name]
		inner, err := ref.At(name, args...)
		if err != nil {
			return linear.M{}, err
		}
		return entry.frame.Frame.Mul(inner), nil
	}

	entry, ok := m.entries[name]
	if !ok {
		return linear.M{}, fmt.Errorf(
			"%w: %q is not an anchor of the reference shape or a named shape; "+
				"available names are %s",
			ErrAnchorNotFound, name, strings.Join(m.AnchorNames(), ", "))
	}

	if len(args) == 0 {
		return entry.frame.Frame, nil
	}
	inner, ok := args[0].(string)
	if !ok {
		return linear.M{}, fmt.Errorf("%w: anchor name must be a string, got %T",
			ErrIncorrectAnchorArgs, args[0])
	}
	sub, err := entry.frame.Shape.At(inner, args[1:]...)
	if err != nil {
		return linear.M{}, err
	}
	return entry.frame.Frame.Mul(sub), nil
}

// Render implements Shape: a depth-first, insertion-order traversal that
// opens one renderer scope per entry.
func (m *Maker) Render(r Renderer) error {
	for _, name := range m.order {
		e := m.entries[name]
		r.Push(e.mode, e.frame.Frame, e.attrs, name, typeName(e.frame.Shape))
		err := e.frame.Shape.Render(r)
		if perr := r.Pop(); err == nil {
			err = perr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
