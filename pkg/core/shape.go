package core

import (
	"fmt"
	"strings"

	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// Shape is anything that can be anchored and rendered. Concrete shapes
// resolve anchors through a static per-type AnchorSet; Maker satisfies
// Shape so composed trees nest inside other trees.
type Shape interface {
	// HasAnchor reports whether the shape exposes the named anchor.
	HasAnchor(name string) bool
	// AnchorNames returns the shape's anchor catalogue.
	AnchorNames() []string
	// At resolves the named anchor to a transform. It fails with
	// ErrAnchorNotFound for unknown names and ErrIncorrectAnchorArgs
	// for malformed arguments.
	At(name string, args ...any) (linear.M, error)
	// Render drives push/pop and geometry emission on the renderer.
	Render(r Renderer) error
}

// Renderer is the traversal surface a Shape renders into. pkg/render
// provides the implementation.
type Renderer interface {
	// Push opens a scope for a named sub-frame.
	Push(mode Mode, frame linear.M, attrs *Attributes, name, shapeType string)
	// Pop closes the current scope into its parent.
	Pop() error
	// Add contributes solid geometry to the current scope.
	Add(nodes ...scad.Node)
	// Attributes returns the effective attributes of the current scope.
	Attributes() *Attributes
}

// AnchorHandler resolves one anchor of a shape type.
type AnchorHandler func(s Shape, args []any) (linear.M, error)

// AnchorSet is a static registration table of anchors for one shape type,
// built once at package init and shared by every instance. The table is
// enumerable so unknown-anchor errors can list what is available.
type AnchorSet struct {
	names    []string
	handlers map[string]anchorEntry
}

type anchorEntry struct {
	description string
	handler     AnchorHandler
}

// NewAnchorSet returns an empty anchor table.
func NewAnchorSet() *AnchorSet {
	return &AnchorSet{handlers: make(map[string]anchorEntry)}
}

// Register adds an anchor handler. Registering a name twice panics; the
// table is assembled from literals at init time.
func (a *AnchorSet) Register(name, description string, h AnchorHandler) *AnchorSet {
	if _, ok := a.handlers[name]; ok {
		panic(fmt.Sprintf("core: anchor %q registered twice", name))
	}
	a.names = append(a.names, name)
	a.handlers[name] = anchorEntry{description: description, handler: h}
	return a
}

// Has reports whether the table contains name.
func (a *AnchorSet) Has(name string) bool {
	_, ok := a.handlers[name]
	return ok
}

// Names returns the registered anchor names in registration order.
func (a *AnchorSet) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

// Describe returns the description of an anchor, or "".
func (a *AnchorSet) Describe(name string) string {
	return a.handlers[name].description
}

// Resolve dispatches an anchor call for a shape instance.
func (a *AnchorSet) Resolve(s Shape, name string, args []any) (linear.M, error) {
	entry, ok := a.handlers[name]
	if !ok {
		return linear.M{}, fmt.Errorf(
			"%w: %q is not an anchor of %s; available anchors are %s",
			ErrAnchorNotFound, name, typeName(s), strings.Join(a.names, ", "))
	}
	m, err := entry.handler(s, args)
	if err != nil {
		return linear.M{}, fmt.Errorf("anchor %q of %s: %w", name, typeName(s), err)
	}
	return m, nil
}

// typeName returns a short diagnostic label for a shape value.
func typeName(s any) string {
	t := fmt.Sprintf("%T", s)
	if i := strings.LastIndexByte(t, '.'); i >= 0 {
		return t[i+1:]
	}
	return t
}

// Anchor argument helpers. Anchor handlers receive loosely typed args from
// both Go call sites and the lisp engine; numbers may arrive as int or
// float64.

func argCountMax(args []any, max int) error {
	if len(args) > max {
		return fmt.Errorf("%w: got %d args, want at most %d",
			ErrIncorrectAnchorArgs, len(args), max)
	}
	return nil
}

func optFloat(args []any, i int, def float64) (float64, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	switch v := args[i].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: arg %d: expected number, got %T",
		ErrIncorrectAnchorArgs, i, args[i])
}

func wantFloat(args []any, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing required arg %d",
			ErrIncorrectAnchorArgs, i)
	}
	return optFloat(args, i, 0)
}

func optBool(args []any, i int, def bool) (bool, error) {
	if i >= len(args) || args[i] == nil {
		return def, nil
	}
	v, ok := args[i].(bool)
	if !ok {
		return false, fmt.Errorf("%w: arg %d: expected bool, got %T",
			ErrIncorrectAnchorArgs, i, args[i])
	}
	return v, nil
}
