// Package render walks a composition tree, accumulating per-scope CSG
// containers, and resolves the accumulated Part/Material groups into
// deterministic output documents.
package render

import (
	"fmt"

	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// Renderer drives one render invocation. It owns its scope stack
// exclusively; concurrent renders each need their own Renderer.
type Renderer struct {
	scopes *scopeStack
	graph  *Graph
}

var _ core.Renderer = (*Renderer)(nil)

// NewRenderer returns a renderer with an identity initial frame and no
// initial attributes.
func NewRenderer() *Renderer {
	return NewRendererWith(linear.Identity, nil)
}

// NewRendererWith returns a renderer whose root scope carries the given
// initial frame and attributes.
func NewRendererWith(frame linear.M, attrs *core.Attributes) *Renderer {
	g := newGraph()
	return &Renderer{scopes: newScopeStack(g, frame, attrs), graph: g}
}

// Push implements core.Renderer.
func (r *Renderer) Push(mode core.Mode, frame linear.M, attrs *core.Attributes, name, shapeType string) {
	r.scopes.push(mode, frame, attrs, name, shapeType)
}

// Pop implements core.Renderer.
func (r *Renderer) Pop() error {
	return r.scopes.pop()
}

// Add implements core.Renderer: geometry lands in the current scope's
// bucket for its effective Part and Material.
func (r *Renderer) Add(nodes ...scad.Node) {
	r.scopes.top().container.AddSolid(r.scopes.bucketKey(), nodes...)
}

// Attributes implements core.Renderer: the effective attributes of the
// current scope.
func (r *Renderer) Attributes() *core.Attributes {
	return r.scopes.top().attrs
}

// Close finalizes the render. Every pushed scope must have been popped;
// the root scope then feeds the Part/Material resolver.
func (r *Renderer) Close() (*Result, error) {
	if n := len(r.scopes.stack); n != 1 {
		return nil, fmt.Errorf("%w: %d scopes remain on the render stack",
			ErrRenderStackNotEmpty, n-1)
	}
	return resolve(r.scopes.top().container, r.graph), nil
}

// Render renders a shape with an identity initial frame.
func Render(shape core.Shape) (*Result, error) {
	return RenderWith(shape, linear.Identity, nil)
}

// RenderWith renders a shape with an initial frame and attributes applied
// at the root scope.
func RenderWith(shape core.Shape, frame linear.M, attrs *core.Attributes) (*Result, error) {
	r := NewRendererWith(frame, attrs)
	if err := shape.Render(r); err != nil {
		return nil, err
	}
	res, err := r.Close()
	if err != nil {
		return nil, err
	}
	res.Shape = shape
	return res, nil
}
