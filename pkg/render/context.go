package render

import (
	"fmt"

	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// scope is one entry of the render stack.
type scope struct {
	container *Container
	mode      core.Mode
	frame     linear.M
	attrs     *core.Attributes // effective (merged) attributes
	mapped    *core.Attributes // post-material-map attributes, memoised
	node      int              // graph node id
}

// scopeStack mirrors Maker.Render's recursion. The
// bottom scope is the root collector and is created by the Renderer; it
// never pops through the public surface.
type scopeStack struct {
	stack []scope
	graph *Graph
}

func newScopeStack(g *Graph, frame linear.M, attrs *core.Attributes) *scopeStack {
	c := &scopeStack{graph: g}
	root := g.addNode("root", "")
	c.pushScope(core.ModeSolid, frame, attrs, "", root)
	return c
}

func (c *scopeStack) top() *scope {
	return &c.stack[len(c.stack)-1]
}

// pushScope opens a scope, computing the attribute overlay and emitting
// head descriptors only for what actually changed at this scope.
func (c *scopeStack) pushScope(mode core.Mode, frame linear.M, attrs *core.Attributes, name string, node int) {
	parentAttrs := core.EmptyAttrs
	parentMapped := core.EmptyAttrs
	if len(c.stack) > 0 {
		t := c.top()
		parentAttrs = t.attrs
		parentMapped = t.mapped
	}

	merged := parentAttrs.Merge(attrs)
	diff := parentAttrs.Diff(merged)
	mapped := parentMapped
	if !diff.IsEmpty() {
		mapped = merged.Mapped()
	}

	cont := newContainer(mode, name)

	if !frame.IsIdentity() {
		cont.addHead(head{kind: headTransform, frame: frame, name: name})
	}
	mappedDiff := parentMapped.Diff(mapped)
	if col := mappedDiff.Colour(); col != nil {
		cont.addHead(head{kind: headColour, colour: *col, name: name})
	}

	var mods scad.Modifier
	if diff.Disable() {
		mods |= scad.Disable
	}
	if diff.ShowOnly() {
		mods |= scad.ShowOnly
	}
	if diff.Debug() {
		mods |= scad.Debug
	}
	if diff.Transparent() {
		mods |= scad.Transparent
	}
	if mods != 0 {
		cont.ensureFirstHead().mods |= mods
	}

	c.stack = append(c.stack, scope{
		container: cont,
		mode:      mode,
		frame:     frame,
		attrs:     merged,
		mapped:    mapped,
		node:      node,
	})
}

func (c *scopeStack) push(mode core.Mode, frame linear.M, attrs *core.Attributes, name, shapeType string) {
	node := c.graph.addNode(name, shapeType)
	c.graph.addEdge(c.top().node, node)
	c.pushScope(mode, frame, attrs, name, node)
}

// pop closes the top scope into its parent. The root scope stays put; a
// pop that would remove it is an underflow.
func (c *scopeStack) pop() error {
	if len(c.stack) <= 1 {
		return fmt.Errorf("%w: pop called more times than push", ErrRenderStackUnderflow)
	}
	last := c.top()
	c.stack = c.stack[:len(c.stack)-1]
	last.container.close(c.top().container)
	return nil
}

// bucketKey resolves the Part/Material bucket for geometry added at the
// current scope, substituting the defaults for unset fields.
func (c *scopeStack) bucketKey() core.PartMaterial {
	mapped := c.top().mapped
	key := core.PartMaterial{Part: core.DefaultPart, Material: core.DefaultMaterial}
	if p := mapped.Part(); p != nil {
		key.Part = *p
	}
	if m := mapped.Material(); m != nil {
		key.Material = *m
	}
	return key
}
