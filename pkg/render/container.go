package render

import (
	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/scad"
)

// Container accumulates the geometry produced inside one render scope:
// solids bucketed by Part and Material, a flat hole list, and the head
// chain the scope imposes on everything it emits. Closing the scope feeds
// the container into its parent according to the scope's mode.
//
// Backend nodes are write-only once emitted, so a hole node may safely
// appear under several difference nodes without cloning; only head chains
// need per-group materialization.
type Container struct {
	mode      core.Mode
	shapeName string
	keys      []core.PartMaterial
	solids    map[core.PartMaterial][]scad.Node
	holes     []scad.Node
	heads     []head
}

func newContainer(mode core.Mode, shapeName string) *Container {
	return &Container{
		mode:      mode,
		shapeName: shapeName,
		solids:    make(map[core.PartMaterial][]scad.Node),
	}
}

func (c *Container) applyName(nodes []scad.Node) {
	if c.shapeName == "" {
		return
	}
	for _, n := range nodes {
		n.SetName(c.shapeName)
	}
}

// AddSolid appends nodes to the bucket for the given Part and Material.
func (c *Container) AddSolid(key core.PartMaterial, nodes ...scad.Node) {
	if len(nodes) == 0 {
		return
	}
	c.applyName(nodes)
	if _, ok := c.solids[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.solids[key] = append(c.solids[key], nodes...)
}

// AddHole appends nodes to the scope's hole list. Holes carry no Part or
// Material tagging.
func (c *Container) AddHole(nodes ...scad.Node) {
	if len(nodes) == 0 {
		return
	}
	c.applyName(nodes)
	c.holes = append(c.holes, nodes...)
}

func (c *Container) addHead(h head) {
	c.heads = append(c.heads, h)
}

// ensureFirstHead returns the first head of the chain, creating a plain
// union head when the chain is empty. Visibility modifiers attach here.
func (c *Container) ensureFirstHead() *head {
	if len(c.heads) == 0 {
		c.heads = append(c.heads, head{kind: headUnion, name: c.shapeName})
	}
	return &c.heads[0]
}

// modeContainer returns the operator node that combines one bucket.
func (c *Container) modeContainer() *scad.Group {
	var g *scad.Group
	switch c.mode {
	case core.ModeIntersect:
		g = scad.Intersection()
	case core.ModeHull:
		g = scad.Hull()
	case core.ModeMinkowski:
		g = scad.Minkowski()
	default:
		g = scad.Union()
	}
	if c.shapeName != "" {
		g.SetName(c.shapeName + " : combine")
	}
	return g
}

// taggedGroup is one combined bucket keyed for propagation.
type taggedGroup struct {
	key  core.PartMaterial
	node scad.Node
}

// groups wraps each bucket in the scope's operator container, without
// folding holes in and without heads. Used by the root resolver, which
// handles holes itself.
func (c *Container) groups() []taggedGroup {
	out := make([]taggedGroup, 0, len(c.keys))
	for _, key := range c.keys {
		g := c.modeContainer()
		g.Append(c.solids[key]...)
		out = append(out, taggedGroup{key: key, node: g})
	}
	return out
}

// combine folds the scope's holes into every bucket and wraps each result
// in a fresh copy of the head chain. A scope holding only holes combines
// to nothing; subtracting from nothing is a no-op, not an error.
func (c *Container) combine() []taggedGroup {
	out := c.groups()
	for i, g := range out {
		node := g.node
		if len(c.holes) > 0 {
			d := scad.Difference(node)
			d.Append(c.holes...)
			if c.shapeName != "" {
				d.SetName(c.shapeName + " : combine")
			}
			node = d
		}
		out[i].node = materializeHeads(c.heads, []scad.Node{node})[0]
	}
	return out
}

// combineFlat combines and strips the Part/Material tagging, for hole
// propagation.
func (c *Container) combineFlat() []scad.Node {
	groups := c.combine()
	out := make([]scad.Node, len(groups))
	for i, g := range groups {
		out[i] = g.node
	}
	return out
}

// composite returns the scope's solids and holes separately, each wrapped
// in its own copy of the head chain, tags preserved on solids.
func (c *Container) composite() ([]taggedGroup, []scad.Node) {
	solids := c.groups()
	for i := range solids {
		solids[i].node = materializeHeads(c.heads, []scad.Node{solids[i].node})[0]
	}
	var holes []scad.Node
	if len(c.holes) > 0 {
		holes = materializeHeads(c.heads, c.holes)
	}
	return solids, holes
}

// close feeds this container into parent according to its mode.
func (c *Container) close(parent *Container) {
	switch c.mode {
	case core.ModeCage:
		// Cages only mark space; nothing propagates.
	case core.ModeHole:
		parent.AddHole(c.combineFlat()...)
	case core.ModeComposite:
		solids, holes := c.composite()
		for _, g := range solids {
			parent.AddSolid(g.key, g.node)
		}
		parent.AddHole(holes...)
	default:
		// Solid, Intersect, Hull and Minkowski all propagate their
		// combined buckets upward with tags intact.
		for _, g := range c.combine() {
			parent.AddSolid(g.key, g.node)
		}
	}
}
