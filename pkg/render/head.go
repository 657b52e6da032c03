package render

import (
	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

type headKind int

const (
	headUnion headKind = iota
	headTransform
	headColour
)

// head is an immutable descriptor of one wrapper node a scope imposes on
// everything passing through it. Descriptors are materialized into fresh
// backend nodes once per output group, so a chain is never shared between
// two parents.
type head struct {
	kind   headKind
	frame  linear.M
	colour core.Colour
	mods   scad.Modifier
	name   string
}

// wrapper is a backend node that can hold children.
type wrapper interface {
	scad.Node
	Append(children ...scad.Node)
}

func (h head) materialize() wrapper {
	var g wrapper
	switch h.kind {
	case headTransform:
		g = scad.MultMatrix(h.frame.Rows())
	case headColour:
		c := h.colour
		g = scad.Color(c.R, c.G, c.B, c.A)
	default:
		g = scad.Union()
	}
	if h.name != "" {
		g.SetName(h.name)
	}
	if h.mods != 0 {
		g.AddModifier(h.mods)
	}
	return g
}

// materializeHeads wraps nodes in a fresh copy of the head chain. With no
// heads the nodes pass through unchanged.
func materializeHeads(heads []head, nodes []scad.Node) []scad.Node {
	if len(heads) == 0 {
		return nodes
	}
	var top, last wrapper
	for _, h := range heads {
		g := h.materialize()
		if top == nil {
			top = g
		} else {
			last.Append(g)
		}
		last = g
	}
	last.Append(nodes...)
	return []scad.Node{top}
}
