package kernel

import (
	"fmt"

	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// Evaluator lowers an output document onto a geometry kernel. Module
// definitions are collected first so calls can expand in place; the
// hull and minkowski operators have no SDF lowering and fail cleanly.
type Evaluator struct {
	kernel  Kernel
	modules map[string]*scad.Module
}

// NewEvaluator returns an evaluator backed by k.
func NewEvaluator(k Kernel) *Evaluator {
	return &Evaluator{kernel: k, modules: make(map[string]*scad.Module)}
}

// Document evaluates a complete output document to a single solid. A
// document with no geometry returns nil.
func (e *Evaluator) Document(doc *scad.LazyUnion) (Solid, error) {
	var body []scad.Node
	for _, n := range doc.Children() {
		if mod, ok := n.(*scad.Module); ok {
			e.modules[mod.ModName] = mod
			continue
		}
		body = append(body, n)
	}
	return e.evalAll(body)
}

func (e *Evaluator) evalAll(nodes []scad.Node) (Solid, error) {
	var solids []Solid
	for _, n := range nodes {
		s, err := e.eval(n)
		if err != nil {
			return nil, err
		}
		if s != nil {
			solids = append(solids, s)
		}
	}
	switch len(solids) {
	case 0:
		return nil, nil
	case 1:
		return solids[0], nil
	}
	return e.kernel.Union(solids...), nil
}

func (e *Evaluator) eval(n scad.Node) (Solid, error) {
	if n.Modifiers()&scad.Disable != 0 {
		return nil, nil
	}

	switch v := n.(type) {
	case *scad.Cube:
		return e.kernel.Cube(v.Size[0], v.Size[1], v.Size[2]), nil

	case *scad.Sphere:
		return e.kernel.Sphere(v.R), nil

	case *scad.Cylinder:
		return e.kernel.Cone(v.H, v.R1, v.R2), nil

	case *scad.MultMatrixNode:
		inner, err := e.evalAll(v.Children())
		if err != nil || inner == nil {
			return nil, err
		}
		return e.kernel.Transform(inner, linear.FromRows(v.Matrix())), nil

	case *scad.ColorNode:
		// Colour has no geometric effect.
		return e.evalAll(v.Children())

	case *scad.Call:
		mod, ok := e.modules[v.ModName]
		if !ok {
			return nil, fmt.Errorf("kernel: call of undefined module %q", v.ModName)
		}
		return e.evalAll(mod.Children())

	case *scad.Group:
		return e.evalGroup(v)
	}
	return nil, fmt.Errorf("kernel: unsupported node type %T", n)
}

func (e *Evaluator) evalGroup(g *scad.Group) (Solid, error) {
	switch g.Head() {
	case "union()":
		return e.evalAll(g.Children())

	case "difference()":
		children := g.Children()
		if len(children) == 0 {
			return nil, nil
		}
		base, err := e.eval(children[0])
		if err != nil || base == nil {
			return nil, err
		}
		var cuts []Solid
		for _, c := range children[1:] {
			s, err := e.eval(c)
			if err != nil {
				return nil, err
			}
			if s != nil {
				cuts = append(cuts, s)
			}
		}
		if len(cuts) == 0 {
			return base, nil
		}
		return e.kernel.Difference(base, cuts...), nil

	case "intersection()":
		var solids []Solid
		for _, c := range g.Children() {
			s, err := e.eval(c)
			if err != nil {
				return nil, err
			}
			if s == nil {
				// Intersecting with nothing yields nothing.
				return nil, nil
			}
			solids = append(solids, s)
		}
		if len(solids) == 0 {
			return nil, nil
		}
		if len(solids) == 1 {
			return solids[0], nil
		}
		return e.kernel.Intersection(solids...), nil
	}
	return nil, fmt.Errorf("kernel: no lowering for operator %q", g.Head())
}

// EvaluateDocument lowers doc onto k and returns the resulting solid.
func EvaluateDocument(doc *scad.LazyUnion, k Kernel) (Solid, error) {
	return NewEvaluator(k).Document(doc)
}
