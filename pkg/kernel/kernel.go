// Package kernel defines the abstract geometry kernel interface and an
// evaluator that lowers a rendered output document onto it. Implementations
// (sdfx) provide solid modeling and boolean operations behind this
// interface, so mesh output can swap backends without touching the
// composition engine.
package kernel

import "github.com/chazu/tenon/pkg/linear"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Cube has its minimum corner at the origin; Sphere is
	// centred on the origin; Cone sits base-down on the z=0 plane.
	Cube(x, y, z float64) Solid
	Sphere(r float64) Solid
	Cone(h, rBase, rTop float64) Solid

	// Boolean operations. Difference subtracts every cut solid from base.
	Union(solids ...Solid) Solid
	Difference(base Solid, cuts ...Solid) Solid
	Intersection(solids ...Solid) Solid

	// Transform applies an affine map to a solid.
	Transform(s Solid, m linear.M) Solid

	// ToMesh tessellates a solid. cells controls the sampling resolution
	// along the longest bounding box axis; 0 selects a backend default.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
