// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/linear"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func unwrapAll(solids []kernel.Solid) []sdf.SDF3 {
	out := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		out[i] = unwrap(s)
	}
	return out
}

// Cube creates a box with its minimum corner at the origin, matching the
// cube primitive of the emitted model language. sdf.Box3D centers the box
// at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Cube(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Sphere creates a sphere centred on the origin.
func (k *SdfxKernel) Sphere(r float64) kernel.Solid {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Cone creates a conical frustum with its base on the z=0 plane. Equal
// radii produce a plain cylinder. sdfx centers solids on the origin, so
// the result is shifted up by half the height.
func (k *SdfxKernel) Cone(h, rBase, rTop float64) kernel.Solid {
	var s sdf.SDF3
	var err error
	if rBase == rTop {
		s, err = sdf.Cylinder3D(h, rBase, 0)
	} else {
		s, err = sdf.Cone3D(h, rBase, rTop, 0)
	}
	if err != nil {
		panic(fmt.Sprintf("sdfx cone: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{Z: h / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Union returns the union of the given solids.
func (k *SdfxKernel) Union(solids ...kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrapAll(solids)...))
}

// Difference subtracts every cut solid from base.
func (k *SdfxKernel) Difference(base kernel.Solid, cuts ...kernel.Solid) kernel.Solid {
	if len(cuts) == 0 {
		return base
	}
	return wrap(sdf.Difference3D(unwrap(base), sdf.Union3D(unwrapAll(cuts)...)))
}

// Intersection returns the intersection of the given solids.
func (k *SdfxKernel) Intersection(solids ...kernel.Solid) kernel.Solid {
	ss := unwrapAll(solids)
	out := ss[0]
	for _, s := range ss[1:] {
		out = sdf.Intersect3D(out, s)
	}
	return wrap(out)
}

// Transform applies an affine map to a solid.
//
// sdfx's Transform3D takes its own matrix type, which offers no general
// constructor from raw elements, so the transform is implemented directly:
// evaluate the wrapped field at the inverse-mapped point and map the
// bounding box corners forward. The field keeps the correct sign
// everywhere; distances are exact only under rigid transforms, which is
// sufficient for marching cubes sampling.
func (k *SdfxKernel) Transform(s kernel.Solid, m linear.M) kernel.Solid {
	inner := unwrap(s)
	t := &transformSDF{s: inner, inv: m.Inverse()}
	t.bb = mapBox(inner.BoundingBox(), m)
	return wrap(t)
}

type transformSDF struct {
	s   sdf.SDF3
	inv linear.M
	bb  sdf.Box3
}

func (t *transformSDF) Evaluate(p v3.Vec) float64 {
	q := t.inv.MulVec(linear.Vec3{X: p.X, Y: p.Y, Z: p.Z})
	return t.s.Evaluate(v3.Vec{X: q.X, Y: q.Y, Z: q.Z})
}

func (t *transformSDF) BoundingBox() sdf.Box3 {
	return t.bb
}

// mapBox returns the axis-aligned box containing the transformed corners
// of bb.
func mapBox(bb sdf.Box3, m linear.M) sdf.Box3 {
	var out sdf.Box3
	first := true
	for _, x := range []float64{bb.Min.X, bb.Max.X} {
		for _, y := range []float64{bb.Min.Y, bb.Max.Y} {
			for _, z := range []float64{bb.Min.Z, bb.Max.Z} {
				p := m.MulVec(linear.Vec3{X: x, Y: y, Z: z})
				if first {
					out.Min = v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
					out.Max = out.Min
					first = false
					continue
				}
				out.Min.X = minF(out.Min.X, p.X)
				out.Min.Y = minF(out.Min.Y, p.Y)
				out.Min.Z = minF(out.Min.Z, p.Z)
				out.Max.X = maxF(out.Max.X, p.X)
				out.Max.Y = maxF(out.Max.Y, p.Y)
				out.Max.Z = maxF(out.Max.Z, p.Z)
			}
		}
	}
	return out
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
