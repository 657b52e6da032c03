//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/linear"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func TestCube(t *testing.T) {
	k := mustNew(t)
	s := k.Cube(10, 20, 30)
	if s == nil {
		t.Fatal("Cube() returned nil")
	}
	min, max := s.BoundingBox()

	// Cube has its minimum corner at the origin.
	wantMin := [3]float64{0, 0, 0}
	wantMax := [3]float64{10, 20, 30}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Cube min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Cube max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestCone(t *testing.T) {
	k := mustNew(t)
	s := k.Cone(20, 5, 5)
	if s == nil {
		t.Fatal("Cone() returned nil")
	}
	min, max := s.BoundingBox()

	// Base sits on z=0, radius 5, height 20.
	if min[2] < -0.01 || min[2] > 0.01 {
		t.Errorf("Cone min Z = %f, want ~0", min[2])
	}
	if max[2] < 19.99 || max[2] > 20.01 {
		t.Errorf("Cone max Z = %f, want ~20", max[2])
	}

	// X/Y bounds should be within the radius (polygon inscribed in circle).
	for i := 0; i < 2; i++ {
		if min[i] > -4.5 {
			t.Errorf("Cone min[%d] = %f, want <= -4.5", i, min[i])
		}
		if max[i] < 4.5 {
			t.Errorf("Cone max[%d] = %f, want >= 4.5", i, max[i])
		}
	}
}

func TestDifference(t *testing.T) {
	k := mustNew(t)
	box := k.Cube(10, 10, 10)
	hole := k.Cone(20, 3, 3)
	result := k.Difference(box, hole)
	if result == nil {
		t.Fatal("Difference() returned nil")
	}

	// The hole pokes through one corner region; the box footprint stays.
	min, max := result.BoundingBox()
	wantMin := [3]float64{0, 0, 0}
	wantMax := [3]float64{10, 10, 10}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Difference min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Difference max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestTransformTranslation(t *testing.T) {
	k := mustNew(t)
	box := k.Cube(10, 10, 10)
	moved := k.Transform(box, linear.Translate(linear.Vec3{X: 100, Y: 200, Z: 300}))
	if moved == nil {
		t.Fatal("Transform() returned nil")
	}

	min, max := moved.BoundingBox()
	wantMin := [3]float64{100, 200, 300}
	wantMax := [3]float64{110, 210, 310}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("Transform min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("Transform max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestUnionVariadic(t *testing.T) {
	k := mustNew(t)
	a := k.Cube(10, 10, 10)
	b := k.Transform(k.Cube(10, 10, 10), linear.Translate(linear.Vec3{X: 20}))
	c := k.Transform(k.Cube(10, 10, 10), linear.Translate(linear.Vec3{X: 40}))
	u := k.Union(a, b, c)

	min, max := u.BoundingBox()
	if math.Abs(min[0]) > 1e-6 || math.Abs(max[0]-50) > 1e-6 {
		t.Errorf("Union X span = [%f, %f], want [0, 50]", min[0], max[0])
	}
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	box := k.Cube(10, 10, 10)
	mesh, err := k.ToMesh(box, 0)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if mesh.IsEmpty() {
		t.Error("ToMesh() returned empty mesh for a box")
	}

	// A box has 8 vertices and 12 triangles (2 per face, 6 faces).
	// Manifold may produce more vertices due to sharp edges requiring
	// separate normals, but at least that many must appear.
	if mesh.TriangleCount() < 12 {
		t.Errorf("ToMesh() triangle count = %d, want >= 12", mesh.TriangleCount())
	}
	if mesh.VertexCount() < 8 {
		t.Errorf("ToMesh() vertex count = %d, want >= 8", mesh.VertexCount())
	}

	// Verify normals array has the same length as vertices.
	if len(mesh.Normals) != len(mesh.Vertices) {
		t.Errorf("ToMesh() normals length = %d, vertices length = %d, want equal",
			len(mesh.Normals), len(mesh.Vertices))
	}
}
