package core

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/tenon/pkg/linear"
)

func approxVec(t *testing.T, label string, got, want linear.Vec3) {
	t.Helper()
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("%s = %v, want %v", label, got, want)
	}
}

func anchorAt(t *testing.T, s Shape, name string, args ...any) linear.M {
	t.Helper()
	m, err := s.At(name, args...)
	if err != nil {
		t.Fatalf("At(%q, %v): %v", name, args, err)
	}
	return m
}

func TestBoxCentre(t *testing.T) {
	b := NewBox(2, 4, 6)
	m := anchorAt(t, b, "centre")
	approxVec(t, "centre", m.Translation(), linear.Vec3{X: 1, Y: 2, Z: 3})
}

func TestBoxFaceCentre(t *testing.T) {
	b := NewBox(2, 4, 6)
	zAxis := linear.Vec3{Z: 1}

	top := anchorAt(t, b, "face_centre", "top")
	approxVec(t, "top position", top.Translation(), linear.Vec3{X: 1, Y: 2, Z: 6})
	approxVec(t, "top normal", top.MulDir(zAxis), linear.Vec3{Z: 1})

	base := anchorAt(t, b, "face_centre", "base")
	approxVec(t, "base position", base.Translation(), linear.Vec3{X: 1, Y: 2, Z: 0})
	approxVec(t, "base normal", base.MulDir(zAxis), linear.Vec3{Z: -1})

	front := anchorAt(t, b, "face_centre", "front")
	approxVec(t, "front position", front.Translation(), linear.Vec3{X: 1, Y: 0, Z: 3})
	approxVec(t, "front normal", front.MulDir(zAxis), linear.Vec3{Y: -1})

	// Numeric face indices name the same faces.
	if got := anchorAt(t, b, "face_centre", 4); !got.ApproxEqual(top, 1e-9) {
		t.Errorf("face index 4 != face \"top\"")
	}
}

func TestBoxFaceCentreDepth(t *testing.T) {
	b := NewBox(2, 4, 6)
	// h moves the anchor into the solid along the outward normal.
	m := anchorAt(t, b, "face_centre", "top", 1.5)
	approxVec(t, "top h=1.5", m.Translation(), linear.Vec3{X: 1, Y: 2, Z: 4.5})

	// rh is a fraction of the depth axis.
	m = anchorAt(t, b, "face_centre", "top", 0.0, 0.5)
	approxVec(t, "top rh=0.5", m.Translation(), linear.Vec3{X: 1, Y: 2, Z: 3})
}

func TestBoxFaceCornerAndEdge(t *testing.T) {
	b := NewBox(2, 4, 6)

	c := anchorAt(t, b, "face_corner", "top", 0.0)
	approxVec(t, "top corner 0", c.Translation(), linear.Vec3{X: 0, Y: 0, Z: 6})

	e := anchorAt(t, b, "face_edge", "top", 0.0)
	approxVec(t, "top edge 0", e.Translation(), linear.Vec3{X: 1, Y: 0, Z: 6})

	// t slides along the edge, d offsets past it.
	e = anchorAt(t, b, "face_edge", "top", 0.0, 0.25)
	approxVec(t, "top edge t=0.25", e.Translation(), linear.Vec3{X: 0.5, Y: 0, Z: 6})
}

func TestBoxFaceSelectorErrors(t *testing.T) {
	b := NewBox(1, 1, 1)
	if _, err := b.At("face_centre", "bottom"); !errors.Is(err, ErrIncorrectAnchorArgs) {
		t.Errorf("unknown face name: err = %v", err)
	}
	if _, err := b.At("face_centre", 7); !errors.Is(err, ErrIncorrectAnchorArgs) {
		t.Errorf("face index out of range: err = %v", err)
	}
	if _, err := b.At("face_centre"); !errors.Is(err, ErrIncorrectAnchorArgs) {
		t.Errorf("missing face selector: err = %v", err)
	}
	if _, err := b.At("face_edge", "top", 9.0); !errors.Is(err, ErrIncorrectAnchorArgs) {
		t.Errorf("edge index out of range: err = %v", err)
	}
}

func TestBoxAnchorNotFound(t *testing.T) {
	b := NewBox(1, 1, 1)
	_, err := b.At("fase_centre")
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("err = %v, want ErrAnchorNotFound", err)
	}
	for _, name := range []string{"centre", "face_centre", "face_edge", "face_corner"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not list anchor %q", err, name)
		}
	}
}

func TestSphereAnchors(t *testing.T) {
	s, err := NewSphere(3)
	if err != nil {
		t.Fatal(err)
	}
	zAxis := linear.Vec3{Z: 1}

	top := anchorAt(t, s, "top")
	approxVec(t, "top", top.Translation(), linear.Vec3{Z: 3})

	base := anchorAt(t, s, "base")
	approxVec(t, "base position", base.Translation(), linear.Vec3{Z: -3})
	approxVec(t, "base normal", base.MulDir(zAxis), linear.Vec3{Z: -1})

	surf := anchorAt(t, s, "surface", 0.0, 0.0, 0.0)
	approxVec(t, "surface position", surf.Translation(), linear.Vec3{X: 3})
	approxVec(t, "surface normal", surf.MulDir(zAxis), linear.Vec3{X: 1})
}

func TestSphereIllegalRadius(t *testing.T) {
	if _, err := NewSphere(0); !errors.Is(err, ErrIllegalParameter) {
		t.Errorf("NewSphere(0) err = %v", err)
	}
	if _, err := NewSphere(-2); !errors.Is(err, ErrIllegalParameter) {
		t.Errorf("NewSphere(-2) err = %v", err)
	}
}

func TestConeAnchors(t *testing.T) {
	c, err := NewCylinder(10, 2)
	if err != nil {
		t.Fatal(err)
	}
	zAxis := linear.Vec3{Z: 1}

	approxVec(t, "base", anchorAt(t, c, "base").MulDir(zAxis), linear.Vec3{Z: -1})
	approxVec(t, "top", anchorAt(t, c, "top").Translation(), linear.Vec3{Z: 10})
	approxVec(t, "centre", anchorAt(t, c, "centre").Translation(), linear.Vec3{Z: 5})

	surf := anchorAt(t, c, "surface", 5.0)
	approxVec(t, "surface position", surf.Translation(), linear.Vec3{X: 2, Z: 5})
	approxVec(t, "surface normal", surf.MulDir(zAxis), linear.Vec3{X: 1})

	// The angle argument sweeps the anchor around the axis.
	surf = anchorAt(t, c, "surface", 5.0, 90.0)
	approxVec(t, "surface at 90", surf.Translation(), linear.Vec3{Y: 2, Z: 5})
}

func TestConeSurfaceTangent(t *testing.T) {
	c, err := NewCone(4, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	surf := anchorAt(t, c, "surface", 0.0)
	approxVec(t, "base rim", surf.Translation(), linear.Vec3{X: 3})

	// On a 3-4-5 cone the surface normal leans out by atan(3/4).
	n := surf.MulDir(linear.Vec3{Z: 1})
	wantX := 4.0 / 5.0
	wantZ := 3.0 / 5.0
	if math.Abs(n.X-wantX) > 1e-9 || math.Abs(n.Z-wantZ) > 1e-9 || math.Abs(n.Y) > 1e-9 {
		t.Errorf("tangent surface normal = %v, want (%g, 0, %g)", n, wantX, wantZ)
	}
}

func TestConeIllegalParameters(t *testing.T) {
	if _, err := NewCone(-1, 1, 1); !errors.Is(err, ErrIllegalParameter) {
		t.Errorf("negative height err = %v", err)
	}
	if _, err := NewCone(1, -1, 1); !errors.Is(err, ErrIllegalParameter) {
		t.Errorf("negative radius err = %v", err)
	}
	if _, err := NewCone(1, 0, 0); !errors.Is(err, ErrIllegalParameter) {
		t.Errorf("zero radii err = %v", err)
	}
}
