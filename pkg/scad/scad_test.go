package scad

import (
	"strings"
	"testing"
)

func TestCubeOutput(t *testing.T) {
	c := NewCube(10, 20, 30)
	got := String(c)
	want := "cube(size=[10, 20, 30]);\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnionNesting(t *testing.T) {
	u := Union(NewCube(1, 1, 1), NewSphere(2))
	got := String(u)
	want := "union() {\n  cube(size=[1, 1, 1]);\n  sphere(r=2);\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDiagnosticName(t *testing.T) {
	c := NewCube(1, 1, 1)
	c.SetName("box")
	got := String(c)
	if !strings.HasPrefix(got, "// \"box\"\n") {
		t.Errorf("name comment missing: %q", got)
	}
}

func TestModifiers(t *testing.T) {
	s := NewSphere(1)
	s.AddModifier(Debug)
	s.AddModifier(Transparent)
	got := String(s)
	if !strings.HasPrefix(got, "#%sphere") {
		t.Errorf("modifier prefix wrong: %q", got)
	}
}

func TestModifierOrderStable(t *testing.T) {
	a := NewCube(1, 1, 1)
	a.AddModifier(Transparent)
	a.AddModifier(Disable)
	b := NewCube(1, 1, 1)
	b.AddModifier(Disable)
	b.AddModifier(Transparent)
	if String(a) != String(b) {
		t.Error("modifier emission order should not depend on add order")
	}
}

func TestMultMatrix(t *testing.T) {
	m := MultMatrix([4][4]float64{
		{1, 0, 0, -5},
		{0, 1, 0, -10},
		{0, 0, 1, -15},
		{0, 0, 0, 1},
	})
	m.Append(NewCube(10, 20, 30))
	got := String(m)
	want := "multmatrix(m=[[1, 0, 0, -5], [0, 1, 0, -10], [0, 0, 1, -15], [0, 0, 0, 1]]) {\n" +
		"  cube(size=[10, 20, 30]);\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestColor(t *testing.T) {
	c := Color(1, 0, 0.5, 1)
	c.Append(NewCylinder(5, 2))
	got := String(c)
	want := "color(c=[1, 0, 0.5, 1]) {\n  cylinder(h=5, r1=2, r2=2);\n}\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCylinderSegmentArgs(t *testing.T) {
	c := NewCone(10, 4, 0)
	c.Fn = 32
	got := String(c)
	want := "cylinder(h=10, r1=4, r2=0, $fn=32);\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestModuleAndCall(t *testing.T) {
	mod := NewModule("part_a")
	mod.Append(NewCube(1, 2, 3))
	got := String(mod)
	want := "module part_a() {\n  cube(size=[1, 2, 3]);\n} // end module part_a\n"
	if got != want {
		t.Errorf("module: got %q, want %q", got, want)
	}
	if got := String(NewCall("part_a")); got != "part_a();\n" {
		t.Errorf("call: got %q", got)
	}
}

func TestLazyUnion(t *testing.T) {
	l := NewLazyUnion()
	l.Append(NewCall("a"), NewCall("b"))
	got := String(l)
	want := "// Start: lazy_union\na();\nb();\n// End: lazy_union\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyLazyUnion(t *testing.T) {
	got := String(NewLazyUnion())
	want := "// Start: lazy_union\n// End: lazy_union\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeterminism(t *testing.T) {
	build := func() Node {
		d := Difference(Union(NewCube(3, 3, 3)), NewSphere(1))
		d.SetName("cut")
		return d
	}
	if String(build()) != String(build()) {
		t.Error("identical trees should render identically")
	}
}
