package core

import (
	"sort"
	"testing"
)

func TestPartMaterialCompare(t *testing.T) {
	k := func(pn string, pp float64, mn string, mp float64) PartMaterial {
		return PartMaterial{
			Part:     Part{Name: pn, Priority: pp},
			Material: Material{Name: mn, Priority: mp},
		}
	}

	keys := []PartMaterial{
		k("default", 5, "blue", 5),
		k("default", 5, "red", 5),
		k("lid", 6, "red", 5),
		k("default", 5, "red", 7),
		k("base", 5, "red", 5),
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Compare(keys[j]) < 0
	})

	want := []PartMaterial{
		k("lid", 6, "red", 5),
		k("default", 5, "red", 7),
		k("default", 5, "red", 5),
		k("default", 5, "blue", 5),
		k("base", 5, "red", 5),
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("sorted[%d] = %+v, want %+v", i, keys[i], want[i])
		}
	}
}

func TestPartMaterialCompareEqual(t *testing.T) {
	a := PartMaterial{Part: NewPart("p"), Material: NewMaterial("m")}
	if c := a.Compare(a); c != 0 {
		t.Errorf("Compare(a, a) = %d, want 0", c)
	}
}

func TestPartMaterialSameNames(t *testing.T) {
	a := PartMaterial{
		Part:     Part{Name: "p", Priority: 5},
		Material: Material{Name: "m", Priority: 5},
	}
	b := PartMaterial{
		Part:     Part{Name: "p", Priority: 9},
		Material: Material{Name: "m", Priority: 1},
	}
	if !a.SameNames(b) {
		t.Errorf("SameNames should ignore priorities")
	}
	c := b
	c.Material.Name = "other"
	if a.SameNames(c) {
		t.Errorf("SameNames matched different material names")
	}
}

func TestDefaultPartAndMaterial(t *testing.T) {
	if DefaultPart.Name != "default" || DefaultPart.Priority != DefaultPriority {
		t.Errorf("DefaultPart = %+v", DefaultPart)
	}
	if DefaultMaterial.Name != "default" || DefaultMaterial.Priority != DefaultPriority {
		t.Errorf("DefaultMaterial = %+v", DefaultMaterial)
	}
	if DefaultMaterial.Kind != Physical {
		t.Errorf("DefaultMaterial.Kind = %v, want Physical", DefaultMaterial.Kind)
	}
}

func TestMaterialMapBasic(t *testing.T) {
	red := NewMaterial("red")
	blue := NewMaterial("blue")
	m := NewMaterialMapBasic(red, blue)

	a := EmptyAttrs.WithMaterial(red)
	if got := m.MapAttributes(a).Material(); got == nil || *got != blue {
		t.Errorf("mapped material = %v, want %v", got, blue)
	}

	other := NewMaterial("green")
	b := EmptyAttrs.WithMaterial(other)
	if got := m.MapAttributes(b).Material(); got == nil || *got != other {
		t.Errorf("unmapped material changed: %v", got)
	}

	if got := m.MapAttributes(EmptyAttrs).Material(); got != nil {
		t.Errorf("map invented a material on empty attributes: %v", got)
	}
}

func TestMaterialMapBasicOddPairsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on odd pair count")
		}
	}()
	NewMaterialMapBasic(NewMaterial("a"), NewMaterial("b"), NewMaterial("c"))
}

func TestMaterialMapDefaultPart(t *testing.T) {
	lid := NewPart("lid")
	m := NewMaterialMapDefaultPart(lid)

	if got := m.MapAttributes(EmptyAttrs).Part(); got == nil || *got != lid {
		t.Errorf("default part map = %v, want %v", got, lid)
	}

	base := NewPart("base")
	a := EmptyAttrs.WithPart(base)
	if got := m.MapAttributes(a).Part(); got == nil || *got != base {
		t.Errorf("default part map replaced an existing part: %v", got)
	}
}
