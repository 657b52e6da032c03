package core

// DefaultPriority is the priority assigned to parts and materials that do
// not specify one.
const DefaultPriority = 5.0

// MaterialKind classifies how a material participates in final resolution.
type MaterialKind int

const (
	// Physical materials participate in geometric cutting.
	Physical MaterialKind = iota
	// NonPhysical materials are annotation/markup geometry: never cut
	// and never cutting.
	NonPhysical
)

// Part is a prioritized classification axis for grouping output geometry.
// Geometry of a higher-priority part is removed from overlapping geometry
// of lower-priority parts during final resolution.
type Part struct {
	Name     string
	Priority float64
}

// NewPart returns a part with the default priority.
func NewPart(name string) Part {
	return Part{Name: name, Priority: DefaultPriority}
}

// Material is a prioritized material tag. Like parts, higher-priority
// materials cut lower-priority ones unless the names match.
type Material struct {
	Name     string
	Priority float64
	Kind     MaterialKind
}

// NewMaterial returns a physical material with the default priority.
func NewMaterial(name string) Material {
	return Material{Name: name, Priority: DefaultPriority}
}

// DefaultPart tags geometry whose scope never set a part.
var DefaultPart = NewPart("default")

// DefaultMaterial tags geometry whose scope never set a material.
var DefaultMaterial = NewMaterial("default")

// PartMaterial is the grouping key for accumulated solids.
type PartMaterial struct {
	Part     Part
	Material Material
}

// Compare orders keys descending by (part priority, part name, material
// priority, material name). It returns -1 when pm sorts before o.
func (pm PartMaterial) Compare(o PartMaterial) int {
	if c := cmpDesc(pm.Part.Priority, o.Part.Priority); c != 0 {
		return c
	}
	if c := cmpDescStr(pm.Part.Name, o.Part.Name); c != 0 {
		return c
	}
	if c := cmpDesc(pm.Material.Priority, o.Material.Priority); c != 0 {
		return c
	}
	return cmpDescStr(pm.Material.Name, o.Material.Name)
}

// SameNames reports whether both the part and material names match.
// Groups with matching names never cut each other, regardless of priority.
func (pm PartMaterial) SameNames(o PartMaterial) bool {
	return pm.Part.Name == o.Part.Name && pm.Material.Name == o.Material.Name
}

func cmpDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func cmpDescStr(a, b string) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// MaterialMap rewrites attributes at a scope, typically to substitute
// materials, parts or colours when reusing a model for another purpose.
type MaterialMap interface {
	// MapAttributes returns the rewritten attributes. Implementations
	// must not mutate the input.
	MapAttributes(a *Attributes) *Attributes
}

// MaterialMapDefault sets a material on attributes that have none.
type MaterialMapDefault struct {
	Material Material
}

// NewMaterialMapDefault returns a map applying m where no material is set.
func NewMaterialMapDefault(m Material) *MaterialMapDefault {
	return &MaterialMapDefault{Material: m}
}

// MapAttributes implements MaterialMap.
func (d *MaterialMapDefault) MapAttributes(a *Attributes) *Attributes {
	if a.Material() != nil {
		return a.orEmpty()
	}
	return a.WithMaterial(d.Material)
}

// MaterialMapDefaultPart sets a part on attributes that have none.
type MaterialMapDefaultPart struct {
	Part Part
}

// NewMaterialMapDefaultPart returns a map applying p where no part is set.
func NewMaterialMapDefaultPart(p Part) *MaterialMapDefaultPart {
	return &MaterialMapDefaultPart{Part: p}
}

// MapAttributes implements MaterialMap.
func (d *MaterialMapDefaultPart) MapAttributes(a *Attributes) *Attributes {
	if a.Part() != nil {
		return a.orEmpty()
	}
	return a.WithPart(d.Part)
}

// MaterialMapBasic substitutes materials pairwise. Materials without an
// entry pass through unchanged.
type MaterialMapBasic struct {
	mapping map[Material]Material
}

// NewMaterialMapBasic builds a pairwise map from (from, to) material
// pairs. It panics on an odd number of arguments; the pairing is a
// programming error, not input.
func NewMaterialMapBasic(pairs ...Material) *MaterialMapBasic {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		panic("core: material map requires (from, to) pairs")
	}
	m := make(map[Material]Material, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		m[pairs[i]] = pairs[i+1]
	}
	return &MaterialMapBasic{mapping: m}
}

// MapAttributes implements MaterialMap.
func (b *MaterialMapBasic) MapAttributes(a *Attributes) *Attributes {
	mat := a.Material()
	if mat == nil {
		return a.orEmpty()
	}
	to, ok := b.mapping[*mat]
	if !ok {
		return a.orEmpty()
	}
	return a.WithMaterial(to)
}

// MaterialMapStack applies a sequence of maps in order.
type MaterialMapStack struct {
	stack []MaterialMap
}

// NewMaterialMapStack composes maps; the first runs first.
func NewMaterialMapStack(maps ...MaterialMap) *MaterialMapStack {
	return &MaterialMapStack{stack: maps}
}

// MapAttributes implements MaterialMap.
func (s *MaterialMapStack) MapAttributes(a *Attributes) *Attributes {
	a = a.orEmpty()
	for _, m := range s.stack {
		a = m.MapAttributes(a)
	}
	return a
}
