package core

// Colour is an RGBA colour applied to a scope of the model.
type Colour struct {
	R, G, B, A float64
}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Colour {
	return Colour{r, g, b, 1}
}

// RGBA returns the colour components as an array.
func (c Colour) RGBA() [4]float64 {
	return [4]float64{c.R, c.G, c.B, c.A}
}

// Attributes is the scoped, nullable configuration record attached to a
// composition scope. Every field is independently unset by default.
// Attributes values are immutable once built; the With methods return a
// modified copy and Merge/Diff combine values without mutating either
// operand. A nil *Attributes is the empty record.
type Attributes struct {
	colour         *Colour
	fa             *float64
	fs             *float64
	fn             *int
	segmentLines   *bool
	disable        *bool
	showOnly       *bool
	debug          *bool
	transparent    *bool
	usePolyhedrons *bool
	material       *Material
	materialMap    MaterialMap
	part           *Part
}

// EmptyAttrs is the attribute record with every field unset.
var EmptyAttrs = &Attributes{}

func (a *Attributes) orEmpty() *Attributes {
	if a == nil {
		return EmptyAttrs
	}
	return a
}

func (a *Attributes) clone() *Attributes {
	c := *a.orEmpty()
	return &c
}

// IsEmpty reports whether every field is unset.
func (a *Attributes) IsEmpty() bool {
	a = a.orEmpty()
	return a.colour == nil && a.fa == nil && a.fs == nil && a.fn == nil &&
		a.segmentLines == nil && a.disable == nil && a.showOnly == nil &&
		a.debug == nil && a.transparent == nil && a.usePolyhedrons == nil &&
		a.material == nil && a.materialMap == nil && a.part == nil
}

// Merge returns a record with override's set fields replacing a's.
// Merge(a, empty) == a.
func (a *Attributes) Merge(override *Attributes) *Attributes {
	a = a.orEmpty()
	if override.IsEmpty() {
		return a
	}
	o := override.orEmpty()
	r := a.clone()
	if o.colour != nil {
		r.colour = o.colour
	}
	if o.fa != nil {
		r.fa = o.fa
	}
	if o.fs != nil {
		r.fs = o.fs
	}
	if o.fn != nil {
		r.fn = o.fn
	}
	if o.segmentLines != nil {
		r.segmentLines = o.segmentLines
	}
	if o.disable != nil {
		r.disable = o.disable
	}
	if o.showOnly != nil {
		r.showOnly = o.showOnly
	}
	if o.debug != nil {
		r.debug = o.debug
	}
	if o.transparent != nil {
		r.transparent = o.transparent
	}
	if o.usePolyhedrons != nil {
		r.usePolyhedrons = o.usePolyhedrons
	}
	if o.material != nil {
		r.material = o.material
	}
	if o.materialMap != nil {
		r.materialMap = o.materialMap
	}
	if o.part != nil {
		r.part = o.part
	}
	return r
}

// Diff returns a record holding candidate's fields that differ from a's;
// equal fields are unset in the result. Diff(a, a) is empty.
func (a *Attributes) Diff(candidate *Attributes) *Attributes {
	a = a.orEmpty()
	c := candidate.orEmpty()
	var r Attributes
	if !eqColour(a.colour, c.colour) {
		r.colour = c.colour
	}
	if !eqFloat(a.fa, c.fa) {
		r.fa = c.fa
	}
	if !eqFloat(a.fs, c.fs) {
		r.fs = c.fs
	}
	if !eqInt(a.fn, c.fn) {
		r.fn = c.fn
	}
	if !eqBool(a.segmentLines, c.segmentLines) {
		r.segmentLines = c.segmentLines
	}
	if !eqBool(a.disable, c.disable) {
		r.disable = c.disable
	}
	if !eqBool(a.showOnly, c.showOnly) {
		r.showOnly = c.showOnly
	}
	if !eqBool(a.debug, c.debug) {
		r.debug = c.debug
	}
	if !eqBool(a.transparent, c.transparent) {
		r.transparent = c.transparent
	}
	if !eqBool(a.usePolyhedrons, c.usePolyhedrons) {
		r.usePolyhedrons = c.usePolyhedrons
	}
	if !eqMaterial(a.material, c.material) {
		r.material = c.material
	}
	if a.materialMap != c.materialMap {
		r.materialMap = c.materialMap
	}
	if !eqPart(a.part, c.part) {
		r.part = c.part
	}
	return &r
}

// Mapped applies the record's material map, if any, to the record itself.
func (a *Attributes) Mapped() *Attributes {
	a = a.orEmpty()
	if a.materialMap == nil {
		return a
	}
	return a.materialMap.MapAttributes(a)
}

// WithColour returns a copy with the colour set.
func (a *Attributes) WithColour(c Colour) *Attributes {
	r := a.clone()
	r.colour = &c
	return r
}

// WithFa returns a copy with the $fa arc parameter set.
func (a *Attributes) WithFa(fa float64) *Attributes {
	r := a.clone()
	r.fa = &fa
	return r
}

// WithFs returns a copy with the $fs arc parameter set.
func (a *Attributes) WithFs(fs float64) *Attributes {
	r := a.clone()
	r.fs = &fs
	return r
}

// WithFn returns a copy with the arc segment count set.
func (a *Attributes) WithFn(fn int) *Attributes {
	r := a.clone()
	r.fn = &fn
	return r
}

// WithSegmentLines returns a copy with line segmentation set.
func (a *Attributes) WithSegmentLines(v bool) *Attributes {
	r := a.clone()
	r.segmentLines = &v
	return r
}

// WithDisable returns a copy with the disable flag set.
func (a *Attributes) WithDisable(v bool) *Attributes {
	r := a.clone()
	r.disable = &v
	return r
}

// WithShowOnly returns a copy with the show-only flag set.
func (a *Attributes) WithShowOnly(v bool) *Attributes {
	r := a.clone()
	r.showOnly = &v
	return r
}

// WithDebug returns a copy with the debug flag set.
func (a *Attributes) WithDebug(v bool) *Attributes {
	r := a.clone()
	r.debug = &v
	return r
}

// WithTransparent returns a copy with the transparent flag set.
func (a *Attributes) WithTransparent(v bool) *Attributes {
	r := a.clone()
	r.transparent = &v
	return r
}

// WithUsePolyhedrons returns a copy with polyhedron rendering set.
func (a *Attributes) WithUsePolyhedrons(v bool) *Attributes {
	r := a.clone()
	r.usePolyhedrons = &v
	return r
}

// WithMaterial returns a copy with the material set.
func (a *Attributes) WithMaterial(m Material) *Attributes {
	r := a.clone()
	r.material = &m
	return r
}

// WithMaterialMap returns a copy with the material map set. An existing
// map is retained and applied before the new one.
func (a *Attributes) WithMaterialMap(m MaterialMap) *Attributes {
	r := a.clone()
	if r.materialMap != nil {
		m = NewMaterialMapStack(r.materialMap, m)
	}
	r.materialMap = m
	return r
}

// WithPart returns a copy with the part set.
func (a *Attributes) WithPart(p Part) *Attributes {
	r := a.clone()
	r.part = &p
	return r
}

// Colour returns the colour, or nil if unset.
func (a *Attributes) Colour() *Colour { return a.orEmpty().colour }

// Material returns the material, or nil if unset.
func (a *Attributes) Material() *Material { return a.orEmpty().material }

// Part returns the part, or nil if unset.
func (a *Attributes) Part() *Part { return a.orEmpty().part }

// MaterialMap returns the material map, or nil if unset.
func (a *Attributes) MaterialMap() MaterialMap { return a.orEmpty().materialMap }

// Disable reports whether the disable flag is set and true.
func (a *Attributes) Disable() bool { return isTrue(a.orEmpty().disable) }

// ShowOnly reports whether the show-only flag is set and true.
func (a *Attributes) ShowOnly() bool { return isTrue(a.orEmpty().showOnly) }

// Debug reports whether the debug flag is set and true.
func (a *Attributes) Debug() bool { return isTrue(a.orEmpty().debug) }

// Transparent reports whether the transparent flag is set and true.
func (a *Attributes) Transparent() bool { return isTrue(a.orEmpty().transparent) }

// UsePolyhedrons reports whether polyhedron rendering is set and true.
func (a *Attributes) UsePolyhedrons() bool { return isTrue(a.orEmpty().usePolyhedrons) }

// FillSegments substitutes the record's fn/fa/fs for any zero values of a
// shape's own segmentation parameters.
func (a *Attributes) FillSegments(fn int, fa, fs float64) (int, float64, float64) {
	a = a.orEmpty()
	if fn == 0 && a.fn != nil {
		fn = *a.fn
	}
	if fa == 0 && a.fa != nil {
		fa = *a.fa
	}
	if fs == 0 && a.fs != nil {
		fs = *a.fs
	}
	return fn, fa, fs
}

func isTrue(v *bool) bool { return v != nil && *v }

func eqColour(a, b *Colour) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqMaterial(a, b *Material) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqPart(a, b *Part) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
