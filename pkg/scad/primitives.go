package scad

// Cube is a cube(size=[x,y,z]) primitive with its corner at the origin.
type Cube struct {
	meta
	Size [3]float64
}

// NewCube returns a cube primitive of the given size.
func NewCube(x, y, z float64) *Cube {
	return &Cube{Size: [3]float64{x, y, z}}
}

func (c *Cube) write(w *writer) {
	c.writeName(w)
	w.linef("%scube(size=%s);", c.prefix(), fmtVec3(c.Size))
}

// Sphere is a sphere(r=...) primitive centred at the origin.
type Sphere struct {
	meta
	R  float64
	Fn int
	Fa float64
	Fs float64
}

// NewSphere returns a sphere primitive of the given radius.
func NewSphere(r float64) *Sphere {
	return &Sphere{R: r}
}

func (s *Sphere) write(w *writer) {
	s.writeName(w)
	w.linef("%ssphere(r=%s%s);", s.prefix(), fmtFloat(s.R),
		fmtSegmentArgs(s.Fn, s.Fa, s.Fs))
}

// Cylinder is a cylinder(h=..., r1=..., r2=...) primitive with its base on
// the xy plane. A cone has differing radii.
type Cylinder struct {
	meta
	H  float64
	R1 float64
	R2 float64
	Fn int
	Fa float64
	Fs float64
}

// NewCylinder returns a cylinder primitive.
func NewCylinder(h, r float64) *Cylinder {
	return &Cylinder{H: h, R1: r, R2: r}
}

// NewCone returns a conic cylinder primitive with separate base and top
// radii.
func NewCone(h, rBase, rTop float64) *Cylinder {
	return &Cylinder{H: h, R1: rBase, R2: rTop}
}

func (c *Cylinder) write(w *writer) {
	c.writeName(w)
	w.linef("%scylinder(h=%s, r1=%s, r2=%s%s);", c.prefix(),
		fmtFloat(c.H), fmtFloat(c.R1), fmtFloat(c.R2),
		fmtSegmentArgs(c.Fn, c.Fa, c.Fs))
}

// fmtSegmentArgs renders the optional $fn/$fa/$fs arguments. Zero values
// are treated as unset.
func fmtSegmentArgs(fn int, fa, fs float64) string {
	var s string
	if fn > 0 {
		s += ", $fn=" + fmtInt(fn)
	}
	if fa > 0 {
		s += ", $fa=" + fmtFloat(fa)
	}
	if fs > 0 {
		s += ", $fs=" + fmtFloat(fs)
	}
	return s
}
