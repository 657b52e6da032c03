package core

import (
	"fmt"

	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// rotV111x120 cycles the x, y and z axes, used to orient surface
// anchors so their z axis points along the outward normal.
var rotV111x120 = linear.RotV(linear.Vec3{X: 1, Y: 1, Z: 1}, 120)

// Sphere is centred on the origin.
type Sphere struct {
	R  float64
	Fn int
	Fa float64
	Fs float64
}

var _ Shape = (*Sphere)(nil)

// NewSphere returns a sphere of radius r.
func NewSphere(r float64) (*Sphere, error) {
	if r <= 0 {
		return nil, fmt.Errorf("%w: sphere radius %g must be positive",
			ErrIllegalParameter, r)
	}
	return &Sphere{R: r}, nil
}

var sphereAnchors = NewAnchorSet().
	Register("centre", "centre of the sphere",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.Identity, nil
		}).
	Register("top", "highest point on the sphere",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.TranZ(s.(*Sphere).R), nil
		}).
	Register("base", "lowest point, z pointing away from the sphere",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.RotX(180).Mul(linear.TranZ(s.(*Sphere).R)), nil
		}).
	Register("surface", "point on the surface: (azimuth, inclination, roll) degrees",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 3); err != nil {
				return linear.M{}, err
			}
			a0, err := optFloat(args, 0, 0)
			if err != nil {
				return linear.M{}, err
			}
			a1, err := optFloat(args, 1, 0)
			if err != nil {
				return linear.M{}, err
			}
			a2, err := optFloat(args, 2, 0)
			if err != nil {
				return linear.M{}, err
			}
			m := linear.RotY(a2).
				Mul(linear.RotX(a1)).
				Mul(linear.RotZ(a0)).
				Mul(linear.Translate(linear.Vec3{X: s.(*Sphere).R})).
				Mul(rotV111x120)
			return m, nil
		})

// HasAnchor implements Shape.
func (s *Sphere) HasAnchor(name string) bool { return sphereAnchors.Has(name) }

// AnchorNames implements Shape.
func (s *Sphere) AnchorNames() []string { return sphereAnchors.Names() }

// At implements Shape.
func (s *Sphere) At(name string, args ...any) (linear.M, error) {
	return sphereAnchors.Resolve(s, name, args)
}

// Render implements Shape.
func (s *Sphere) Render(r Renderer) error {
	fn, fa, fs := r.Attributes().FillSegments(s.Fn, s.Fa, s.Fs)
	node := scad.NewSphere(s.R)
	node.Fn, node.Fa, node.Fs = fn, fa, fs
	r.Add(node)
	return nil
}

// Cone is a conical frustum with its base on the z=0 plane extending
// up the z axis. Equal radii make it a cylinder.
type Cone struct {
	H     float64
	RBase float64
	RTop  float64
	Fn    int
	Fa    float64
	Fs    float64
}

var _ Shape = (*Cone)(nil)

// NewCone returns a frustum of height h with the given base and
// top radii.
func NewCone(h, rBase, rTop float64) (*Cone, error) {
	if h < 0 {
		return nil, fmt.Errorf("%w: cone height %g is negative",
			ErrIllegalParameter, h)
	}
	if rBase < 0 || rTop < 0 {
		return nil, fmt.Errorf("%w: cone radii (%g, %g) must not be negative",
			ErrIllegalParameter, rBase, rTop)
	}
	if rBase == 0 && rTop == 0 {
		return nil, fmt.Errorf("%w: cone must have at least one non-zero radius",
			ErrIllegalParameter)
	}
	return &Cone{H: h, RBase: rBase, RTop: rTop}, nil
}

// NewCylinder returns a cylinder of height h and radius r.
func NewCylinder(h, r float64) (*Cone, error) {
	return NewCone(h, r, r)
}

var coneAnchors = NewAnchorSet().
	Register("centre", "midpoint of the axis",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.TranZ(s.(*Cone).H / 2), nil
		}).
	Register("base", "centre of the base, z pointing out of the solid",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.RotX(180), nil
		}).
	Register("top", "centre of the top face",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			return linear.TranZ(s.(*Cone).H), nil
		}).
	Register("surface", "point on the side surface: (h, angle, rh, tangent, radius_delta)",
		func(s Shape, args []any) (linear.M, error) {
			c := s.(*Cone)
			if err := argCountMax(args, 5); err != nil {
				return linear.M{}, err
			}
			h, err := optFloat(args, 0, 0)
			if err != nil {
				return linear.M{}, err
			}
			angle, err := optFloat(args, 1, 0)
			if err != nil {
				return linear.M{}, err
			}
			rh, err := optFloat(args, 2, 0)
			if err != nil {
				return linear.M{}, err
			}
			tangent, err := optBool(args, 3, true)
			if err != nil {
				return linear.M{}, err
			}
			radiusDelta, err := optFloat(args, 4, 0)
			if err != nil {
				return linear.M{}, err
			}
			return c.surface(h, angle, rh, tangent, radiusDelta), nil
		})

func (c *Cone) surface(h, angle, rh float64, tangent bool, radiusDelta float64) linear.M {
	h += c.H * rh
	var r float64
	if c.H != 0 {
		r = h / c.H
	}
	x := r*c.RTop + (1-r)*c.RBase + radiusDelta
	var m linear.M
	if tangent {
		normal := linear.Vec3{X: c.RTop - c.RBase, Z: c.H}
		m = linear.RotToV(linear.Vec3{X: -1}, normal).Mul(linear.RotZ(90))
	} else {
		m = rotV111x120
	}
	return linear.RotZ(angle).
		Mul(linear.Translate(linear.Vec3{X: x, Z: h})).
		Mul(m)
}

// HasAnchor implements Shape.
func (c *Cone) HasAnchor(name string) bool { return coneAnchors.Has(name) }

// AnchorNames implements Shape.
func (c *Cone) AnchorNames() []string { return coneAnchors.Names() }

// At implements Shape.
func (c *Cone) At(name string, args ...any) (linear.M, error) {
	return coneAnchors.Resolve(c, name, args)
}

// Render implements Shape.
func (c *Cone) Render(r Renderer) error {
	fn, fa, fs := r.Attributes().FillSegments(c.Fn, c.Fa, c.Fs)
	node := scad.NewCone(c.H, c.RBase, c.RTop)
	node.Fn, node.Fa, node.Fs = fn, fa, fs
	r.Add(node)
	return nil
}
