package core

import (
	"fmt"

	"github.com/chazu/tenon/pkg/linear"
)

// ShapeFrame names a shape at a reference frame within one composition
// scope.
type ShapeFrame struct {
	Name  string
	Shape Shape
	Frame linear.M
}

// Inverted returns the frame with its transform inverted.
func (f ShapeFrame) Inverted() ShapeFrame {
	return ShapeFrame{Name: f.Name, Shape: f.Shape, Frame: f.Frame.Inverse()}
}

// PreMul returns the frame relocated by m.
func (f ShapeFrame) PreMul(m linear.M) ShapeFrame {
	return ShapeFrame{Name: f.Name, Shape: f.Shape, Frame: m.Mul(f.Frame)}
}

// modeFrame is one Maker entry: a framed shape tagged with its combination
// mode and scope attributes.
type modeFrame struct {
	mode  Mode
	frame ShapeFrame
	attrs *Attributes
}

func (e modeFrame) inverted() modeFrame {
	return modeFrame{mode: e.mode, frame: e.frame.Inverted(), attrs: e.attrs}
}

func (e modeFrame) preMul(m linear.M) modeFrame {
	return modeFrame{mode: e.mode, frame: e.frame.PreMul(m), attrs: e.attrs}
}

// Pre is an anchor argument that pre-multiplies the resolved frame.
type Pre struct{ M linear.M }

// Post is an anchor argument that post-multiplies the resolved frame.
type Post struct{ M linear.M }

// AnchorSpec is a reusable anchor selector: an anchor name plus its
// arguments, resolvable against any shape that exposes the anchor.
type AnchorSpec struct {
	Name string
	Args []any
}

// AtSpec packages an anchor path for later application.
func AtSpec(name string, args ...any) AnchorSpec {
	return AnchorSpec{Name: name, Args: args}
}

// Apply resolves the selector against a shape.
func (a AnchorSpec) Apply(s Shape) (linear.M, error) {
	return s.At(a.Name, a.Args...)
}

// anchorCall is an anchor argument list with options extracted.
type anchorCall struct {
	args []any
	pre  *linear.M
	post *linear.M
	spec *AnchorSpec
}

// splitAnchorArgs separates positional anchor arguments from Pre/Post
// adjustments and an AnchorSpec selector. Supplying positional arguments
// together with a selector is a conflict.
func splitAnchorArgs(args []any) (anchorCall, error) {
	var c anchorCall
	for _, a := range args {
		switch v := a.(type) {
		case Pre:
			m := v.M
			c.pre = &m
		case Post:
			m := v.M
			c.post = &m
		case AnchorSpec:
			if c.spec != nil {
				return c, fmt.Errorf("%w: multiple anchor selectors supplied",
					ErrIllegalParameter)
			}
			s := v
			c.spec = &s
		default:
			c.args = append(c.args, a)
		}
	}
	if c.spec != nil && len(c.args) > 0 {
		return c, fmt.Errorf(
			"%w: positional anchor args and an anchor selector both supplied",
			ErrIllegalParameter)
	}
	return c, nil
}

// adjust applies the optional pre/post transforms to a resolved frame.
func (c anchorCall) adjust(frame linear.M) linear.M {
	if c.pre != nil {
		frame = c.pre.Mul(frame)
	}
	if c.post != nil {
		frame = frame.Mul(*c.post)
	}
	return frame
}

// NamedShape is the builder produced by naming a shape under a mode.
// Attribute setters return a modified copy; At or Projection finish the
// builder into a Maker owning the shape at the resolved frame.
type NamedShape struct {
	shape Shape
	mode  Mode
	name  string
	attrs *Attributes
}

// Named wraps a shape under a name and mode. A *Maker shape is copied so
// the new owner never aliases into the caller's tree.
func Named(s Shape, mode Mode, name string) *NamedShape {
	return &NamedShape{shape: copyIfMutable(s), mode: mode, name: name}
}

// Solid names a shape in solid mode.
func Solid(s Shape, name string) *NamedShape { return Named(s, ModeSolid, name) }

// Hole names a shape in hole mode.
func Hole(s Shape, name string) *NamedShape { return Named(s, ModeHole, name) }

// Cage names a shape in cage mode.
func Cage(s Shape, name string) *NamedShape { return Named(s, ModeCage, name) }

// Composite names a shape in composite mode.
func Composite(s Shape, name string) *NamedShape { return Named(s, ModeComposite, name) }

// Intersect names a shape in intersect mode.
func Intersect(s Shape, name string) *NamedShape { return Named(s, ModeIntersect, name) }

// HullOf names a shape in hull mode.
func HullOf(s Shape, name string) *NamedShape { return Named(s, ModeHull, name) }

// MinkowskiOf names a shape in minkowski mode.
func MinkowskiOf(s Shape, name string) *NamedShape { return Named(s, ModeMinkowski, name) }

func (n *NamedShape) with(attrs *Attributes) *NamedShape {
	c := *n
	c.attrs = attrs
	return &c
}

// Colour sets the scope colour.
func (n *NamedShape) Colour(c Colour) *NamedShape {
	return n.with(n.attrs.WithColour(c))
}

// Fn sets the arc segment count.
func (n *NamedShape) Fn(fn int) *NamedShape {
	return n.with(n.attrs.WithFn(fn))
}

// Fa sets the $fa arc parameter.
func (n *NamedShape) Fa(fa float64) *NamedShape {
	return n.with(n.attrs.WithFa(fa))
}

// Fs sets the $fs arc parameter.
func (n *NamedShape) Fs(fs float64) *NamedShape {
	return n.with(n.attrs.WithFs(fs))
}

// Disable sets the disable visibility flag.
func (n *NamedShape) Disable(v bool) *NamedShape {
	return n.with(n.attrs.WithDisable(v))
}

// ShowOnly sets the show-only visibility flag.
func (n *NamedShape) ShowOnly(v bool) *NamedShape {
	return n.with(n.attrs.WithShowOnly(v))
}

// Debug sets the debug visibility flag.
func (n *NamedShape) Debug(v bool) *NamedShape {
	return n.with(n.attrs.WithDebug(v))
}

// Transparent sets the transparent visibility flag.
func (n *NamedShape) Transparent(v bool) *NamedShape {
	return n.with(n.attrs.WithTransparent(v))
}

// Material sets the scope material.
func (n *NamedShape) Material(m Material) *NamedShape {
	return n.with(n.attrs.WithMaterial(m))
}

// MaterialMap sets the scope material map.
func (n *NamedShape) MaterialMap(m MaterialMap) *NamedShape {
	return n.with(n.attrs.WithMaterialMap(m))
}

// Part sets the scope part.
func (n *NamedShape) Part(p Part) *NamedShape {
	return n.with(n.attrs.WithPart(p))
}

// At finishes the builder at the shape's named anchor, optionally adjusted
// with Pre/Post arguments. The resulting Maker's origin coincides with the
// resolved anchor.
func (n *NamedShape) At(name string, args ...any) (*Maker, error) {
	call, err := splitAnchorArgs(args)
	if err != nil {
		return nil, err
	}
	var frame linear.M
	if call.spec != nil {
		frame, err = call.spec.Apply(n.shape)
	} else {
		frame, err = n.shape.At(name, call.args...)
	}
	if err != nil {
		return nil, err
	}
	return n.Projection(call.adjust(frame)), nil
}

// AtOrigin finishes the builder at the shape's local origin.
func (n *NamedShape) AtOrigin() *Maker {
	return n.Projection(linear.Identity)
}

// Projection finishes the builder at an explicit reference frame.
func (n *NamedShape) Projection(frame linear.M) *Maker {
	return newMaker(n.mode, ShapeFrame{Name: n.name, Shape: n.shape, Frame: frame}, n.attrs)
}

// copyIfMutable copies shapes with mutable composition state; immutable
// shapes are shared.
func copyIfMutable(s Shape) Shape {
	if m, ok := s.(*Maker); ok {
		return m.Copy()
	}
	return s
}
