package core

import (
	"fmt"

	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/scad"
)

// Box is a rectangular prism with its minimum corner at the origin.
//
// Face anchors take a face selector: an index 0-5 or one of "front",
// "base", "left", "back", "top", "right". The front face's plane is
// perpendicular to the y axis.
type Box struct {
	Size linear.Vec3
}

var _ Shape = (*Box)(nil)

// NewBox returns a box of the given size.
func NewBox(x, y, z float64) *Box {
	return &Box{Size: linear.Vec3{X: x, Y: y, Z: z}}
}

// Face index layout and orientation of the 6 faces.
var boxFaceMap = map[string]int{
	"front": 0, "base": 1, "left": 2, "back": 3, "top": 4, "right": 5,
}

var boxOrientation [6]linear.M

// Axis-membership bitmasks of the corner coordinates for each face's 4
// corners, from which the edge and zero tables derive.
var boxCorners = [6][4]uint8{
	{0b000, 0b001, 0b101, 0b100},
	{0b010, 0b011, 0b001, 0b000},
	{0b010, 0b000, 0b100, 0b110},
	{0b110, 0b111, 0b011, 0b010},
	{0b100, 0b101, 0b111, 0b110},
	{0b001, 0b011, 0b111, 0b101},
}

var (
	boxEdgeHalves  [6][4]uint8
	boxCornerZeros [6][4]uint8
	boxCentreAxis  [3]int
)

func init() {
	rx90 := linear.RotX(90)
	boxOrientation = [6]linear.M{
		rx90,
		rx90.Mul(linear.RotX(90)),
		rx90.Mul(linear.RotY(-90)),
		rx90.Mul(linear.RotX(180)),
		rx90.Mul(linear.RotX(-90)),
		rx90.Mul(linear.RotY(90)),
	}
	for f := 0; f < 6; f++ {
		for c := 0; c < 4; c++ {
			boxEdgeHalves[f][c] = boxCorners[f][c] ^ boxCorners[f][(c+1)%4]
			boxCornerZeros[f][c] = ^boxCorners[f][c] & 0b111
		}
	}
	for f := 0; f < 3; f++ {
		rest := ^(boxCorners[f][0] | boxCorners[f][2]) & 0b111
		for i := 0; i < 3; i++ {
			if rest&(1<<i) != 0 {
				boxCentreAxis[f] = i
			}
		}
	}
}

func boxFace(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing face selector", ErrIncorrectAnchorArgs)
	}
	switch v := args[i].(type) {
	case int:
		if v < 0 || v > 5 {
			return 0, fmt.Errorf("%w: face index %d out of range 0-5",
				ErrIncorrectAnchorArgs, v)
		}
		return v, nil
	case float64:
		return boxFace([]any{int(v)}, 0)
	case string:
		f, ok := boxFaceMap[v]
		if !ok {
			return 0, fmt.Errorf("%w: unknown face %q", ErrIncorrectAnchorArgs, v)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: face selector must be an index or name, got %T",
		ErrIncorrectAnchorArgs, args[i])
}

var boxAnchors = NewAnchorSet().
	Register("centre", "centre of the box, oriented as face 0",
		func(s Shape, args []any) (linear.M, error) {
			if err := argCountMax(args, 0); err != nil {
				return linear.M{}, err
			}
			b := s.(*Box)
			return linear.Translate(b.Size.Scale(0.5)), nil
		}).
	Register("face_centre", "centre of a face: (face, h, rh)",
		func(s Shape, args []any) (linear.M, error) {
			b := s.(*Box)
			if err := argCountMax(args, 3); err != nil {
				return linear.M{}, err
			}
			face, err := boxFace(args, 0)
			if err != nil {
				return linear.M{}, err
			}
			h, err := optFloat(args, 1, 0)
			if err != nil {
				return linear.M{}, err
			}
			rh, err := optFloat(args, 2, 0)
			if err != nil {
				return linear.M{}, err
			}
			return b.faceCentre(face, h, rh), nil
		}).
	Register("face_edge", "centre of a face edge: (face, edge, t, d, h, rh)",
		func(s Shape, args []any) (linear.M, error) {
			return boxEdgeAnchor(s.(*Box), args, 0.5)
		}).
	Register("face_corner", "corner of a face: (face, corner, t, d, h, rh)",
		func(s Shape, args []any) (linear.M, error) {
			return boxEdgeAnchor(s.(*Box), args, 0)
		})

func boxEdgeAnchor(b *Box, args []any, tDefault float64) (linear.M, error) {
	if err := argCountMax(args, 6); err != nil {
		return linear.M{}, err
	}
	face, err := boxFace(args, 0)
	if err != nil {
		return linear.M{}, err
	}
	edgeF, err := wantFloat(args, 1)
	if err != nil {
		return linear.M{}, err
	}
	edge := int(edgeF)
	if edge < 0 || edge > 3 {
		return linear.M{}, fmt.Errorf("%w: edge index %d out of range 0-3",
			ErrIncorrectAnchorArgs, edge)
	}
	t, err := optFloat(args, 2, tDefault)
	if err != nil {
		return linear.M{}, err
	}
	d, err := optFloat(args, 3, 0)
	if err != nil {
		return linear.M{}, err
	}
	h, err := optFloat(args, 4, 0)
	if err != nil {
		return linear.M{}, err
	}
	rh, err := optFloat(args, 5, 0)
	if err != nil {
		return linear.M{}, err
	}
	return b.faceEdge(face, edge, t, d, h, rh), nil
}

func (b *Box) size(i int) float64 {
	switch i {
	case 0:
		return b.Size.X
	case 1:
		return b.Size.Y
	}
	return b.Size.Z
}

func (b *Box) faceEdge(face, edge int, t, d, h, rh float64) linear.M {
	orientation := boxOrientation[face].Mul(linear.RotZ(90 * float64(edge)))
	loc := [3]float64{b.Size.X, b.Size.Y, b.Size.Z}
	halfOf := boxEdgeHalves[face][edge]
	zeroOf := boxCornerZeros[face][edge]
	keep := boxCentreAxis[face%3]
	for i := 0; i < 3; i++ {
		bit := uint8(1) << i
		if i == keep {
			if face < 3 {
				loc[i] = 0
			}
			h += b.size(i) * rh
		}
		if halfOf&bit != 0 {
			if zeroOf&bit != 0 {
				loc[i] = t*loc[i] + d
			} else {
				loc[i] = (1-t)*loc[i] - d
			}
		} else if zeroOf&bit != 0 {
			loc[i] = 0
		}
	}
	return linear.Translate(linear.Vec3{X: loc[0], Y: loc[1], Z: loc[2]}).
		Mul(orientation).Mul(linear.TranZ(-h))
}

func (b *Box) faceCentre(face int, h, rh float64) linear.M {
	orientation := boxOrientation[face]
	loc := [3]float64{b.Size.X, b.Size.Y, b.Size.Z}
	keep := boxCentreAxis[face%3]
	for i := 0; i < 3; i++ {
		if i == keep {
			if face < 3 {
				loc[i] = 0
			}
			h += b.size(i) * rh
		} else {
			loc[i] *= 0.5
		}
	}
	return linear.Translate(linear.Vec3{X: loc[0], Y: loc[1], Z: loc[2]}).
		Mul(orientation).Mul(linear.TranZ(-h))
}

// HasAnchor implements Shape.
func (b *Box) HasAnchor(name string) bool { return boxAnchors.Has(name) }

// AnchorNames implements Shape.
func (b *Box) AnchorNames() []string { return boxAnchors.Names() }

// At implements Shape.
func (b *Box) At(name string, args ...any) (linear.M, error) {
	return boxAnchors.Resolve(b, name, args)
}

// Render implements Shape.
func (b *Box) Render(r Renderer) error {
	r.Add(scad.NewCube(b.Size.X, b.Size.Y, b.Size.Z))
	return nil
}
