// Package linear provides the affine transform algebra used by the shape
// composers. Transforms are 4x4 row-major matrices owned by value and
// combined with Mul; anchors are resolved by composing and inverting them.
package linear

import "math"

// DefaultTolerance is the element-wise tolerance used by ApproxEqual
// and IsIdentity.
const DefaultTolerance = 1e-9

// Vec3 is a 3-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// ApproxEqual reports whether v and o differ by at most tol per component.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol &&
		math.Abs(v.Y-o.Y) <= tol &&
		math.Abs(v.Z-o.Z) <= tol
}

// M is a 4x4 affine transform, row-major. The zero value is not useful;
// start from Identity or one of the constructors.
type M struct {
	el [4][4]float64
}

// Identity is the identity transform.
var Identity = M{el: [4][4]float64{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}}

// FromRows builds a transform from explicit rows. The last row is normally
// {0, 0, 0, 1}.
func FromRows(rows [4][4]float64) M {
	return M{el: rows}
}

// Translate returns a translation by v.
func Translate(v Vec3) M {
	m := Identity
	m.el[0][3] = v.X
	m.el[1][3] = v.Y
	m.el[2][3] = v.Z
	return m
}

// TranX returns a translation along the x axis.
func TranX(d float64) M { return Translate(Vec3{X: d}) }

// TranY returns a translation along the y axis.
func TranY(d float64) M { return Translate(Vec3{Y: d}) }

// TranZ returns a translation along the z axis.
func TranZ(d float64) M { return Translate(Vec3{Z: d}) }

// RotX returns a rotation of degrees about the x axis.
func RotX(degrees float64) M {
	s, c := sincosDeg(degrees)
	m := Identity
	m.el[1][1] = c
	m.el[1][2] = -s
	m.el[2][1] = s
	m.el[2][2] = c
	return m
}

// RotY returns a rotation of degrees about the y axis.
func RotY(degrees float64) M {
	s, c := sincosDeg(degrees)
	m := Identity
	m.el[0][0] = c
	m.el[0][2] = s
	m.el[2][0] = -s
	m.el[2][2] = c
	return m
}

// RotZ returns a rotation of degrees about the z axis.
func RotZ(degrees float64) M {
	s, c := sincosDeg(degrees)
	m := Identity
	m.el[0][0] = c
	m.el[0][1] = -s
	m.el[1][0] = s
	m.el[1][1] = c
	return m
}

// RotV returns a rotation of degrees about the given axis.
func RotV(axis Vec3, degrees float64) M {
	n := axis
	l := n.Length()
	if l == 0 {
		return Identity
	}
	n = n.Scale(1 / l)
	s, c := sincosDeg(degrees)
	t := 1 - c
	m := Identity
	m.el[0][0] = t*n.X*n.X + c
	m.el[0][1] = t*n.X*n.Y - s*n.Z
	m.el[0][2] = t*n.X*n.Z + s*n.Y
	m.el[1][0] = t*n.X*n.Y + s*n.Z
	m.el[1][1] = t*n.Y*n.Y + c
	m.el[1][2] = t*n.Y*n.Z - s*n.X
	m.el[2][0] = t*n.X*n.Z - s*n.Y
	m.el[2][1] = t*n.Y*n.Z + s*n.X
	m.el[2][2] = t*n.Z*n.Z + c
	return m
}

// RotToV returns a rotation taking direction from to direction to.
func RotToV(from, to Vec3) M {
	lf := from.Length()
	lt := to.Length()
	if lf == 0 || lt == 0 {
		return Identity
	}
	f := from.Scale(1 / lf)
	t := to.Scale(1 / lt)
	axis := f.Cross(t)
	cos := f.Dot(t)
	if axis.Length() < 1e-15 {
		if cos > 0 {
			return Identity
		}
		// Anti-parallel: rotate 180 about any axis orthogonal to f.
		ortho := f.Cross(Vec3{X: 1})
		if ortho.Length() < 1e-15 {
			ortho = f.Cross(Vec3{Y: 1})
		}
		return RotV(ortho, 180)
	}
	deg := math.Atan2(axis.Length(), cos) * 180 / math.Pi
	return RotV(axis, deg)
}

// ScaleV returns a per-axis scale transform.
func ScaleV(v Vec3) M {
	m := Identity
	m.el[0][0] = v.X
	m.el[1][1] = v.Y
	m.el[2][2] = v.Z
	return m
}

// Scale returns a uniform scale transform.
func Scale(s float64) M {
	return ScaleV(Vec3{s, s, s})
}

// Mul returns m * n, the transform that applies n then m.
func (m M) Mul(n M) M {
	var r M
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.el[i][k] * n.el[k][j]
			}
			r.el[i][j] = sum
		}
	}
	return r
}

// MulVec applies the transform to a point.
func (m M) MulVec(v Vec3) Vec3 {
	return Vec3{
		m.el[0][0]*v.X + m.el[0][1]*v.Y + m.el[0][2]*v.Z + m.el[0][3],
		m.el[1][0]*v.X + m.el[1][1]*v.Y + m.el[1][2]*v.Z + m.el[1][3],
		m.el[2][0]*v.X + m.el[2][1]*v.Y + m.el[2][2]*v.Z + m.el[2][3],
	}
}

// MulDir applies the transform to a direction, ignoring translation.
func (m M) MulDir(v Vec3) Vec3 {
	return Vec3{
		m.el[0][0]*v.X + m.el[0][1]*v.Y + m.el[0][2]*v.Z,
		m.el[1][0]*v.X + m.el[1][1]*v.Y + m.el[1][2]*v.Z,
		m.el[2][0]*v.X + m.el[2][1]*v.Y + m.el[2][2]*v.Z,
	}
}

// Translation returns the translation component of the transform.
func (m M) Translation() Vec3 {
	return Vec3{m.el[0][3], m.el[1][3], m.el[2][3]}
}

// Inverse returns the inverse transform. The matrix must be an invertible
// affine transform (last row {0,0,0,1}); transforms produced by composing
// translations, rotations and non-zero scales always are.
func (m M) Inverse() M {
	a := m.el
	// Inverse of the upper-left 3x3 via the adjugate.
	det := a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	inv := 1 / det
	var r M
	r.el[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * inv
	r.el[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv
	r.el[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv
	r.el[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * inv
	r.el[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	r.el[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv
	r.el[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * inv
	r.el[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv
	r.el[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv
	// t' = -R⁻¹ t
	t := m.Translation()
	r.el[0][3] = -(r.el[0][0]*t.X + r.el[0][1]*t.Y + r.el[0][2]*t.Z)
	r.el[1][3] = -(r.el[1][0]*t.X + r.el[1][1]*t.Y + r.el[1][2]*t.Z)
	r.el[2][3] = -(r.el[2][0]*t.X + r.el[2][1]*t.Y + r.el[2][2]*t.Z)
	r.el[3][3] = 1
	return r
}

// Descale returns the transform with any scaling removed from the rotation
// part; the translation is kept. Axes are renormalized to unit length.
func (m M) Descale() M {
	r := m
	for col := 0; col < 3; col++ {
		l := math.Sqrt(m.el[0][col]*m.el[0][col] +
			m.el[1][col]*m.el[1][col] +
			m.el[2][col]*m.el[2][col])
		if l == 0 {
			continue
		}
		r.el[0][col] = m.el[0][col] / l
		r.el[1][col] = m.el[1][col] / l
		r.el[2][col] = m.el[2][col] / l
	}
	return r
}

// Rows returns the matrix elements, row-major.
func (m M) Rows() [4][4]float64 {
	return m.el
}

// ApproxEqual reports whether m and n differ by at most tol per element.
func (m M) ApproxEqual(n M, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.el[i][j]-n.el[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m is the identity within DefaultTolerance.
func (m M) IsIdentity() bool {
	return m.ApproxEqual(Identity, DefaultTolerance)
}

func sincosDeg(degrees float64) (s, c float64) {
	// Keep right angles exact so equivalent anchor compositions compare
	// equal without accumulated epsilon.
	r := math.Mod(degrees, 360)
	if r < 0 {
		r += 360
	}
	switch r {
	case 0:
		return 0, 1
	case 90:
		return 1, 0
	case 180:
		return 0, -1
	case 270:
		return -1, 0
	}
	return math.Sincos(degrees * math.Pi / 180)
}
