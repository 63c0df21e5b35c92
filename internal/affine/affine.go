// Package affine derives, inverts, and applies 2D affine transforms from
// three-point correspondences.
package affine

import (
	"errors"
	"math"
)

var (
	// ErrInvalidBasis reports that the three points of a basis are collinear
	// or coincident and cannot span the plane.
	ErrInvalidBasis = errors.New("affine: basis points are collinear or coincident")
	// ErrSingularMatrix reports that the linear part of a matrix has zero
	// determinant and cannot be inverted.
	ErrSingularMatrix = errors.New("affine: matrix is singular")
)

// epsilon is the determinant magnitude below which a 2x2 linear part is
// treated as singular.
const epsilon = 1e-12

// Point is a 2D point or vector in double precision.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Cross returns the 2D cross product (a scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction, or the zero vector
// if p has zero length.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Basis is an ordered triple of points spanning the plane: an origin, the
// corner along the +x axis, and the corner along the +y axis. The points must
// not be collinear or coincident for the basis to define an affine frame.
type Basis [3]Point

// BasisForSize returns the canonical basis of a w-by-h rectangle anchored at
// the origin: (0,0), (w,0), (0,h).
func BasisForSize(w, h float64) Basis {
	return Basis{Pt(0, 0), Pt(w, 0), Pt(0, h)}
}

// Translate returns the basis with all three points shifted by d.
func (b Basis) Translate(d Point) Basis {
	return Basis{b[0].Add(d), b[1].Add(d), b[2].Add(d)}
}

// Matrix is a 2x3 affine transformation matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. The homogeneous third
// row is implicit.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Solve computes the matrix that maps the three points of from exactly onto
// the three points of to. Point 0 of each basis acts as its local origin; the
// linear part is derived from the two delta vectors and the translation from
// the origin correspondence. It returns ErrInvalidBasis when the from basis
// is collinear or coincident. The result never contains NaN or Inf entries.
func Solve(from, to Basis) (Matrix, error) {
	d1x := from[1].Sub(from[0])
	d1y := from[2].Sub(from[0])

	det := d1x.Cross(d1y)
	if math.Abs(det) < epsilon {
		return Matrix{}, ErrInvalidBasis
	}

	d2x := to[1].Sub(to[0])
	d2y := to[2].Sub(to[0])

	// Linear part L = delta2 * inverse(delta1), with the deltas as columns.
	m := Matrix{
		A: (d2x.X*d1y.Y - d2y.X*d1x.Y) / det,
		B: (d2y.X*d1x.X - d2x.X*d1y.X) / det,
		D: (d2x.Y*d1y.Y - d2y.Y*d1x.Y) / det,
		E: (d2y.Y*d1x.X - d2x.Y*d1y.X) / det,
	}
	m.C = to[0].X - m.A*from[0].X - m.B*from[0].Y
	m.F = to[0].Y - m.D*from[0].X - m.E*from[0].Y
	return m, nil
}

// Invert returns the inverse transform: the linear part is inverted and the
// translation becomes -L'*t. It returns ErrSingularMatrix when the linear
// part has zero determinant.
func (m Matrix) Invert() (Matrix, error) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < epsilon {
		return Matrix{}, ErrSingularMatrix
	}
	inv := Matrix{
		A: m.E / det,
		B: -m.B / det,
		D: -m.D / det,
		E: m.A / det,
	}
	inv.C = -(inv.A*m.C + inv.B*m.F)
	inv.F = -(inv.D*m.C + inv.E*m.F)
	return inv, nil
}

// Apply transforms a single point.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyBasis transforms all three points of a basis.
func (m Matrix) ApplyBasis(b Basis) Basis {
	return Basis{m.Apply(b[0]), m.Apply(b[1]), m.Apply(b[2])}
}

// ApplyAll transforms a batch of points, returning a new slice of the same
// length.
func (m Matrix) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}
