// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Matrix functions deal with 3x3 matrices used for camera orientation and
// for aligning one direction vector onto another.
//
// Rotation matrices in this package are meant to be applied to a column
// vector via V3.MultMv(m, v) — i.e. v' = m * v.

import "math"

// M3 is a 3x3 matrix where the matrix elements are individually addressable.
type M3 struct {
	Xx, Xy, Xz float64 // X-Axis row
	Yx, Yy, Yz float64 // Y-Axis row
	Zx, Zy, Zz float64 // Z-Axis row
}

// M3Z is a reference zero matrix. It should never be changed.
var M3Z = &M3{
	0, 0, 0,
	0, 0, 0,
	0, 0, 0}

// M3I is a reference identity matrix. It should never be changed.
var M3I = &M3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1}

// Eq (==) returns true if all the elements in matrix m have the same
// value as the corresponding elements in matrix a.
func (m *M3) Eq(a *M3) bool {
	return true &&
		m.Xx == a.Xx && m.Xy == a.Xy && m.Xz == a.Xz &&
		m.Yx == a.Yx && m.Yy == a.Yy && m.Yz == a.Yz &&
		m.Zx == a.Zx && m.Zy == a.Zy && m.Zz == a.Zz
}

// Aeq (~=) almost-equals returns true if all elements in matrix m are
// essentially the same as the corresponding elements in matrix a.
func (m *M3) Aeq(a *M3) bool {
	return true &&
		Aeq(m.Xx, a.Xx) && Aeq(m.Xy, a.Xy) && Aeq(m.Xz, a.Xz) &&
		Aeq(m.Yx, a.Yx) && Aeq(m.Yy, a.Yy) && Aeq(m.Yz, a.Yz) &&
		Aeq(m.Zx, a.Zx) && Aeq(m.Zy, a.Zy) && Aeq(m.Zz, a.Zz)
}

// SetS (=) sets the matrix elements to the given values.
func (m *M3) SetS(Xx, Xy, Xz, Yx, Yy, Yz, Zx, Zy, Zz float64) *M3 {
	m.Xx, m.Xy, m.Xz = Xx, Xy, Xz
	m.Yx, m.Yy, m.Yz = Yx, Yy, Yz
	m.Zx, m.Zy, m.Zz = Zx, Zy, Zz
	return m
}

// Set (=, copy, clone) sets the elements of matrix m to have the same
// values as the elements of matrix a.
func (m *M3) Set(a *M3) *M3 {
	m.Xx, m.Xy, m.Xz = a.Xx, a.Xy, a.Xz
	m.Yx, m.Yy, m.Yz = a.Yx, a.Yy, a.Yz
	m.Zx, m.Zy, m.Zz = a.Zx, a.Zy, a.Zz
	return m
}

// Abs updates m to be the absolute value of the corresponding element
// values in matrix a.
func (m *M3) Abs(a *M3) *M3 {
	m.Xx, m.Xy, m.Xz = math.Abs(a.Xx), math.Abs(a.Xy), math.Abs(a.Xz)
	m.Yx, m.Yy, m.Yz = math.Abs(a.Yx), math.Abs(a.Yy), math.Abs(a.Yz)
	m.Zx, m.Zy, m.Zz = math.Abs(a.Zx), math.Abs(a.Zy), math.Abs(a.Zz)
	return m
}

// Transpose updates m to be the reflection of matrix a over its diagonal.
//
//	[ Xx Xy Xz ]    [ Xx Yx Zx ]
//	[ Yx Yy Yz ] => [ Xy Yy Zy ]
//	[ Zx Zy Zz ]    [ Xz Yz Zz ]
func (m *M3) Transpose(a *M3) *M3 {
	tXy, tXz, tYz := a.Xy, a.Xz, a.Yz
	m.Xx, m.Xy, m.Xz = a.Xx, a.Yx, a.Zx
	m.Yx, m.Yy, m.Yz = tXy, a.Yy, a.Zy
	m.Zx, m.Zy, m.Zz = tXz, tYz, a.Zz
	return m
}

// Add (+) adds matrices a and b storing the results in m.
func (m *M3) Add(a, b *M3) *M3 {
	m.Xx, m.Xy, m.Xz = a.Xx+b.Xx, a.Xy+b.Xy, a.Xz+b.Xz
	m.Yx, m.Yy, m.Yz = a.Yx+b.Yx, a.Yy+b.Yy, a.Yz+b.Yz
	m.Zx, m.Zy, m.Zz = a.Zx+b.Zx, a.Zy+b.Zy, a.Zz+b.Zz
	return m
}

// Sub (-) subtracts matrix b from a storing the results in m.
func (m *M3) Sub(a, b *M3) *M3 {
	m.Xx, m.Xy, m.Xz = a.Xx-b.Xx, a.Xy-b.Xy, a.Xz-b.Xz
	m.Yx, m.Yy, m.Yz = a.Yx-b.Yx, a.Yy-b.Yy, a.Yz-b.Yz
	m.Zx, m.Zy, m.Zz = a.Zx-b.Zx, a.Zy-b.Zy, a.Zz-b.Zz
	return m
}

// Mult (*) multiplies matrices l and r storing the result in m.
// It is safe to use the calling matrix m as one or both parameters.
func (m *M3) Mult(l, r *M3) *M3 {
	xx := l.Xx*r.Xx + l.Xy*r.Yx + l.Xz*r.Zx
	xy := l.Xx*r.Xy + l.Xy*r.Yy + l.Xz*r.Zy
	xz := l.Xx*r.Xz + l.Xy*r.Yz + l.Xz*r.Zz
	yx := l.Yx*r.Xx + l.Yy*r.Yx + l.Yz*r.Zx
	yy := l.Yx*r.Xy + l.Yy*r.Yy + l.Yz*r.Zy
	yz := l.Yx*r.Xz + l.Yy*r.Yz + l.Yz*r.Zz
	zx := l.Zx*r.Xx + l.Zy*r.Yx + l.Zz*r.Zx
	zy := l.Zx*r.Xy + l.Zy*r.Yy + l.Zz*r.Zy
	zz := l.Zx*r.Xz + l.Zy*r.Yz + l.Zz*r.Zz
	m.Xx, m.Xy, m.Xz = xx, xy, xz
	m.Yx, m.Yy, m.Yz = yx, yy, yz
	m.Zx, m.Zy, m.Zz = zx, zy, zz
	return m
}

// Scale multiplies every element of m by the scalar s.
func (m *M3) Scale(s float64) *M3 {
	m.Xx, m.Xy, m.Xz = m.Xx*s, m.Xy*s, m.Xz*s
	m.Yx, m.Yy, m.Yz = m.Yx*s, m.Yy*s, m.Yz*s
	m.Zx, m.Zy, m.Zz = m.Zx*s, m.Zy*s, m.Zz*s
	return m
}

// SetSkewSym sets m to the skew-symmetric matrix of vector v, such that
// V3.MultMv(m, x) equals the cross product v × x for any x. Wikipedia: "A skew-symmetric
// matrix is a square matrix whose transpose is also its negative."
func (m *M3) SetSkewSym(v *V3) *M3 {
	m.Xx, m.Xy, m.Xz = 0, -v.Z, v.Y
	m.Yx, m.Yy, m.Yz = v.Z, 0, -v.X
	m.Zx, m.Zy, m.Zz = -v.Y, v.X, 0
	return m
}

// SetRotX sets m to a rotation of ang radians about the X axis.
func (m *M3) SetRotX(ang float64) *M3 {
	c, s := math.Cos(ang), math.Sin(ang)
	return m.SetS(
		1, 0, 0,
		0, c, -s,
		0, s, c,
	)
}

// SetRotY sets m to a rotation of ang radians about the Y axis.
func (m *M3) SetRotY(ang float64) *M3 {
	c, s := math.Cos(ang), math.Sin(ang)
	return m.SetS(
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	)
}

// SetRotZ sets m to a rotation of ang radians about the Z axis.
func (m *M3) SetRotZ(ang float64) *M3 {
	c, s := math.Cos(ang), math.Sin(ang)
	return m.SetS(
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	)
}

// SetYawPitchRoll sets m to Rz(roll) · Ry(yaw) · Rx(pitch), all angles in
// radians, matching the camera's direct Euler rotation (set_look_rad).
func (m *M3) SetYawPitchRoll(yaw, pitch, roll float64) *M3 {
	var rx, ry, rz M3
	rx.SetRotX(pitch)
	ry.SetRotY(yaw)
	rz.SetRotZ(roll)
	m.Mult(&rz, ry.Mult(&ry, &rx))
	return m
}

// AlignRotation returns the 3x3 matrix that rotates unit vector from onto
// unit vector to, via the Rodrigues rotation formula:
//
//	R = I + [v]× + [v]×² · (1-c)/s²
//
// where v = from×to, c = from·to, s = |v|. Used by the camera's
// look-at construction. from and to are expected normalized; behavior
// is only defined for unit-length inputs.
func AlignRotation(from, to *V3) *M3 {
	var v, skew, skewSq M3
	cross := NewV3().Cross(from, to)
	c := from.Dot(to)

	if c < -1+Epsilon {
		// from and to point in opposite directions: any axis
		// perpendicular to from is a valid rotation axis for a
		// 180 degree turn, where R collapses to I + 2[axis]ײ.
		var p, axis V3
		p.SetS(1, 0, 0)
		if math.Abs(from.X) > 0.9 {
			p.SetS(0, 1, 0)
		}
		axis.Cross(from, &p).Unit()
		skew.SetSkewSym(&axis)
		skewSq.Mult(&skew, &skew)
		result := NewM3I()
		result.Add(result, skewSq.Scale(2))
		return result
	}

	s2 := cross.LenSqr()
	skew.SetSkewSym(cross)
	skewSq.Mult(&skew, &skew)
	if s2 > Epsilon {
		skewSq.Scale((1 - c) / s2)
	} else {
		skewSq.Scale(0)
	}

	v.Set(M3I)
	v.Add(&v, &skew)
	v.Add(&v, &skewSq)
	return &v
}

// convenience functions for allocating matrices.

// NewM3 creates a new, all zero, 3x3 matrix.
func NewM3() *M3 { return &M3{} }

// NewM3I creates a new 3x3 identity matrix.
func NewM3I() *M3 { return &M3{Xx: 1, Yy: 1, Zz: 1} }
