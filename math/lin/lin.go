// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the linear-algebra kernel used throughout the
// ray-tracing core: a 3-element vector, a 3x3 matrix, and the scalar
// helpers both rely on.
//
// Design Notes, carried over from the original engine math library:
//  1. This is a CPU based 3D math library called from hot render loops,
//     so methods favor pointer receivers and in-place mutation over
//     allocating new structures.
//  2. Default scalar size is float64.
package lin

import "math"

// Various linear math constants.
const (
	PI     float64 = math.Pi
	PIx2   float64 = PI * 2
	HalfPi float64 = PIx2 * 0.25
	DegRad float64 = PIx2 / 360.0 // X degrees * DegRad = Y radians
	RadDeg float64 = 360.0 / PIx2 // Y radians * RadDeg = X degrees

	Large float64 = math.MaxFloat32

	// Epsilon is used to distinguish when a float is close enough to a
	// number to treat as equal. This is a general-purpose tolerance,
	// distinct from the domain-scaled sensible_eps used by the
	// geometry/BVH code (see package geom).
	Epsilon float64 = 0.000001
)

// Rad converts degrees to radians.
func Rad(deg float64) float64 { return deg * DegRad }

// Deg converts radians to degrees.
func Deg(rad float64) float64 { return rad * RadDeg }

// AeqZ (~=) almost-equals returns true if x is close enough to zero that
// it doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if the difference between a and b
// is so small that it doesn't matter.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Clamp returns a scalar value (one of: s, lb, ub) guaranteed to be
// within the range given by lower bound lb and upper bound ub.
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}
