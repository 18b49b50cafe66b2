// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geom holds the data model shared by every shape and traversal
// in the ray tracer: rays, intersections, materials, and the shape sum
// type itself.
package geom

import (
	"math"

	"github.com/xor-shift/paths/math/lin"
)

// SensibleEps rejects near-zero and self-shadow intersections.
const SensibleEps = 1e-7

// SensibleInf seeds BVH extents before any shape has been unioned in
// (2^24 - 1, picked so it round-trips exactly through float32 storage).
const SensibleInf = 16777215

// MajorAxis names the signed axis along which a ray direction's
// magnitude is largest. It selects which threaded-BVH link table a
// traversal should follow.
type MajorAxis int

const (
	PosX MajorAxis = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Ray is a value type: origin, unit-length direction, the element-wise
// reciprocal of the direction (used by the AABB slab test), and the
// direction's major axis. Direction is normalized at construction and
// never mutated afterward.
type Ray struct {
	Origin    lin.V3
	Dir       lin.V3
	InvDir    lin.V3
	MajorAxis MajorAxis
}

// NewRay builds a Ray from an origin and a (not necessarily normalized)
// direction, normalizing the direction and precomputing its reciprocal
// and major axis.
func NewRay(origin, dir lin.V3) Ray {
	dir.Unit()
	r := Ray{Origin: origin, Dir: dir}
	r.InvDir = lin.V3{X: 1 / dir.X, Y: 1 / dir.Y, Z: 1 / dir.Z}
	r.MajorAxis = majorAxisOf(dir)
	return r
}

func majorAxisOf(d lin.V3) MajorAxis {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)
	switch {
	case ax >= ay && ax >= az:
		if d.X >= 0 {
			return PosX
		}
		return NegX
	case ay >= ax && ay >= az:
		if d.Y >= 0 {
			return PosY
		}
		return NegY
	default:
		if d.Z >= 0 {
			return PosZ
		}
		return NegZ
	}
}

// At returns the point on the ray at distance t.
func (r *Ray) At(t float64) lin.V3 {
	var p lin.V3
	var scaled lin.V3
	scaled.Scale(&r.Dir, t)
	p.Add(&r.Origin, &scaled)
	return p
}

// Intersection is the result of a ray hitting a shape.
type Intersection struct {
	Material       int
	T              float64
	Point          lin.V3
	Normal         lin.V3
	Entering       bool
	OrientedNormal lin.V3
	U, V           float64
}

// Nearer implements the store replace rule: replace the
// current best (cur, curOK) with (cand, candOK) iff cand exists and
// either no current best exists or cand is strictly closer and
// strictly positive.
func Nearer(cur Intersection, curOK bool, cand Intersection, candOK bool) (Intersection, bool) {
	if !candOK || cand.T <= 0 {
		return cur, curOK
	}
	if !curOK || cand.T < cur.T {
		return cand, true
	}
	return cur, curOK
}

// Material is an immutable (post-insertion) surface description.
type Material struct {
	Albedo     lin.V3
	Emittance  lin.V3
	Reflectance float64 // in [0, 1]
	IOR        float64  // index of refraction, >= 1
}

// Reflect returns v reflected about unit normal n: v - n*(n·v)*2.
func Reflect(v, n lin.V3) lin.V3 {
	var out lin.V3
	scaled := n
	scaled.Scale(&n, n.Dot(&v)*2)
	out.Sub(&v, &scaled)
	return out
}

// Refract returns the refraction of unit incident vector v through unit
// normal n given the ratio of indices of refraction n1/n2 (ior). No
// integrator currently dispatches to it, but it is implemented and
// tested rather than left out as dead code.
//
// Returns ok=false on total internal reflection (negative value under
// the square root).
func Refract(v, n lin.V3, ior float64) (out lin.V3, ok bool) {
	c := -n.Dot(&v)
	r := ior
	disc := 1 - r*r*(1-c*c)
	if disc < 0 {
		return lin.V3{}, false
	}
	var rv, rn lin.V3
	rv.Scale(&v, r)
	rn.Scale(&n, r*c-math.Sqrt(disc))
	out.Add(&rv, &rn)
	return out, true
}
