// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"math"

	"github.com/xor-shift/paths/math/lin"
)

// Shape is the closed sum of every primitive the ray tracer knows how
// to intersect: box, disc, plane, sphere, triangle, parallelogram.
//
// Currently the shapes are so simple they are all kept in this one
// file, dispatched on Kind rather than erased behind an interface —
// the hot intersection path stays inline-able instead of paying for a
// vtable call per candidate.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindDisc
	KindTriangle
	KindParallelogram
	KindBox
)

// Shape holds the union of fields every variant needs. Unused fields
// for a given Kind are simply zero.
type Shape struct {
	Kind     Kind
	Material int

	// Sphere: Center, Radius. Plane/Disc: Center, Normal (+Radius for disc).
	Center lin.V3
	Radius float64
	Normal lin.V3

	// Triangle/Parallelogram: V0 is the anchor vertex, E0/E1 the two
	// edges from it. Normal is precomputed as normalize(E0 x E1).
	V0, E0, E1 lin.V3

	// Box: axis-aligned extents.
	Min, Max lin.V3
}

// NewSphere returns a sphere shape at center with the given radius.
func NewSphere(center lin.V3, radius float64, material int) Shape {
	return Shape{Kind: KindSphere, Material: material, Center: center, Radius: radius}
}

// NewPlane returns an (unbounded) plane through center with the given
// unit normal.
func NewPlane(center, normal lin.V3, material int) Shape {
	normal.Unit()
	return Shape{Kind: KindPlane, Material: material, Center: center, Normal: normal}
}

// NewDisc returns a disc: a plane intersection filtered to points
// within radius of center.
func NewDisc(center, normal lin.V3, radius float64, material int) Shape {
	normal.Unit()
	return Shape{Kind: KindDisc, Material: material, Center: center, Normal: normal, Radius: radius}
}

// NewTriangle returns a triangle with vertices v0, v1, v2.
func NewTriangle(v0, v1, v2 lin.V3, material int) Shape {
	var e0, e1, n lin.V3
	e0.Sub(&v1, &v0)
	e1.Sub(&v2, &v0)
	n.Cross(&e0, &e1)
	n.Unit()
	return Shape{Kind: KindTriangle, Material: material, V0: v0, E0: e0, E1: e1, Normal: n}
}

// NewParallelogram returns a parallelogram anchored at v0 with edges to
// v1 and v2 (the fourth corner is v1+v2-v0).
func NewParallelogram(v0, v1, v2 lin.V3, material int) Shape {
	var e0, e1, n lin.V3
	e0.Sub(&v1, &v0)
	e1.Sub(&v2, &v0)
	n.Cross(&e0, &e1)
	n.Unit()
	return Shape{Kind: KindParallelogram, Material: material, V0: v0, E0: e0, E1: e1, Normal: n}
}

// NewBox returns an axis-aligned box spanning [min, max].
func NewBox(min, max lin.V3, material int) Shape {
	return Shape{Kind: KindBox, Material: material, Min: min, Max: max}
}

// Boundable reports whether the shape participates in BVH construction.
// Planes are unbounded and are excluded.
func (s *Shape) Boundable() bool { return s.Kind != KindPlane }

// Extents returns the shape's axis-aligned bounds. Only valid when
// Boundable() is true.
func (s *Shape) Extents() (min, max lin.V3) {
	switch s.Kind {
	case KindSphere:
		r := lin.V3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		min.Sub(&s.Center, &r)
		max.Add(&s.Center, &r)
	case KindDisc:
		r := lin.V3{X: s.Radius, Y: s.Radius, Z: s.Radius}
		min.Sub(&s.Center, &r)
		max.Add(&s.Center, &r)
	case KindTriangle, KindParallelogram:
		v1 := add(s.V0, s.E0)
		v2 := add(s.V0, s.E1)
		min.Min(&s.V0, &v1)
		min.Min(&min, &v2)
		max.Max(&s.V0, &v1)
		max.Max(&max, &v2)
		if s.Kind == KindParallelogram {
			v3 := add(v1, s.E1)
			min.Min(&min, &v3)
			max.Max(&max, &v3)
		}
	case KindBox:
		min, max = s.Min, s.Max
	}
	return min, max
}

// Center3 returns the shape's chosen center: the centroid for
// triangles, the midpoint of the extents otherwise.
func (s *Shape) Center3() lin.V3 {
	switch s.Kind {
	case KindSphere, KindDisc:
		return s.Center
	case KindTriangle:
		v1 := add(s.V0, s.E0)
		v2 := add(s.V0, s.E1)
		var c lin.V3
		c.Add(&s.V0, &v1)
		c.Add(&c, &v2)
		c.Scale(&c, 1.0/3.0)
		return c
	default:
		min, max := s.Extents()
		var c lin.V3
		c.Add(&min, &max)
		c.Scale(&c, 0.5)
		return c
	}
}

func add(a, b lin.V3) lin.V3 {
	var out lin.V3
	out.Add(&a, &b)
	return out
}

// Intersect dispatches to the variant-specific intersection routine.
// It is a pure function of the shape and the ray.
func (s *Shape) Intersect(r *Ray) (Intersection, bool) {
	switch s.Kind {
	case KindSphere:
		return s.intersectSphere(r)
	case KindPlane:
		return s.intersectPlane(r)
	case KindDisc:
		return s.intersectDisc(r)
	case KindTriangle:
		return s.intersectTriMollerTrumbore(r, true)
	case KindParallelogram:
		return s.intersectTriMollerTrumbore(r, false)
	case KindBox:
		return s.intersectBox(r)
	}
	return Intersection{}, false
}

func (s *Shape) finish(r *Ray, t float64, normal lin.V3, u, v float64) Intersection {
	point := r.At(t)
	entering := normal.Dot(&r.Dir) < 0
	oriented := normal
	if !entering {
		oriented.Neg(&normal)
	}
	return Intersection{
		Material:       s.Material,
		T:              t,
		Point:          point,
		Normal:         normal,
		Entering:       entering,
		OrientedNormal: oriented,
		U:              u,
		V:              v,
	}
}

func (s *Shape) intersectSphere(r *Ray) (Intersection, bool) {
	var oc lin.V3
	oc.Sub(&r.Origin, &s.Center)
	a := r.Dir.Dot(&r.Dir)
	b := oc.Dot(&r.Dir)
	c := oc.Dot(&oc) - s.Radius*s.Radius
	disc := b*b - a*c
	if disc < 0 {
		return Intersection{}, false
	}
	sq := math.Sqrt(disc)
	t0, t1 := (-b-sq)/a, (-b+sq)/a
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	var t float64
	switch {
	case t0 > 1:
		t = t0
	case t1 > 1:
		t = t1
	case t0 > SensibleEps:
		t = t0
	case t1 > SensibleEps:
		t = t1
	default:
		return Intersection{}, false
	}

	point := r.At(t)
	var normal lin.V3
	normal.Sub(&point, &s.Center)
	normal.Scale(&normal, 1/s.Radius)
	u := 0.5 + math.Atan2(normal.X, normal.Z)/(2*math.Pi)
	v := 0.5 - math.Asin(clampUnit(normal.Y))/math.Pi
	return s.finish(r, t, normal, u, v), true
}

func (s *Shape) intersectPlane(r *Ray) (Intersection, bool) {
	denom := r.Dir.Dot(&s.Normal)
	if math.Abs(denom) <= SensibleEps {
		return Intersection{}, false
	}
	var diff lin.V3
	diff.Sub(&s.Center, &r.Origin)
	t := diff.Dot(&s.Normal) / denom
	if t < SensibleEps {
		return Intersection{}, false
	}
	return s.finish(r, t, s.Normal, 0, 0), true
}

func (s *Shape) intersectDisc(r *Ray) (Intersection, bool) {
	hit, ok := s.intersectPlane(r)
	if !ok {
		return Intersection{}, false
	}
	var diff lin.V3
	diff.Sub(&hit.Point, &s.Center)
	if diff.LenSqr() > s.Radius*s.Radius {
		return Intersection{}, false
	}
	return hit, true
}

// intersectTriMollerTrumbore implements Möller–Trumbore for both
// triangles and parallelograms; triangle selects the barycentric
// u+v<=1 cutoff, parallelogram allows the full unit square.
func (s *Shape) intersectTriMollerTrumbore(r *Ray, triangle bool) (Intersection, bool) {
	var h lin.V3
	h.Cross(&r.Dir, &s.E1)
	a := s.E0.Dot(&h)
	if math.Abs(a) <= SensibleEps {
		return Intersection{}, false
	}
	f := 1 / a

	var sv lin.V3
	sv.Sub(&r.Origin, &s.V0)
	u := f * sv.Dot(&h)
	if u < 0 || u > 1 {
		return Intersection{}, false
	}

	var q lin.V3
	q.Cross(&sv, &s.E0)
	v := f * r.Dir.Dot(&q)
	if triangle {
		if v < 0 || u+v > 1 {
			return Intersection{}, false
		}
	} else {
		if v < 0 || v > 1 {
			return Intersection{}, false
		}
	}

	t := f * s.E1.Dot(&q)
	if t <= SensibleEps {
		return Intersection{}, false
	}
	return s.finish(r, t, s.Normal, u, v), true
}

// BoxHit reports whether ray r enters the axis-aligned box [min, max],
// without computing a full Intersection. It is the slab test BVH
// traversal runs against node extents, exported so package bvh
// doesn't need to synthesize a Shape per node.
func BoxHit(min, max lin.V3, r *Ray) bool {
	tNear, tFar, _ := slabTest(min, max, r)
	return tFar > math.Max(tNear, 0)
}

func (s *Shape) intersectBox(r *Ray) (Intersection, bool) {
	tNear, tFar, axis := slabTest(s.Min, s.Max, r)
	if tFar <= max(tNear, 0) {
		return Intersection{}, false
	}
	t := tNear
	if t <= 0 {
		t = tFar
	}
	if t <= SensibleEps {
		return Intersection{}, false
	}
	point := r.At(t)
	normal := boxNormal(s.Min, s.Max, point, axis)
	return s.finish(r, t, normal, 0, 0), true
}

// slabTest runs the per-axis slab test, returning t_near, t_far, and
// the axis that produced t_near (the entry axis, which boxNormal biases
// its normal choice toward).
func slabTest(bmin, bmax lin.V3, r *Ray) (tNear, tFar float64, nearAxis int) {
	tNear, tFar = -SensibleInf, SensibleInf
	mins := [3]float64{bmin.X, bmin.Y, bmin.Z}
	maxs := [3]float64{bmax.X, bmax.Y, bmax.Z}
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	invd := [3]float64{r.InvDir.X, r.InvDir.Y, r.InvDir.Z}
	for axis := 0; axis < 3; axis++ {
		t1 := (mins[axis] - origin[axis]) * invd[axis]
		t2 := (maxs[axis] - origin[axis]) * invd[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			nearAxis = axis
		}
		if t2 < tFar {
			tFar = t2
		}
	}
	return tNear, tFar, nearAxis
}

// boxNormal projects the hit point onto the box's half-extents and
// picks the axis of maximum absolute value, biased slightly so ties at
// edges resolve consistently.
func boxNormal(bmin, bmax, point lin.V3, nearAxis int) lin.V3 {
	var center, half lin.V3
	center.Add(&bmin, &bmax)
	center.Scale(&center, 0.5)
	half.Sub(&bmax, &bmin)
	half.Scale(&half, 0.5)

	var rel lin.V3
	rel.Sub(&point, &center)
	// Bias the axis the slab test actually entered on so exact-corner
	// hits don't jitter between two valid faces.
	const bias = 1 + 1e-4
	rels := [3]float64{rel.X, rel.Y, rel.Z}
	halfs := [3]float64{half.X, half.Y, half.Z}
	rels[nearAxis] *= bias

	best, bestAxis := -1.0, 0
	for axis := 0; axis < 3; axis++ {
		if halfs[axis] == 0 {
			continue
		}
		v := math.Abs(rels[axis] / halfs[axis])
		if v > best {
			best = v
			bestAxis = axis
		}
	}
	var n lin.V3
	switch bestAxis {
	case 0:
		n.X = sign(rel.X)
	case 1:
		n.Y = sign(rel.Y)
	case 2:
		n.Z = sign(rel.Z)
	}
	return n
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// clampUnit clamps v to [-1, 1] to guard math.Asin against float error
// pushing a unit-length component marginally out of domain.
func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
