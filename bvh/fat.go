// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bvh implements the bounding-volume hierarchy acceleration
// structure in three progressively more compact layouts: a
// mutable "fat" tree built directly from a shape vector, a flat
// breadth-first "thin" array derived from it, and a flat "threaded" array
// with per-direction hit/miss link tables for stackless traversal.
//
// All three layouts implement store.Store, so a host can drop any of
// them in place of the store.Linear they were built from.
package bvh

import (
	"log/slog"
	"sort"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/store"
)

// inflation is the per-side extent padding applied to every node's box
// so a shape exactly touching its bounding plane is never rejected by
// floating-point error.
const inflation = geom.SensibleEps

// Bounds is an axis-aligned box: min/max corners.
type Bounds struct {
	Min, Max lin.V3
}

// FatNode is the mutable, pointer-linked tree node built by Build.
// Internal nodes have both Left and Right set and an empty shape
// range; leaves have a non-empty range and nil children. Parent is
// populated during split and is informational only — threaded-tree
// link construction (bvh/threaded.go) walks the tree recursively
// instead of climbing Parent pointers, per the design note's first
// option.
type FatNode struct {
	Bounds Bounds
	Lo, Hi int // shape range [Lo, Hi) into Fat.Shapes

	Left, Right *FatNode
	Parent      *FatNode
}

// IsLeaf reports whether n is a leaf (non-empty shape range, no children).
func (n *FatNode) IsLeaf() bool { return n.Left == nil }

// Fat is the root-owning fat BVH: a shared, partitioned shape vector
// plus the tree built over it. Fat implements store.Store so it can
// replace the store.Linear it was built from.
type Fat struct {
	Shapes   []geom.Shape
	Root     *FatNode
	children []store.Store
}

// Build constructs a fat BVH over every boundable shape in l. Non-boundable shapes (planes) cannot be bounded and
// are rejected; a caller wanting a plane in the scene mounts it in a
// sibling store alongside the BVH instead. l's children are carried
// through unchanged so Fat remains a drop-in replacement for l.
func Build(l *store.Linear, maxDepth, minShapes int) *Fat {
	src := l.Shapes()
	shapes := make([]geom.Shape, 0, len(src))
	for _, s := range src {
		if !s.Boundable() {
			slog.Warn("bvh.Build: dropping non-boundable shape from BVH input", "kind", s.Kind)
			continue
		}
		shapes = append(shapes, s)
	}

	f := &Fat{Shapes: shapes, children: l.Children()}
	f.Root = &FatNode{Lo: 0, Hi: len(shapes)}
	split(f.Shapes, f.Root, 0, maxDepth, minShapes)
	slog.Debug("bvh.Build complete", "shapes", len(shapes), "max_depth", maxDepth, "min_shapes", minShapes)
	return f
}

// Children implements store.Store.
func (f *Fat) Children() []store.Store { return f.children }

// IntersectRay implements store.Store via recursive descent.
func (f *Fat) IntersectRay(r *geom.Ray, stats *store.Stats) (geom.Intersection, bool) {
	var best geom.Intersection
	var ok bool
	if f.Root != nil {
		best, ok = intersectFat(f.Shapes, f.Root, r, stats)
	}
	for _, c := range f.children {
		cand, candOK := c.IntersectRay(r, stats)
		best, ok = geom.Nearer(best, ok, cand, candOK)
	}
	return best, ok
}

func intersectFat(shapes []geom.Shape, n *FatNode, r *geom.Ray, stats *store.Stats) (geom.Intersection, bool) {
	if stats != nil {
		stats.BoundChecks++
	}
	if !geom.BoxHit(n.Bounds.Min, n.Bounds.Max, r) {
		return geom.Intersection{}, false
	}
	if n.IsLeaf() {
		var best geom.Intersection
		var ok bool
		for i := n.Lo; i < n.Hi; i++ {
			if stats != nil {
				stats.ShapeChecks++
			}
			cand, candOK := shapes[i].Intersect(r)
			best, ok = geom.Nearer(best, ok, cand, candOK)
		}
		return best, ok
	}
	left, lok := intersectFat(shapes, n.Left, r, stats)
	right, rok := intersectFat(shapes, n.Right, r, stats)
	return geom.Nearer(left, lok, right, rok)
}

// split recomputes n's extents, then recursively partitions n's shape
// range by the longest-axis-first heuristic.
func split(shapes []geom.Shape, n *FatNode, depth, maxDepth, minShapes int) {
	n.Bounds = boundsOf(shapes[n.Lo:n.Hi])

	if depth >= maxDepth || n.Hi-n.Lo <= minShapes {
		return
	}

	for _, axis := range axesByDescendingLength(n.Bounds) {
		length := axisOf(n.Bounds.Max, axis) - axisOf(n.Bounds.Min, axis)
		if length <= 0 {
			continue
		}
		boundary := axisOf(n.Bounds.Min, axis) + length*0.5

		k := partitionOutsideRightHalf(shapes[n.Lo:n.Hi], axis, boundary)
		left, right := k, (n.Hi-n.Lo)-k
		if left < minShapes || right < minShapes {
			continue
		}

		mid := n.Lo + k
		n.Left = &FatNode{Lo: n.Lo, Hi: mid, Parent: n}
		n.Right = &FatNode{Lo: mid, Hi: n.Hi, Parent: n}
		split(shapes, n.Left, depth+1, maxDepth, minShapes)
		split(shapes, n.Right, depth+1, maxDepth, minShapes)
		return
	}
	// No axis produced a valid split: n remains a leaf.
}

// partitionOutsideRightHalf reorders shapes (a relative slice already
// sliced by the caller) in place so every shape whose center lies
// outside the right half (center[axis] < boundary) comes first,
// returning the count of that first group.
func partitionOutsideRightHalf(shapes []geom.Shape, axis int, boundary float64) int {
	i := 0
	for j := 0; j < len(shapes); j++ {
		c := shapes[j].Center3()
		if axisOf(c, axis) < boundary {
			shapes[i], shapes[j] = shapes[j], shapes[i]
			i++
		}
	}
	return i
}

// axesByDescendingLength returns {0,1,2} ordered by descending extent
// length.
func axesByDescendingLength(b Bounds) []int {
	lengths := [3]float64{
		axisOf(b.Max, 0) - axisOf(b.Min, 0),
		axisOf(b.Max, 1) - axisOf(b.Min, 1),
		axisOf(b.Max, 2) - axisOf(b.Min, 2),
	}
	axes := []int{0, 1, 2}
	sort.Slice(axes, func(i, j int) bool { return lengths[axes[i]] > lengths[axes[j]] })
	return axes
}

func boundsOf(shapes []geom.Shape) Bounds {
	b := Bounds{
		Min: lin.V3{X: geom.SensibleInf, Y: geom.SensibleInf, Z: geom.SensibleInf},
		Max: lin.V3{X: -geom.SensibleInf, Y: -geom.SensibleInf, Z: -geom.SensibleInf},
	}
	for i := range shapes {
		smin, smax := shapes[i].Extents()
		b.Min.Min(&b.Min, &smin)
		b.Max.Max(&b.Max, &smax)
	}
	eps := lin.V3{X: inflation, Y: inflation, Z: inflation}
	b.Min.Sub(&b.Min, &eps)
	b.Max.Add(&b.Max, &eps)
	return b
}

// axisOf returns v's component along the given axis index (0=X, 1=Y, 2=Z).
func axisOf(v lin.V3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
