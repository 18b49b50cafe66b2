// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package store holds the shape-store hierarchy: an abstract
// collection of shapes answering "closest hit for this ray", composable
// via children. A Store is immutable once mounted into a scene, so
// children may be shared across several parents with no cycle
// detection.
package store

import (
	"github.com/xor-shift/paths/geom"
)

// Stats carries the two optional traversal counters that the
// statistics integrator surfaces: the number of bound-box tests
// and the number of shape-vs-ray tests. A nil *Stats disables counting
// entirely, so callers outside the statistics integrator pay nothing.
type Stats struct {
	BoundChecks int
	ShapeChecks int
}

// Store answers the closest positive-distance intersection of a ray
// against itself and all transitive children. Implementations must be
// safe for concurrent read-only use: the scene is built once and then
// shared, read-only, across every render worker goroutine.
type Store interface {
	// IntersectRay returns the closest hit across this store and its
	// children, or ok=false if the ray hits nothing. stats may be nil.
	IntersectRay(r *geom.Ray, stats *Stats) (geom.Intersection, bool)

	// Children returns the store's child stores, in no particular
	// order. A linear store with no children returns nil.
	Children() []Store
}

// Linear owns a contiguous vector of shapes and intersects each one in
// turn; it also holds child stores, recursing into every one of them.
// It is the base case every BVH layout is built from and the fallback
// used directly for scenes too small to benefit from an acceleration
// structure.
type Linear struct {
	shapes   []geom.Shape
	children []Store
}

// NewLinear returns an empty linear store.
func NewLinear() *Linear {
	return &Linear{}
}

// InsertShape appends shape to the store's shape vector. It always
// succeeds; the bool return exists for parity with hosts that treat
// insertion as fallible.
func (l *Linear) InsertShape(s geom.Shape) bool {
	l.shapes = append(l.shapes, s)
	return true
}

// InsertStore mounts child as one of l's children. child is shared by
// reference: the same Store value may be mounted under several
// parents.
func (l *Linear) InsertStore(child Store) {
	l.children = append(l.children, child)
}

// Shapes returns the store's own shape vector (not including
// children's shapes). Used by BVH construction, which needs a flat
// shape vector to partition.
func (l *Linear) Shapes() []geom.Shape { return l.shapes }

// Children implements Store.
func (l *Linear) Children() []Store { return l.children }

// IntersectRay implements Store: test every owned shape, then every
// child, keeping the nearest hit via the replace rule.
func (l *Linear) IntersectRay(r *geom.Ray, stats *Stats) (geom.Intersection, bool) {
	var best geom.Intersection
	var ok bool
	for i := range l.shapes {
		if stats != nil {
			stats.ShapeChecks++
		}
		cand, candOK := l.shapes[i].Intersect(r)
		best, ok = geom.Nearer(best, ok, cand, candOK)
	}
	for _, child := range l.children {
		cand, candOK := child.IntersectRay(r, stats)
		best, ok = geom.Nearer(best, ok, cand, candOK)
	}
	return best, ok
}
