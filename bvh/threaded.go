// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bvh

import (
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/store"
)

// Sentinel marks "end of traversal" in a threaded tree's link table.
const Sentinel = -1

// Link is one threaded-tree table entry: where to go when the node's
// box is entered (Hit) versus missed or the subtree is exhausted (Miss).
type Link struct {
	Hit, Miss int
}

// ThreadedNode is one entry of the flat, depth-first node array shared
// by every direction's link table.
type ThreadedNode struct {
	Bounds Bounds
	Lo, Hi int // shape range [Lo, Hi); empty for internal nodes
}

func (n *ThreadedNode) isLeaf() bool { return n.Hi > n.Lo }

// Threaded is the flat, stackless BVH produced by ToThreaded.
type Threaded struct {
	Nodes  []ThreadedNode
	Shapes []geom.Shape

	// Links holds one table per signed major axis, indexed by geom.MajorAxis. When Multi is false only
	// Links[0] is populated and every ray uses it regardless of its
	// major axis tag.
	Links [6][]Link
	Multi bool

	children []store.Store
}

// ToThreaded converts a fat tree into a stackless, linked flat array
//. When multiDirection is false, a
// single link table is built treating each node's Left child as
// permanently "near" (no per-ray direction swap).
func ToThreaded(f *Fat, multiDirection bool) *Threaded {
	t := &Threaded{Multi: multiDirection, children: f.children}
	if f.Root == nil {
		return t
	}

	// Emit the node array once, depth-first, in the fat tree's natural
	// (unswapped) child order. Every direction's link table is built
	// over these same indices; only the hit/miss values differ.
	index := map[*FatNode]int{}
	var emit func(n *FatNode)
	emit = func(n *FatNode) {
		index[n] = len(t.Nodes)
		tn := ThreadedNode{Bounds: n.Bounds, Lo: n.Lo, Hi: n.Lo} // Hi==Lo marks "internal" until leaf fill below
		if n.IsLeaf() {
			lo := len(t.Shapes)
			t.Shapes = append(t.Shapes, f.Shapes[n.Lo:n.Hi]...)
			tn.Lo, tn.Hi = lo, len(t.Shapes)
		}
		t.Nodes = append(t.Nodes, tn)
		if !n.IsLeaf() {
			emit(n.Left)
			emit(n.Right)
		}
	}
	emit(f.Root)

	directions := 1
	if multiDirection {
		directions = 6
	}
	for d := 0; d < directions; d++ {
		links := make([]Link, len(t.Nodes))
		axis := geom.MajorAxis(d)
		buildLinks(index, f.Root, Sentinel, multiDirection, axis, links)
		t.Links[d] = links
	}
	return t
}

// buildLinks fills links for one direction via the standard BVH-rope
// recursion: a node's hit link descends into its near child (or, for
// a leaf, equals its own miss link, since there is nothing further to
// descend into); a near child's miss link is its far sibling, and a
// far child's miss link is its parent's miss link — i.e. climbing
// further up, the first ancestor's far sibling not yet exited. This replaces explicit parent-pointer climbing with
// recursion carrying the already-computed miss link down to each
// child, per the design note's first traversal option.
func buildLinks(index map[*FatNode]int, n *FatNode, missLink int, multi bool, axis geom.MajorAxis, links []Link) {
	idx := index[n]
	if n.IsLeaf() {
		links[idx] = Link{Hit: missLink, Miss: missLink}
		return
	}

	near, far := n.Left, n.Right
	if multi && nearIsRight(n, axis) {
		near, far = n.Right, n.Left
	}

	links[idx] = Link{Hit: index[near], Miss: missLink}
	buildLinks(index, near, index[far], multi, axis, links)
	buildLinks(index, far, missLink, multi, axis, links)
}

// nearIsRight reports whether, for the given signed major axis, n's
// right child is geometrically nearer to a ray traveling along that
// axis than the left child is — i.e. whether they must be swapped so
// the near child is visited first.
func nearIsRight(n *FatNode, axis geom.MajorAxis) bool {
	a, negative := axisIndexOf(axis)
	lc, rc := axisOf(n.Left.Bounds.centroid(), a), axisOf(n.Right.Bounds.centroid(), a)
	if negative {
		return rc > lc
	}
	return rc < lc
}

func axisIndexOf(axis geom.MajorAxis) (index int, negative bool) {
	switch axis {
	case geom.PosX:
		return 0, false
	case geom.NegX:
		return 0, true
	case geom.PosY:
		return 1, false
	case geom.NegY:
		return 1, true
	case geom.PosZ:
		return 2, false
	default:
		return 2, true
	}
}

func (b Bounds) centroid() lin.V3 {
	var c lin.V3
	c.Add(&b.Min, &b.Max)
	c.Scale(&c, 0.5)
	return c
}

// Children implements store.Store.
func (t *Threaded) Children() []store.Store { return t.children }

// IntersectRay implements store.Store via stackless traversal.
func (t *Threaded) IntersectRay(r *geom.Ray, stats *store.Stats) (geom.Intersection, bool) {
	var best geom.Intersection
	var ok bool

	if len(t.Nodes) > 0 {
		dir := 0
		if t.Multi {
			dir = int(r.MajorAxis)
		}
		links := t.Links[dir]
		pos := 0
		for pos != Sentinel {
			n := &t.Nodes[pos]
			if stats != nil {
				stats.BoundChecks++
			}
			if geom.BoxHit(n.Bounds.Min, n.Bounds.Max, r) {
				if n.isLeaf() {
					if stats != nil {
						stats.ShapeChecks += n.Hi - n.Lo
					}
					for i := n.Lo; i < n.Hi; i++ {
						cand, candOK := t.Shapes[i].Intersect(r)
						best, ok = geom.Nearer(best, ok, cand, candOK)
					}
				}
				pos = links[pos].Hit
			} else {
				pos = links[pos].Miss
			}
		}
	}

	for _, c := range t.children {
		cand, candOK := c.IntersectRay(r, stats)
		best, ok = geom.Nearer(best, ok, cand, candOK)
	}
	return best, ok
}
