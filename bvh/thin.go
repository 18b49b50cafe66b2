// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bvh

import (
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/store"
)

// ThinNode is one entry of the flat, breadth-first array tree (named
// for its compact storage; this package emits it breadth-first, see
// ToThin). Internal nodes
// have an empty shape range and valid Left/Right indices; leaves have
// a non-empty range and unused (-1) child indices.
type ThinNode struct {
	Bounds      Bounds
	Lo, Hi      int // shape range [Lo, Hi) into Thin.Shapes; empty for internal nodes
	Left, Right int // child indices; -1 for leaves
}

func (n *ThinNode) isLeaf() bool { return n.Left < 0 }

// Thin is the flat array BVH produced by ToThin.
type Thin struct {
	Nodes    []ThinNode
	Shapes   []geom.Shape
	MaxDepth int
	children []store.Store
}

// ToThin converts a fat tree into a flat breadth-first array. f is
// left intact: the source tree and the derived flat form coexist.
func ToThin(f *Fat) *Thin {
	t := &Thin{children: f.children}
	if f.Root == nil {
		return t
	}

	type queued struct {
		node  *FatNode
		depth int
	}
	order := []queued{{f.Root, 0}}
	index := map[*FatNode]int{f.Root: 0}
	for i := 0; i < len(order); i++ {
		n := order[i].node
		if n.Left != nil {
			index[n.Left] = len(order)
			order = append(order, queued{n.Left, order[i].depth + 1})
			index[n.Right] = len(order)
			order = append(order, queued{n.Right, order[i].depth + 1})
		}
		if order[i].depth > t.MaxDepth {
			t.MaxDepth = order[i].depth
		}
	}

	t.Nodes = make([]ThinNode, len(order))
	for i, q := range order {
		n := q.node
		tn := ThinNode{Bounds: n.Bounds, Left: -1, Right: -1}
		if n.IsLeaf() {
			lo := len(t.Shapes)
			t.Shapes = append(t.Shapes, f.Shapes[n.Lo:n.Hi]...)
			tn.Lo, tn.Hi = lo, len(t.Shapes)
		} else {
			tn.Left, tn.Right = index[n.Left], index[n.Right]
		}
		t.Nodes[i] = tn
	}
	return t
}

// Children implements store.Store.
func (t *Thin) Children() []store.Store { return t.children }

// IntersectRay implements store.Store with an explicit stack, seeded
// with the root.
func (t *Thin) IntersectRay(r *geom.Ray, stats *store.Stats) (geom.Intersection, bool) {
	var best geom.Intersection
	var ok bool

	if len(t.Nodes) > 0 {
		stack := make([]int, 0, t.MaxDepth+2)
		stack = append(stack, 0)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &t.Nodes[idx]

			if stats != nil {
				stats.BoundChecks++
			}
			if !geom.BoxHit(n.Bounds.Min, n.Bounds.Max, r) {
				continue
			}
			if !n.isLeaf() {
				stack = append(stack, n.Right, n.Left)
				continue
			}
			if stats != nil {
				stats.ShapeChecks += n.Hi - n.Lo
			}
			for i := n.Lo; i < n.Hi; i++ {
				cand, candOK := t.Shapes[i].Intersect(r)
				best, ok = geom.Nearer(best, ok, cand, candOK)
			}
		}
	}

	for _, c := range t.children {
		cand, candOK := c.IntersectRay(r, stats)
		best, ok = geom.Nearer(best, ok, cand, candOK)
	}
	return best, ok
}
