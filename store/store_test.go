// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package store

import (
	"testing"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
)

func TestLinearIntersectsNearestAcrossShapesAndChildren(t *testing.T) {
	root := NewLinear()
	root.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 10}, 1, 0))

	child := NewLinear()
	child.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 5}, 1, 1))
	root.InsertStore(child)

	r := geom.NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	hit, ok := root.IntersectRay(&r, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Material != 1 {
		t.Errorf("expected the nearer child sphere (material 1) to win, got material %d", hit.Material)
	}
	if !lin.Aeq(hit.T, 4) {
		t.Errorf("t = %v, want 4", hit.T)
	}
}

func TestLinearMissReturnsFalse(t *testing.T) {
	root := NewLinear()
	root.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 10}, 1, 0))
	r := geom.NewRay(lin.V3{X: 100, Y: 100, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	if _, ok := root.IntersectRay(&r, nil); ok {
		t.Error("expected no hit")
	}
}

func TestLinearStatsCountShapeChecks(t *testing.T) {
	root := NewLinear()
	root.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 10}, 1, 0))
	root.InsertShape(geom.NewSphere(lin.V3{X: 5, Y: 0, Z: 10}, 1, 0))
	r := geom.NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})

	var stats Stats
	root.IntersectRay(&r, &stats)
	if stats.ShapeChecks != 2 {
		t.Errorf("ShapeChecks = %d, want 2", stats.ShapeChecks)
	}
}

func TestLinearChildrenAccessor(t *testing.T) {
	root := NewLinear()
	a, b := NewLinear(), NewLinear()
	root.InsertStore(a)
	root.InsertStore(b)
	children := root.Children()
	if len(children) != 2 || children[0] != Store(a) || children[1] != Store(b) {
		t.Errorf("Children() did not return the stores in insertion order")
	}
}
