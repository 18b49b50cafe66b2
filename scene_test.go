// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package paths

import (
	"testing"

	"github.com/xor-shift/paths/bvh"
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
)

func TestInsertAndResolveMaterialByAlias(t *testing.T) {
	s := NewScene()
	red := s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 1, Y: 0, Z: 0}}, "red")
	s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 0, Y: 1, Z: 0}}, "green")

	if got := s.ResolveMaterial("red"); got != red {
		t.Errorf("ResolveMaterial(\"red\") = %d, want %d", got, red)
	}
	if got := s.Material(red).Albedo; got != (lin.V3{X: 1, Y: 0, Z: 0}) {
		t.Errorf("Material(red).Albedo = %v", got)
	}
}

func TestResolveUnknownAliasClampsToLastMaterial(t *testing.T) {
	s := NewScene()
	s.InsertMaterial(geom.Material{}, "a")
	last := s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 9, Y: 9, Z: 9}}, "b")

	if got := s.ResolveMaterial("nonexistent"); got != last {
		t.Errorf("unknown alias should clamp to the last material, got %d want %d", got, last)
	}
}

func TestResolveMaterialOnEmptyTablePanics(t *testing.T) {
	s := NewScene()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic resolving a material against an empty table")
		}
	}()
	s.ResolveMaterial("anything")
}

func TestMaterialClampsOutOfRangeIndex(t *testing.T) {
	s := NewScene()
	s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 1, Y: 1, Z: 1}}, "")
	last := s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 2, Y: 2, Z: 2}}, "")

	if got := s.Material(99); got.Albedo != (lin.V3{X: 2, Y: 2, Z: 2}) {
		t.Errorf("out-of-range index should clamp to the last material, got %v", got.Albedo)
	}
	if got := s.Material(-1); got.Albedo != (lin.V3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("negative index should clamp to the first material, got %v", got.Albedo)
	}
	_ = last
}

func TestInsertShapeAndIntersectRayAgainstRoot(t *testing.T) {
	s := NewScene()
	mat := s.InsertMaterial(geom.Material{Albedo: lin.V3{X: 1, Y: 1, Z: 1}}, "")
	s.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 5}, 1, mat))

	r := geom.NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	hit, ok := s.IntersectRay(&r, nil)
	if !ok || hit.Material != mat {
		t.Errorf("expected a hit with material %d, got ok=%v material=%d", mat, ok, hit.Material)
	}
}

func TestUseStoreSwapsTraversalWithoutLosingRoot(t *testing.T) {
	s := NewScene()
	mat := s.InsertMaterial(geom.Material{}, "")
	s.InsertShape(geom.NewSphere(lin.V3{X: 0, Y: 0, Z: 5}, 1, mat))
	s.InsertShape(geom.NewSphere(lin.V3{X: 10, Y: 0, Z: 5}, 1, mat))

	f := bvh.Build(s.Root, 8, 2)
	s.UseStore(f)

	r := geom.NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	if _, ok := s.IntersectRay(&r, nil); !ok {
		t.Error("expected a hit through the swapped-in BVH store")
	}
	if len(s.Root.Shapes()) != 2 {
		t.Error("UseStore should not affect Root's own shape vector")
	}
}
