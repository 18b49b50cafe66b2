// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/xor-shift/paths/math/lin"
)

func TestSphereHitFromOutside(t *testing.T) {
	s := NewSphere(lin.V3{X: 0, Y: 0, Z: 0}, 1, 0)
	r := NewRay(lin.V3{X: 0, Y: 0, Z: -5}, lin.V3{X: 0, Y: 0, Z: 1})
	hit, ok := s.Intersect(&r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.T, 4) {
		t.Errorf("t = %v, want 4", hit.T)
	}
	if hit.OrientedNormal.Dot(&r.Dir) > 0 {
		t.Errorf("oriented normal points the wrong way")
	}
}

func TestSphereHitFromInside(t *testing.T) {
	// a ray from inside a sphere hits once, choosing the far root.
	s := NewSphere(lin.V3{X: 0, Y: 0, Z: 0}, 1, 0)
	r := NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	hit, ok := s.Intersect(&r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.T, 1) {
		t.Errorf("t = %v, want 1 (far root)", hit.T)
	}
	if hit.Entering {
		t.Errorf("a ray leaving the sphere should not be 'entering'")
	}
}

func TestPlaneGrazingMiss(t *testing.T) {
	// a ray grazing a plane edge (denominator <= eps) misses.
	p := NewPlane(lin.V3{}, lin.V3{X: 0, Y: 1, Z: 0}, 0)
	r := NewRay(lin.V3{X: 0, Y: 1, Z: 0}, lin.V3{X: 1, Y: 0, Z: 0})
	if _, ok := p.Intersect(&r); ok {
		t.Error("expected no intersection for a ray parallel to the plane")
	}
}

func TestTriangleBoundaryAndOverflow(t *testing.T) {
	tri := NewTriangle(
		lin.V3{X: 0, Y: 0, Z: 0},
		lin.V3{X: 1, Y: 0, Z: 0},
		lin.V3{X: 0, Y: 1, Z: 0},
		0,
	)
	// Ray straight down the +Z axis through u=0 (the v0-v2 edge at x=0).
	r := NewRay(lin.V3{X: 0, Y: 0.5, Z: -1}, lin.V3{X: 0, Y: 0, Z: 1})
	if _, ok := tri.Intersect(&r); !ok {
		t.Error("expected a hit exactly on the u=0 edge")
	}

	// A ray well outside u+v<=1 should miss.
	rMiss := NewRay(lin.V3{X: 0.9, Y: 0.9, Z: -1}, lin.V3{X: 0, Y: 0, Z: 1})
	if _, ok := tri.Intersect(&rMiss); ok {
		t.Error("expected no hit outside the triangle (u+v > 1)")
	}
}

func TestParallelogramAllowsFullUnitSquare(t *testing.T) {
	pg := NewParallelogram(
		lin.V3{X: 0, Y: 0, Z: 0},
		lin.V3{X: 1, Y: 0, Z: 0},
		lin.V3{X: 0, Y: 1, Z: 0},
		0,
	)
	r := NewRay(lin.V3{X: 0.9, Y: 0.9, Z: -1}, lin.V3{X: 0, Y: 0, Z: 1})
	if _, ok := pg.Intersect(&r); !ok {
		t.Error("expected a hit inside the parallelogram's far corner")
	}
}

func TestBoxEntryAndExit(t *testing.T) {
	box := NewBox(lin.V3{X: -1, Y: -1, Z: -1}, lin.V3{X: 1, Y: 1, Z: 1}, 0)

	outside := NewRay(lin.V3{X: 0, Y: 0, Z: -5}, lin.V3{X: 0, Y: 0, Z: 1})
	hit, ok := box.Intersect(&outside)
	if !ok {
		t.Fatal("expected a hit from outside the box")
	}
	if !lin.Aeq(hit.T, 4) {
		t.Errorf("entering t = %v, want 4 (near root)", hit.T)
	}

	inside := NewRay(lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 0, Y: 0, Z: 1})
	hit2, ok2 := box.Intersect(&inside)
	if !ok2 {
		t.Fatal("expected a hit from inside the box")
	}
	if !lin.Aeq(hit2.T, 1) {
		t.Errorf("exiting t = %v, want 1 (far root)", hit2.T)
	}
}

func TestOrientedNormalAlwaysOpposesRay(t *testing.T) {
	shapes := []Shape{
		NewSphere(lin.V3{}, 1, 0),
		NewBox(lin.V3{X: -1, Y: -1, Z: -1}, lin.V3{X: 1, Y: 1, Z: 1}, 0),
		NewTriangle(lin.V3{X: -1, Y: -1, Z: 0}, lin.V3{X: 1, Y: -1, Z: 0}, lin.V3{X: 0, Y: 1, Z: 0}, 0),
	}
	dirs := []lin.V3{
		{X: 0, Y: 0, Z: 1},
		{X: 0.3, Y: 0.1, Z: 1},
		{X: 0, Y: -1, Z: 0.2},
	}
	for _, s := range shapes {
		for _, d := range dirs {
			r := NewRay(lin.V3{X: 0, Y: 0, Z: -5}, d)
			hit, ok := s.Intersect(&r)
			if !ok {
				continue
			}
			if dot := hit.OrientedNormal.Dot(&r.Dir); dot > 1e-9 {
				t.Errorf("oriented normal faces the ray: dot=%v", dot)
			}
		}
	}
}

func TestNearerReplaceRule(t *testing.T) {
	far := Intersection{T: 5}
	near := Intersection{T: 2}
	negative := Intersection{T: -1}

	if got, ok := Nearer(Intersection{}, false, far, true); !ok || got.T != 5 {
		t.Errorf("first candidate should replace an empty best")
	}
	if got, ok := Nearer(far, true, near, true); !ok || got.T != 2 {
		t.Errorf("strictly closer candidate should win")
	}
	if got, ok := Nearer(near, true, far, true); !ok || got.T != 2 {
		t.Errorf("farther candidate should not replace")
	}
	if _, ok := Nearer(Intersection{}, false, negative, true); ok {
		t.Errorf("a non-positive candidate should never become the best")
	}
}

func TestReflectIsInvolution(t *testing.T) {
	n := lin.V3{X: 0, Y: 1, Z: 0}
	v := lin.V3{X: 1, Y: -1, Z: 0}
	v.Unit()
	r := Reflect(v, n)
	r2 := Reflect(r, n)
	if !r2.Aeq(&v) {
		t.Errorf("reflecting twice about the same normal should return the original vector")
	}
}

func TestRefractTotalInternalReflection(t *testing.T) {
	n := lin.V3{X: 0, Y: 1, Z: 0}
	v := lin.V3{X: math.Sin(math.Pi/2 - 0.01), Y: -math.Cos(math.Pi/2 - 0.01), Z: 0}
	v.Unit()
	if _, ok := Refract(v, n, 1.5); ok {
		t.Error("a grazing ray leaving a denser medium (n1/n2 = 1.5) should total-internally-reflect")
	}
}
