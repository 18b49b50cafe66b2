// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package camera

import (
	"math"
	"testing"

	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
)

func TestNewHasSaneDefaults(t *testing.T) {
	c := New(640, 480)
	if c.FOV != 60 || c.FocalDistance != 1 {
		t.Errorf("unexpected defaults: FOV=%v FocalDistance=%v", c.FOV, c.FocalDistance)
	}
	if c.Aperture > apertureEnabledThreshold {
		t.Errorf("default aperture should be closed")
	}
}

func TestPrepareDerivesViewingPlaneDistance(t *testing.T) {
	c := New(100, 100)
	c.FOV = 90
	c.Prepare()
	// At a 90-degree horizontal FOV, tan(45deg) == 1, so the viewing
	// plane distance collapses to half the pixel width.
	want := float64(c.W) / 2
	got := c.viewingPlaneDistance
	if !lin.Aeq(got, want) {
		t.Fatalf("viewing plane distance = %v, want %v", got, want)
	}

	// A pinhole ray straight through the center pixel should travel
	// parallel to +Z once resolution scaling cancels out.
	r := c.MakeRay(c.W/2, c.H/2, rng.NewSeeded(1))
	if math.Abs(r.Dir.X) > 0.05 || math.Abs(r.Dir.Y) > 0.05 {
		t.Errorf("center ray should point roughly down +Z, got %v", r.Dir)
	}
}

func TestMakeRayIsDeterministicForASeededSource(t *testing.T) {
	c := New(320, 240)
	r1 := c.MakeRay(10, 20, rng.NewSeeded(42))
	r2 := c.MakeRay(10, 20, rng.NewSeeded(42))
	if !r1.Dir.Aeq(&r2.Dir) || !r1.Origin.Aeq(&r2.Origin) {
		t.Error("MakeRay should be deterministic for identical (pixel, seed) inputs")
	}
}

func TestMakeRayVariesWithAntialiasingJitter(t *testing.T) {
	c := New(320, 240)
	r1 := c.MakeRay(10, 20, rng.NewSeeded(1))
	r2 := c.MakeRay(10, 20, rng.NewSeeded(2))
	if r1.Dir.Aeq(&r2.Dir) {
		t.Error("different seeds should produce different antialiasing jitter")
	}
}

func TestApertureWidensRayOrigins(t *testing.T) {
	c := New(320, 240)
	c.Aperture = 0.5
	c.Prepare()

	src := rng.NewSeeded(7)
	seenDistinctOrigin := false
	for i := 0; i < 32; i++ {
		r := c.MakeRay(160, 120, src)
		if !r.Origin.Aeq(&c.Position) {
			seenDistinctOrigin = true
			break
		}
	}
	if !seenDistinctOrigin {
		t.Error("an open aperture should jitter ray origins away from the camera position")
	}
}

func TestSetLookAtPointsTowardTarget(t *testing.T) {
	c := New(100, 100)
	c.Position = lin.V3{X: 0, Y: 0, Z: 0}
	c.SetLookAt(lin.V3{X: 0, Y: 0, Z: 5})
	c.Prepare()

	r := c.MakeRay(50, 50, rng.NewSeeded(1))
	want := lin.V3{X: 0, Y: 0, Z: 1}
	if r.Dir.Dot(&want) < 0.99 {
		t.Errorf("center ray should point toward the look-at target, got %v", r.Dir)
	}
}

func TestSetLookDegMatchesSetLookRad(t *testing.T) {
	a := New(50, 50)
	b := New(50, 50)
	a.SetLookRad(lin.Rad(30), lin.Rad(15), lin.Rad(0))
	b.SetLookDeg(30, 15, 0)
	a.Prepare()
	b.Prepare()

	ra := a.MakeRay(25, 25, rng.NewSeeded(3))
	rb := b.MakeRay(25, 25, rng.NewSeeded(3))
	if !ra.Dir.Aeq(&rb.Dir) {
		t.Errorf("SetLookDeg should match SetLookRad in radians: %v vs %v", ra.Dir, rb.Dir)
	}
}
