// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bvh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
	"github.com/xor-shift/paths/store"
)

// TestAllLayoutsAgreeOverRandomTriangles is the full-bag equivalence
// check: a linear store and every BVH layout built from the same
// triangle set must agree on hit/no-hit and hit distance for a large
// batch of random rays.
func TestAllLayoutsAgreeOverRandomTriangles(t *testing.T) {
	if testing.Short() {
		t.Skip("large equivalence sweep skipped in -short mode")
	}

	const triangles = 1000
	const rays = 10000

	src := rng.NewSeeded(42)
	v3 := func(scale, offset float64) lin.V3 {
		return lin.V3{
			X: src.Float64()*scale + offset,
			Y: src.Float64()*scale + offset,
			Z: src.Float64()*scale + offset,
		}
	}

	linear := store.NewLinear()
	for i := 0; i < triangles; i++ {
		v0 := v3(20, -10)
		var v1, v2 lin.V3
		v1.Add(&v0, (&lin.V3{}).SetS(src.Float64()*2-1, src.Float64()*2-1, src.Float64()*2-1))
		v2.Add(&v0, (&lin.V3{}).SetS(src.Float64()*2-1, src.Float64()*2-1, src.Float64()*2-1))
		linear.InsertShape(geom.NewTriangle(v0, v1, v2, i))
	}

	fat := Build(linear, 24, 4)
	thin := ToThin(fat)
	single := ToThreaded(fat, false)
	multi := ToThreaded(fat, true)

	layouts := []struct {
		name string
		s    store.Store
	}{
		{"fat", fat},
		{"thin", thin},
		{"threaded-single", single},
		{"threaded-multi", multi},
	}

	for i := 0; i < rays; i++ {
		origin := v3(40, -20)
		x, y, z := rng.UnitVector(src)
		r := geom.NewRay(origin, lin.V3{X: x, Y: y, Z: z})

		want, wantOK := linear.IntersectRay(&r, nil)
		for _, layout := range layouts {
			got, gotOK := layout.s.IntersectRay(&r, nil)
			require.Equal(t, wantOK, gotOK,
				"ray %d: %s disagrees with linear on hit/no-hit", i, layout.name)
			if wantOK {
				require.InDelta(t, want.T, got.T, 1e-4,
					"ray %d: %s hit distance diverged", i, layout.name)
			}
		}
	}
}

// TestThinAndThreadedMatchFatExactly narrows the tolerance: the flat
// layouts run the same float operations over the same shapes, so their
// hit distances must equal the fat tree's bit-for-bit.
func TestThinAndThreadedMatchFatExactly(t *testing.T) {
	linStore, src := buildTestScene(250)
	fat := Build(linStore, 20, 2)
	thin := ToThin(fat)
	threaded := ToThreaded(fat, true)

	for i := 0; i < 1000; i++ {
		origin := lin.V3{X: src.Float64()*40 - 20, Y: src.Float64()*40 - 20, Z: src.Float64()*40 - 20}
		x, y, z := rng.UnitVector(src)
		r := geom.NewRay(origin, lin.V3{X: x, Y: y, Z: z})

		want, wantOK := fat.IntersectRay(&r, nil)
		gotThin, thinOK := thin.IntersectRay(&r, nil)
		gotThreaded, threadedOK := threaded.IntersectRay(&r, nil)

		require.Equal(t, wantOK, thinOK, "ray %d: thin hit/no-hit", i)
		require.Equal(t, wantOK, threadedOK, "ray %d: threaded hit/no-hit", i)
		if wantOK {
			require.Equal(t, want.T, gotThin.T, "ray %d: thin t", i)
			require.Equal(t, want.T, gotThreaded.T, "ray %d: threaded t", i)
		}
	}
}
