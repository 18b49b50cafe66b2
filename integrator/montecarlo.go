// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
)

// rouletteStartDepth and rouletteSurvival are the Russian-roulette
// parameters: once a path reaches this depth, it survives with this
// probability each further bounce.
const (
	rouletteStartDepth = 8
	rouletteSurvival   = 0.2
)

// MonteCarlo is the unidirectional Monte-Carlo path tracer: unbounded depth with Russian-roulette
// termination, a diffuse-or-mirror scatter decision weighted by
// reflectance, and a running throughput/radiance pair per path.
type MonteCarlo struct {
	*SampleWrapper
}

// NewMonteCarlo returns a ready-to-use MonteCarlo integrator.
func NewMonteCarlo() *MonteCarlo {
	m := &MonteCarlo{}
	m.SampleWrapper = NewSampleWrapper(m)
	return m
}

// Sample implements Sampler.
func (m *MonteCarlo) Sample(r geom.Ray, scene Scene, src *rng.Source) lin.V3 {
	var wO lin.V3                 // accumulated radiance
	a := lin.V3{X: 1, Y: 1, Z: 1} // accumulated albedo throughput
	cosPrev := 1.0                // cosine at the previous bounce
	ray := r

	for depth := 0; ; depth++ {
		hit, ok := scene.IntersectRay(&ray, nil)
		if !ok {
			break
		}
		mat := scene.Material(hit.Material)

		if hit.Entering {
			var emitted lin.V3
			emitted.Scale(&mat.Emittance, cosPrev)
			emitted.Mult(&emitted, &a)
			wO.Add(&wO, &emitted)
		}
		a.Mult(&a, &mat.Albedo)

		if depth >= rouletteStartDepth {
			if src.Float64() >= rouletteSurvival {
				break
			}
			a.Scale(&a, 1/rouletteSurvival)
		}

		var newDir lin.V3
		if src.Float64() < 1-mat.Reflectance {
			x, y, z := rng.UnitVector(src)
			newDir = lin.V3{X: x, Y: y, Z: z}
		} else {
			newDir = geom.Reflect(ray.Dir, hit.OrientedNormal)
		}

		origin := offsetPoint(hit.Point, hit.OrientedNormal)
		ray = geom.NewRay(origin, newDir)
		cosPrev = ray.Dir.Dot(&hit.OrientedNormal)
	}
	return wO
}
