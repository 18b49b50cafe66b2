// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"math"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
)

// whittedMaxDepth bounds the mirror-recursion depth.
const whittedMaxDepth = 8

// mirrorCutoff is the reflectance at and above which a surface is
// treated as a perfect mirror rather than shaded directly.
const mirrorCutoff = 0.95

// blinnPhongShininess is the specular exponent.
const blinnPhongShininess = 16.0

// Light is a point light used only by Whitted shading: position plus
// emitted color. Lights are not part of the material table — they are
// a scene-external input the host hands straight to NewWhitted.
type Light struct {
	Position  lin.V3
	Emittance lin.V3
}

// Whitted is the recursive direct-plus-mirror integrator: mirror surfaces recurse on the reflected ray; all others
// are shaded with Blinn-Phong against every unoccluded light.
type Whitted struct {
	*SampleWrapper
	Lights  []Light
	Ambient float64
}

// NewWhitted returns a ready-to-use Whitted integrator shading against
// lights, with a small constant ambient term.
func NewWhitted(lights []Light) *Whitted {
	w := &Whitted{Lights: lights, Ambient: 0.05}
	w.SampleWrapper = NewSampleWrapper(w)
	return w
}

// Sample implements Sampler.
func (w *Whitted) Sample(r geom.Ray, scene Scene, _ *rng.Source) lin.V3 {
	return w.trace(r, scene, 0)
}

func (w *Whitted) trace(r geom.Ray, scene Scene, depth int) lin.V3 {
	if depth >= whittedMaxDepth {
		return lin.V3{}
	}
	hit, ok := scene.IntersectRay(&r, nil)
	if !ok {
		return lin.V3{}
	}
	mat := scene.Material(hit.Material)

	if mat.Reflectance >= mirrorCutoff {
		reflected := geom.Reflect(r.Dir, hit.OrientedNormal)
		origin := offsetPoint(hit.Point, hit.OrientedNormal)
		return w.trace(geom.NewRay(origin, reflected), scene, depth+1)
	}

	// Ambient applies unconditionally so a surface with no direct light
	// contribution is never pure black.
	var color lin.V3
	color.Scale(&mat.Albedo, w.Ambient)
	for _, light := range w.Lights {
		var toLight lin.V3
		toLight.Sub(&light.Position, &hit.Point)
		dist := toLight.Len()
		toLight.Unit()

		shadowOrigin := offsetPoint(hit.Point, hit.OrientedNormal)
		shadowRay := geom.NewRay(shadowOrigin, toLight)
		if shadowHit, shadowOK := scene.IntersectRay(&shadowRay, nil); shadowOK && shadowHit.T < dist {
			continue // occluded: no contribution from this light
		}

		var viewDir lin.V3
		viewDir.Scale(&r.Dir, -1)
		viewDir.Unit()

		var h lin.V3
		h.Add(&toLight, &viewDir)
		h.Unit()

		lambertian := math.Max(hit.OrientedNormal.Dot(&toLight), 0)
		specular := math.Pow(math.Max(hit.OrientedNormal.Dot(&h), 0), blinnPhongShininess)

		var contribution lin.V3
		contribution.Scale(&mat.Albedo, lambertian+specular)
		contribution.Mult(&contribution, &light.Emittance)
		color.Add(&color, &contribution)
	}
	return color
}

// offsetPoint nudges p along n by sensible_eps, the self-shadow
// rejection margin shared with geom's intersection tests.
func offsetPoint(p, n lin.V3) lin.V3 {
	var offset, out lin.V3
	offset.Scale(&n, geom.SensibleEps)
	out.Add(&p, &offset)
	return out
}
