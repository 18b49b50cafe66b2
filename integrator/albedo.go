// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
)

// Albedo is the simplest integrator: it returns the hit material's
// albedo, or black on a miss.
type Albedo struct {
	*SampleWrapper
}

// NewAlbedo returns a ready-to-use Albedo integrator.
func NewAlbedo() *Albedo {
	a := &Albedo{}
	a.SampleWrapper = NewSampleWrapper(a)
	return a
}

// Sample implements Sampler.
func (a *Albedo) Sample(r geom.Ray, scene Scene, _ *rng.Source) lin.V3 {
	hit, ok := scene.IntersectRay(&r, nil)
	if !ok {
		return lin.V3{}
	}
	return scene.Material(hit.Material).Albedo
}
