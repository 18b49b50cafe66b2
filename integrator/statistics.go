// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
	"github.com/xor-shift/paths/store"
)

// Statistics is the traversal-cost visualizer: it returns
// (bound_checks, shape_checks, 0) as a "color".
// Whether the resulting image is meant to be viewed directly or
// post-processed into a heat-map is left to the host — this integrator only surfaces the raw counts.
type Statistics struct {
	*SampleWrapper
}

// NewStatistics returns a ready-to-use Statistics integrator.
func NewStatistics() *Statistics {
	s := &Statistics{}
	s.SampleWrapper = NewSampleWrapper(s)
	return s
}

// Sample implements Sampler.
func (s *Statistics) Sample(r geom.Ray, scene Scene, _ *rng.Source) lin.V3 {
	var stats store.Stats
	scene.IntersectRay(&r, &stats)
	return lin.V3{X: float64(stats.BoundChecks), Y: float64(stats.ShapeChecks), Z: 0}
}
