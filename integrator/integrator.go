// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package integrator implements the sample-integrator framework:
// the shared per-ray sample wrapper, and the four concrete integrators
// built on it (albedo, statistics, Whitted, Monte-Carlo path tracer).
//
// Every integrator implements the same contract: SetCamera, SetScene,
// DoRender, GetImage. Constructors launch a persistent worker pool
// (package worker) that consumes work items forever until the
// integrator is discarded; DoRender queues one work item per
// contiguous row range and waits for it to drain.
package integrator

import (
	"runtime"

	"github.com/xor-shift/paths/camera"
	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/render"
	"github.com/xor-shift/paths/rng"
	"github.com/xor-shift/paths/store"
	"github.com/xor-shift/paths/worker"
)

// Scene is the read-only surface every integrator needs from a scene:
// the closest-hit query and the material table. paths.Scene
// satisfies this interface structurally; integrator never imports the
// root package, so there is no import cycle between scene assembly
// and rendering.
type Scene interface {
	IntersectRay(r *geom.Ray, stats *store.Stats) (geom.Intersection, bool)
	Material(index int) geom.Material
}

// Integrator is the contract shared by every concrete integrator and
// by the progressive averager that wraps one.
type Integrator interface {
	SetCamera(c *camera.Camera)
	SetScene(s Scene)
	DoRender()
	GetImage() render.View
}

// Sampler is implemented by a concrete per-ray integrator's shading
// routine: given a primary ray, the scene, and the calling goroutine's
// private random source, return the pixel color.
type Sampler interface {
	Sample(r geom.Ray, scene Scene, src *rng.Source) lin.V3
}

// bufferSize is the work-item channel capacity for every pool in this
// package: generous enough that SplitWork never blocks on a render
// with a sane row-chunk size, without being unbounded.
const bufferSize = 256

// rowsPerItem is how many rows each queued work item covers. Smaller
// chunks balance load better across goroutines of uneven per-row cost
// (e.g. a path tracer's Russian-roulette depth varies by pixel); it
// costs a little more channel traffic in exchange.
const rowsPerItem = 4

// SampleWrapper is the base for every per-ray integrator. It owns the camera, scene, back buffer and worker pool;
// DoRender splits the image's rows into work items of rowsPerItem rows
// each, served by the pool's runtime.NumCPU() goroutines (the rows are
// not divided into one equal share per goroutine), and calls the
// embedding Sampler's Sample for every pixel.
type SampleWrapper struct {
	sampler Sampler

	cam   *camera.Camera
	scene Scene
	img   *render.Image

	pool    *worker.Pool
	started bool
}

// NewSampleWrapper returns a SampleWrapper driving sampler, with its
// worker pool already spawned at runtime.NumCPU() goroutines. Each
// goroutine seeds one private rng.Source at spawn and reuses it for
// every item it processes.
func NewSampleWrapper(sampler Sampler) *SampleWrapper {
	w := &SampleWrapper{sampler: sampler, img: render.NewImage(0, 0)}
	w.pool = worker.NewPool(func() func(worker.Item) {
		src := rng.New()
		return func(item worker.Item) { w.renderRows(item, src) }
	}, bufferSize, worker.Blocking)
	w.pool.DoWork(runtime.NumCPU())
	w.started = true
	return w
}

// SetCamera implements Integrator. It resizes the back buffer to the
// camera's resolution.
func (w *SampleWrapper) SetCamera(c *camera.Camera) {
	w.cam = c
	w.img.Resize(c.W, c.H)
}

// SetScene implements Integrator.
func (w *SampleWrapper) SetScene(s Scene) { w.scene = s }

// DoRender implements Integrator: queue one work item per contiguous
// row range and block until every row has been sampled.
func (w *SampleWrapper) DoRender() {
	w.pool.SplitWork(w.img.H, rowsPerItem)
	w.pool.Wait()
}

// GetImage implements Integrator.
func (w *SampleWrapper) GetImage() render.View { return render.ViewOf(w.img) }

// Close shuts the worker pool down. In-flight work completes before
// its goroutines exit.
func (w *SampleWrapper) Close() { w.pool.Close() }

// renderRows is the pool's work function: walk every pixel in rows
// [item.Lo, item.Hi), generate its primary ray, sample it, and write
// the result. src is the calling goroutine's private rng.Source,
// seeded once when the pool spawned it.
func (w *SampleWrapper) renderRows(item worker.Item, src *rng.Source) {
	for y := item.Lo; y < item.Hi; y++ {
		for x := 0; x < w.img.W; x++ {
			r := w.cam.MakeRay(x, y, src)
			c := w.sampler.Sample(r, w.scene, src)
			w.img.Set3(x, y, c)
		}
	}
}
