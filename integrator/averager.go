// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"runtime"

	"github.com/xor-shift/paths/camera"
	"github.com/xor-shift/paths/render"
	"github.com/xor-shift/paths/worker"
)

// Averager wraps an inner Integrator for progressive Monte-Carlo
// rendering: it owns a running sum image and a normalized
// result image plus a sample counter, and drives the inner integrator
// once per DoRender call.
type Averager struct {
	inner Integrator

	sum, result *render.Image
	sampleCount int

	summerPool   *worker.Pool
	averagerPool *worker.Pool
}

// NewAverager wraps inner. inner's own worker pool keeps driving its
// per-ray sampling; Averager adds two more pools (summer, averager)
// for its own pixel-wise image arithmetic.
func NewAverager(inner Integrator) *Averager {
	a := &Averager{inner: inner, sum: render.NewImage(0, 0), result: render.NewImage(0, 0)}
	a.summerPool = worker.NewPool(func() func(worker.Item) { return a.sumRows }, bufferSize, worker.Blocking)
	a.summerPool.DoWork(runtime.NumCPU())
	a.averagerPool = worker.NewPool(func() func(worker.Item) { return a.averageRows }, bufferSize, worker.Blocking)
	a.averagerPool.DoWork(runtime.NumCPU())
	return a
}

// SetCamera implements Integrator: propagates to the inner integrator
// and resizes both owned images.
func (a *Averager) SetCamera(c *camera.Camera) {
	a.inner.SetCamera(c)
	a.sum.Resize(c.W, c.H)
	a.result.Resize(c.W, c.H)
	a.sampleCount = 0
}

// SetScene implements Integrator.
func (a *Averager) SetScene(s Scene) { a.inner.SetScene(s) }

// DoRender implements Integrator: render one more
// sample, fold it into the running sum, and bump the sample count.
func (a *Averager) DoRender() {
	a.inner.DoRender()
	a.summerPool.SplitWork(a.sum.H, rowsPerItem)
	a.summerPool.Wait()
	a.sampleCount++
}

func (a *Averager) sumRows(item worker.Item) {
	a.sum.AddRows(a.inner.GetImage(), item.Lo, item.Hi)
}

// GetImage implements Integrator: divide the sum image by the sample
// count into the result image, parallelized by rows, and return it.
func (a *Averager) GetImage() render.View {
	a.averagerPool.SplitWork(a.result.H, rowsPerItem)
	a.averagerPool.Wait()
	return render.ViewOf(a.result)
}

func (a *Averager) averageRows(item worker.Item) {
	n := float64(a.sampleCount)
	if n == 0 {
		n = 1
	}
	a.result.ScaleRowsFrom(a.sum, 1/n, item.Lo, item.Hi)
}

// Close shuts both of the averager's pools and, if the inner
// integrator owns one of its own, shuts that too.
func (a *Averager) Close() {
	a.summerPool.Close()
	a.averagerPool.Close()
	if closer, ok := a.inner.(interface{ Close() }); ok {
		closer.Close()
	}
}
