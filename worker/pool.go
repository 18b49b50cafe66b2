// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package worker

import "log/slog"

// Item is one unit of work: a contiguous, half-open range [Lo, Hi)
// handed to the pool's worker function, typically a row range of an
// image.
type Item struct {
	Lo, Hi int
}

// Pool owns a bounded channel of work items and a wait-group. A Pool
// is created once per integrator and driven forever: DoWork spawns its
// goroutines exactly once; every render call after that reuses them
// via SplitWork/Wait.
type Pool struct {
	makeWorker func() func(Item)
	channel    *Channel[Item]
	wg         *WaitGroup
}

// NewPool returns a Pool whose goroutines each call makeWorker once at
// spawn to build their item handler. The factory lets a worker carry
// per-goroutine state (a private random source, scratch buffers)
// across every item it processes.
func NewPool(makeWorker func() func(Item), bufferSize int, mode Mode) *Pool {
	return &Pool{
		makeWorker: makeWorker,
		channel:    NewChannel[Item](bufferSize),
		wg:         NewWaitGroup(mode),
	}
}

// DoWork spawns nThreads goroutines, each looping forever: pull an
// item, invoke its handler, mark it done. Workers exit once Close
// drains the channel.
func (p *Pool) DoWork(nThreads int) {
	for i := 0; i < nThreads; i++ {
		go func() {
			fn := p.makeWorker()
			for {
				item, ok := p.channel.Get()
				if !ok {
					return
				}
				fn(item)
				p.wg.Done()
			}
		}()
	}
	slog.Debug("worker pool started", "threads", nThreads)
}

// SplitWork divides [0, total) into chunks of size divide (the last
// chunk holding only the remainder when total is not a multiple of
// divide), queues one Item per chunk, and
// arranges for Wait to block until every chunk's fn call has returned
//.
func (p *Pool) SplitWork(total, divide int) {
	if total <= 0 {
		return
	}
	chunks := (total + divide - 1) / divide
	p.wg.Add(chunks)
	for lo := 0; lo < total; lo += divide {
		hi := lo + divide
		if hi > total {
			hi = total
		}
		p.channel.Push(Item{Lo: lo, Hi: hi})
	}
}

// Wait blocks until every Item queued by a prior SplitWork call has
// been processed.
func (p *Pool) Wait() { p.wg.Wait() }

// Close shuts the channel; workers exit once their Get finds it closed
// and drained. Close is idempotent.
func (p *Pool) Close() { p.channel.Close() }
