// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package worker

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Mode selects how a WaitGroup's Wait suspends: Blocking sleeps on a
// condition variable (expected high worker latency); Spin busy-waits,
// calling runtime.Gosched between polls rather than issuing a CPU pause
// instruction (expected short tasks).
type Mode int

const (
	Blocking Mode = iota
	Spin
)

// WaitGroup is an atomic counter with two mutually exclusive wait
// strategies selected at construction. Add(n) bumps the counter;
// Done() decrements and signals; Wait() returns once the counter is
// zero.
type WaitGroup struct {
	mode  Mode
	count atomic.Int64
	mu    sync.Mutex
	zero  *sync.Cond
}

// NewWaitGroup returns a WaitGroup using the given suspension mode.
func NewWaitGroup(mode Mode) *WaitGroup {
	wg := &WaitGroup{mode: mode}
	wg.zero = sync.NewCond(&wg.mu)
	return wg
}

// Add increments the counter by n (n may be negative).
func (wg *WaitGroup) Add(n int) {
	if wg.count.Add(int64(n)) == 0 && wg.mode == Blocking {
		wg.mu.Lock()
		wg.zero.Broadcast()
		wg.mu.Unlock()
	}
}

// Done decrements the counter by one and wakes any blocked Wait once
// it reaches zero.
func (wg *WaitGroup) Done() {
	if wg.count.Add(-1) == 0 && wg.mode == Blocking {
		wg.mu.Lock()
		wg.zero.Broadcast()
		wg.mu.Unlock()
	}
}

// Wait returns once the counter is zero.
func (wg *WaitGroup) Wait() {
	if wg.mode == Spin {
		for wg.count.Load() != 0 {
			runtime.Gosched()
		}
		return
	}
	wg.mu.Lock()
	for wg.count.Load() != 0 {
		wg.zero.Wait()
	}
	wg.mu.Unlock()
}
