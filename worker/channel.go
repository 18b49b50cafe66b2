// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package worker implements the concurrency substrate driving every
// integrator: a bounded work-item channel, a wait-group with
// blocking and spin modes, and a persistent worker pool that splits a
// row range across goroutines and joins on completion.
package worker

import "sync"

// Channel is a fixed-capacity FIFO queue of work items, guarded by a
// mutex and a single condition variable shared by pushers and getters
// (every state change broadcasts to both), plus a closed flag; there
// are no separate space-available and item-available conditions.
// Channel is used instead of a raw Go channel so the rest of the
// package reads against a single contract (Push/Get returning ok,
// idempotent Close) rather than raw channel send, which panics on a
// closed channel instead of reporting failure.
type Channel[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []T
	cap    int
	closed bool
}

// NewChannel returns a Channel with the given fixed capacity.
func NewChannel[T any](capacity int) *Channel[T] {
	c := &Channel[T]{cap: capacity}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Push blocks while the channel is full and open. It returns false
// without blocking further once the channel is closed.
func (c *Channel[T]) Push(v T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.buf) >= c.cap && !c.closed {
		c.cond.Wait()
	}
	if c.closed {
		return false
	}
	c.buf = append(c.buf, v)
	c.cond.Broadcast()
	return true
}

// Get blocks while the channel is empty and open. It returns the zero
// value and false once the channel is closed and drained.
func (c *Channel[T]) Get() (v T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.buf) == 0 && !c.closed {
		c.cond.Wait()
	}
	if len(c.buf) == 0 {
		return v, false
	}
	v, c.buf = c.buf[0], c.buf[1:]
	c.cond.Broadcast()
	return v, true
}

// Close wakes every waiter; Push returns false from then on, and Get
// returns false/empty once the items still buffered have been drained.
// Close is idempotent.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cond.Broadcast()
}
