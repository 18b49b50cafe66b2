// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rng provides the per-worker pseudo-random source used by the
// sampling integrators, and the geometric samplers built on top of it.
//
// Go has no thread-local storage, so there is no global "current thread's
// rng" to reach for. Instead each render worker constructs its own
// *Source and threads it down through sample calls. A Source must never
// be shared between goroutines.
package rng

import (
	"math"
	"math/rand"
)

// Constants for the linear congruential generator. These match the
// widely used 48-bit LCG (java.util.Random's algorithm): state' =
// (state*mult + inc) mod 2^48.
const (
	multiplier uint64 = 0x5DEECE66D
	increment  uint64 = 11
	mask       uint64 = (1 << 48) - 1
)

// Source is a single-goroutine pseudo-random number source. The zero
// value is not ready for use; construct one with New or NewSeeded.
type Source struct {
	state uint64
}

// New returns a Source seeded from a nondeterministic entropy source.
func New() *Source {
	return NewSeeded(rand.Uint64())
}

// NewSeeded returns a Source deterministically seeded from seed, useful
// for reproducible renders and tests.
func NewSeeded(seed uint64) *Source {
	s := &Source{}
	s.Reseed(seed)
	return s
}

// Reseed resets the source's state from seed.
func (s *Source) Reseed(seed uint64) {
	s.state = (seed ^ multiplier) & mask
}

// next advances the LCG one step and returns the new 48-bit state.
func (s *Source) next() uint64 {
	s.state = (s.state*multiplier + increment) & mask
	return s.state
}

// Float64 returns a uniform value in [0, 1), taking the low 48 bits of
// the advanced state and scaling by 2^-48.
func (s *Source) Float64() float64 {
	return float64(s.next()) / float64(mask+1)
}

// UnitSquare returns two independent uniform values in [0, 1).
func UnitSquare(s *Source) (x, y float64) {
	return s.Float64(), s.Float64()
}

// UnitDisk rejection-samples a point uniformly distributed within the
// unit disk (‖(x,y)‖² < 1).
func UnitDisk(s *Source) (x, y float64) {
	for {
		x, y = s.Float64()*2-1, s.Float64()*2-1
		if x*x+y*y < 1 {
			return x, y
		}
	}
}

// NormalPair returns two independent standard-normal values via the
// Marsaglia polar method: sample a nonzero point in the unit disk and
// scale it by sqrt(-2 ln(r²) / r²).
func NormalPair(s *Source) (x, y float64) {
	for {
		x, y = s.Float64()*2-1, s.Float64()*2-1
		r2 := x*x + y*y
		if r2 < 1 && r2 > 0 {
			scale := math.Sqrt(-2 * math.Log(r2) / r2)
			return x * scale, y * scale
		}
	}
}

// UnitVector returns a point uniformly distributed on the 2-sphere using
// Marsaglia's 1972 method: reject (x1, x2) outside the unit disk, then
// map the accepted pair onto the sphere.
func UnitVector(s *Source) (x, y, z float64) {
	for {
		x1, x2 := s.Float64()*2-1, s.Float64()*2-1
		d := x1*x1 + x2*x2
		if d < 1 {
			root := math.Sqrt(1 - d)
			return 2 * x1 * root, 2 * x2 * root, 1 - 2*d
		}
	}
}
