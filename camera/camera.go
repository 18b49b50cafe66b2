// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package camera implements primary-ray generation: a
// pinhole-or-thin-lens camera model with aperture, focal distance,
// resolution and orientation.
package camera

import (
	"math"

	"github.com/xor-shift/paths/geom"
	"github.com/xor-shift/paths/math/lin"
	"github.com/xor-shift/paths/rng"
)

// Camera holds a point of view plus the derived quantities Prepare
// computes. Field writes (Position, W/H, FOV, FocalDistance,
// Aperture) plus the SetLook* methods are the external mutation
// surface; Prepare must be called after any of them and before
// the first MakeRay.
type Camera struct {
	Position lin.V3
	W, H     int
	Rotation lin.M3 // camera-space -> world-space direction transform

	FOV           float64 // horizontal field of view, degrees
	FocalDistance float64
	Aperture      float64 // diameter; lens sampling is enabled above apertureEnabledThreshold

	// Derived by Prepare.
	viewingPlaneDistance float64
	resolutionScale      float64
	scaledW, scaledH     float64
}

// New returns a camera at the origin looking down +Z with a sane
// default lens: fov 60, focal distance 1, closed aperture.
func New(w, h int) *Camera {
	c := &Camera{
		W: w, H: h,
		Rotation:      *lin.NewM3I(),
		FOV:           60,
		FocalDistance: 1,
	}
	c.Prepare()
	return c
}

// apertureEnabledThreshold is the aperture diameter at or below which
// the camera is treated as a pinhole (no lens sampling, no depth of field).
const apertureEnabledThreshold = 0.001

// Prepare recomputes the camera's derived quantities. It must be
// called after any field write or SetLook* call and before the first
// MakeRay.
func (c *Camera) Prepare() {
	c.viewingPlaneDistance = (float64(c.W) / 2) / math.Tan((c.FOV/2)*math.Pi/180)
	c.resolutionScale = c.FocalDistance / c.viewingPlaneDistance
	c.scaledW = float64(c.W) * c.resolutionScale
	c.scaledH = float64(c.H) * c.resolutionScale
}

// SetLookAt builds the rotation that aligns the local +Z axis with
// normalize(target - position) via the skew-symmetric alignment
// formula. The matrix is applied to column vectors (V3.MultMv), so it
// maps camera-space directions into world space as stored.
func (c *Camera) SetLookAt(target lin.V3) {
	var dir lin.V3
	dir.Sub(&target, &c.Position)
	dir.Unit()
	forward := lin.V3{X: 0, Y: 0, Z: 1}
	r := lin.AlignRotation(&forward, &dir)
	c.Rotation.Set(r)
}

// SetLookRad stores a direct Euler rotation from yaw/pitch/roll
// radians.
func (c *Camera) SetLookRad(yaw, pitch, roll float64) {
	c.Rotation.SetYawPitchRoll(yaw, pitch, roll)
}

// SetLookDeg is SetLookRad taking degrees.
func (c *Camera) SetLookDeg(yaw, pitch, roll float64) {
	c.SetLookRad(lin.Rad(yaw), lin.Rad(pitch), lin.Rad(roll))
}

// MakeRay generates the primary ray for pixel (x, y).
// src is the calling goroutine's private random source; it
// must never be shared across goroutines.
func (c *Camera) MakeRay(x, y int, src *rng.Source) geom.Ray {
	n0, n1 := rng.UnitDisk(src)
	base := lin.V3{
		X: (float64(x)+n0-0.5)*c.resolutionScale - c.scaledW/2,
		Y: (-float64(y)+n1-0.5)*c.resolutionScale + c.scaledH/2,
		Z: c.FocalDistance,
	}

	if c.Aperture > apertureEnabledThreshold {
		lx, ly := rng.UnitDisk(src)
		lensOffset := lin.V3{X: lx * c.Aperture, Y: ly * c.Aperture}

		var worldOffset, origin lin.V3
		worldOffset.MultMv(&c.Rotation, &lensOffset)
		origin.Add(&c.Position, &worldOffset)

		var worldBase, dir lin.V3
		worldBase.MultMv(&c.Rotation, &base)
		dir.Sub(&worldBase, &worldOffset)
		return geom.NewRay(origin, dir)
	}

	var dir lin.V3
	dir.MultMv(&c.Rotation, &base)
	return geom.NewRay(c.Position, dir)
}
