// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render holds the image/view data model: a
// row-major buffer of RGB color triples owned by an integrator, and a
// non-owning view handed to consumers. Image implements image.Image
// (stdlib) so a host can hand a render straight to any Go image
// encoder without the core depending on one.
package render

import (
	"image"
	"image/color"

	"github.com/xor-shift/paths/math/lin"
)

// Image is a row-major RGB float64 buffer. The zero value is not
// ready for use; construct with NewImage.
type Image struct {
	W, H int
	Pix  []lin.V3 // row-major, length W*H
}

// NewImage returns a black image of the given dimensions.
func NewImage(w, h int) *Image {
	return &Image{W: w, H: h, Pix: make([]lin.V3, w*h)}
}

// Resize reallocates the buffer if the dimensions changed, clearing
// it to black either way.
func (img *Image) Resize(w, h int) {
	if img.W != w || img.H != h || img.Pix == nil {
		img.W, img.H = w, h
		img.Pix = make([]lin.V3, w*h)
		return
	}
	for i := range img.Pix {
		img.Pix[i] = lin.V3{}
	}
}

// At3 returns the color at (x, y). It does not bounds-check; callers
// within the render hot path are expected to stay in range by
// construction (the row split never exceeds H, and x never exceeds W).
func (img *Image) At3(x, y int) lin.V3 { return img.Pix[y*img.W+x] }

// Set3 writes the color at (x, y).
func (img *Image) Set3(x, y int, c lin.V3) { img.Pix[y*img.W+x] = c }

// AddRows adds v's rows [lo, hi) into img pixel-wise. The progressive
// averager's summer pool calls it once per row-range work item; pass
// the full row range to fold in a whole image.
func (img *Image) AddRows(v View, lo, hi int) {
	for i := lo * img.W; i < hi*img.W; i++ {
		img.Pix[i].Add(&img.Pix[i], &v.pix[i])
	}
}

// ScaleRowsFrom sets img's rows [lo, hi) to other's scaled by s,
// pixel-wise. Used by the averager's divide-by-sample-count pass.
func (img *Image) ScaleRowsFrom(other *Image, s float64, lo, hi int) {
	for i := lo * img.W; i < hi*img.W; i++ {
		img.Pix[i].Scale(&other.Pix[i], s)
	}
}

// View is a non-owning handle to an Image's pixels.
type View struct {
	W, H int
	pix  []lin.V3
}

// ViewOf returns a non-owning View of img.
func ViewOf(img *Image) View { return View{W: img.W, H: img.H, pix: img.Pix} }

// At3 returns the color at (x, y).
func (v View) At3(x, y int) lin.V3 { return v.pix[y*v.W+x] }

// image.Image implementation, so any stdlib-compatible encoder can
// consume a View or *Image directly.

// ColorModel implements image.Image.
func (img *Image) ColorModel() color.Model { return color.RGBA64Model }

// Bounds implements image.Image.
func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.W, img.H) }

// At implements image.Image, converting the HDR float triple to a
// clamped 16-bit-per-channel color.
func (img *Image) At(x, y int) color.Color { return toRGBA64(img.At3(x, y)) }

// ColorModel implements image.Image.
func (v View) ColorModel() color.Model { return color.RGBA64Model }

// Bounds implements image.Image.
func (v View) Bounds() image.Rectangle { return image.Rect(0, 0, v.W, v.H) }

// At implements image.Image.
func (v View) At(x, y int) color.Color { return toRGBA64(v.At3(x, y)) }

func toRGBA64(c lin.V3) color.RGBA64 {
	return color.RGBA64{
		R: clamp16(c.X),
		G: clamp16(c.Y),
		B: clamp16(c.Z),
		A: 0xffff,
	}
}

func clamp16(v float64) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xffff
	}
	return uint16(v * 0xffff)
}
