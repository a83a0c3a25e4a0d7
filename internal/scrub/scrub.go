// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrub obscures the fixed watermark region in the bottom-right
// corner of a page image. The region is overwritten pixel by pixel with
// colors drawn from three reference pixels sampled just outside it, each
// draw perturbed by a small amount of noise so the patch blends with the
// surrounding corner without reconstructing what it covers.
package scrub

import (
	"image"
	"image/color"
	"math/rand"
)

const (
	// PatchWidth and PatchHeight are the watermark dimensions in pixels.
	// The region is a constant size regardless of DPI or page dimensions.
	PatchWidth  = 150
	PatchHeight = 35

	// noiseAmplitude bounds the per-channel perturbation: each of R, G
	// and B shifts by an integer uniform in [-noiseAmplitude, noiseAmplitude].
	noiseAmplitude = 2
)

// Region returns the watermark rectangle for a page of the given pixel
// dimensions: a PatchWidth x PatchHeight box anchored to the bottom-right
// corner, clamped to the image bounds. Pages smaller than the patch are
// covered entirely.
func Region(width, height int) image.Rectangle {
	x1 := width - PatchWidth
	y1 := height - PatchHeight
	if x1 < 0 {
		x1 = 0
	}
	if y1 < 0 {
		y1 = 0
	}
	return image.Rect(x1, y1, width, height)
}

// References samples the three colors the patch is blended from: the
// bottom-right-most pixel of the page, the pixel directly above the
// region's top-right corner, and the pixel directly left of the region's
// bottom-left corner. When an edge sample would fall outside the image
// the bottom-right color stands in for it; no other fallback is defined.
func References(img *image.RGBA) [3]color.RGBA {
	b := img.Bounds()
	r := Region(b.Dx(), b.Dy())

	bottomRight := img.RGBAAt(b.Max.X-1, b.Max.Y-1)
	top := bottomRight
	if r.Min.Y > 0 {
		top = img.RGBAAt(b.Max.X-1, r.Min.Y-1)
	}
	left := bottomRight
	if r.Min.X > 0 {
		left = img.RGBAAt(r.Min.X-1, b.Max.Y-1)
	}
	return [3]color.RGBA{bottomRight, top, left}
}

// Patch overwrites the watermark region of img in place. For every pixel
// inside the region it picks one of the three reference colors with equal
// probability, perturbs each color channel independently, and writes the
// result; the alpha of the chosen reference is carried over unperturbed.
// Afterwards the whole image is flattened opaque. Pixels outside the
// region keep their RGB values byte for byte.
//
// Randomness comes from rng so callers can seed deterministically.
func Patch(img *image.RGBA, rng *rand.Rand) {
	b := img.Bounds()
	r := Region(b.Dx(), b.Dy())
	refs := References(img)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := refs[rng.Intn(3)]
			c.R = perturb(c.R, rng)
			c.G = perturb(c.G, rng)
			c.B = perturb(c.B, rng)
			img.SetRGBA(x, y, c)
		}
	}

	Flatten(img)
}

// Flatten forces every pixel of img opaque, discarding any transparency
// the rasterizer produced. Encoding the flattened image as PNG yields a
// plain truecolor file with no alpha channel.
func Flatten(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// perturb shifts one channel value by a uniform integer in
// [-noiseAmplitude, noiseAmplitude], clamped to [0, 255].
func perturb(v uint8, rng *rand.Rand) uint8 {
	n := int(v) + rng.Intn(2*noiseAmplitude+1) - noiseAmplitude
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
