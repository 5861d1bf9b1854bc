// Package surface implements the output bitmap the VIP renders into: a
// 384x224 2-bit-per-pixel indexed image, colored through the VIP's three
// brightness pens. This is the "Output bitmap" collaborator of the core
// (one instance per eye); the host embedding this module owns the surface
// and passes it to render_eye.
package surface

import (
	"image"
	"image/color"
)

// Width and Height are the VIP's fixed active display dimensions.
const (
	Width  = 384
	Height = 224
)

// Transparent is the sentinel returned by bgmap/object sampling to mean
// "leave the destination pixel untouched".
const Transparent = -1

// Rect is an inclusive-exclusive clip rectangle in surface coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether (x, y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Full returns the clip rectangle covering the entire surface.
func Full() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: Width, MaxY: Height}
}

// Pens holds the four visible grayscale intensities: pen 0 is always
// black, pens 1-3 are derived from BRTA/BRTB/BRTC (see the VIP's
// recomputeBrightness in package vip).
type Pens [4]uint8

// Bitmap is one eye's 2bpp output surface.
type Bitmap struct {
	img  *image.Gray
	pens Pens
}

// New allocates a bitmap with an identity pen set (pen n reads back as gray
// level n) so a bitmap never explicitly configured by SetPens still shows
// raw color indices rather than flattening everything to black.
func New() *Bitmap {
	return &Bitmap{
		img:  image.NewGray(image.Rect(0, 0, Width, Height)),
		pens: Pens{0, 1, 2, 3},
	}
}

// SetPens installs the palette used by subsequent SetPixel calls. The
// renderer snapshots pens at the start of a render pass so mid-frame
// brightness writes never tear a frame already in progress.
func (b *Bitmap) SetPens(p Pens) {
	b.pens = p
}

// SetPixel writes a 2-bit color index (0-3) at (x, y) if it lies within
// clip. A color of Transparent is a no-op, matching bgmap/object sampling.
func (b *Bitmap) SetPixel(x, y, colorIdx int, clip Rect) {
	if colorIdx == Transparent {
		return
	}
	if !clip.Contains(x, y) {
		return
	}
	b.img.SetGray(x, y, color.Gray{Y: b.pens[colorIdx&3]})
}

// Fill sets every pixel in clip to colorIdx.
func (b *Bitmap) Fill(colorIdx int, clip Rect) {
	full := Full()
	minX, minY, maxX, maxY := clip.MinX, clip.MinY, clip.MaxX, clip.MaxY
	if minX < full.MinX {
		minX = full.MinX
	}
	if minY < full.MinY {
		minY = full.MinY
	}
	if maxX > full.MaxX {
		maxX = full.MaxX
	}
	if maxY > full.MaxY {
		maxY = full.MaxY
	}
	g := color.Gray{Y: b.pens[colorIdx&3]}
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			b.img.SetGray(x, y, g)
		}
	}
}

// Image exposes the underlying grayscale image for display or encoding.
func (b *Bitmap) Image() *image.Gray {
	return b.img
}

// At returns the 8-bit gray intensity currently at (x, y), primarily for
// tests that want to assert on rendered output without an image diff.
func (b *Bitmap) At(x, y int) uint8 {
	return b.img.GrayAt(x, y).Y
}
