package vip

import (
	"math"

	"github.com/redherring-emu/vip/surface"
)

// sampleBGMapPixel fetches the bgmap entry covering pixel
// (x, y) of the given base segment (stepping into adjacent segments once x
// or y exceed 64 tiles), then the covered character row, returning either
// a 2-bit color index or surface.Transparent when the underlying tile
// pixel is 0.
func (v *VIP) sampleBGMapPixel(segment, x, y int) int {
	cx, cy := x>>3, y>>3
	stepx := (cx >> 6) & 3
	stepy := ((cy >> 6) & 3) * (stepx + 1)

	offset := (cx & 63) + 64*(cy&63) + 0x1000*(segment+stepx+stepy)
	entry := v.BGMap.ReadWord(offset)

	palette := v.GPLT[(entry>>14)&3]
	tile := int(entry & 0x7FF)
	flipX := entry&0x2000 != 0
	flipY := entry&0x1000 != 0

	row := v.Chars.TileRow(tile, y&7, flipX, flipY)
	dat := (row >> uint((x&7)*2)) & 3
	if dat == 0 {
		return surface.Transparent
	}
	return int((palette >> (dat * 2)) & 3)
}

// fillOverflowTile precomputes the 8x8 grid of colors for a world's single
// overflow tile. entry is the dereferenced bgmap entry pointed to
// by the world's ovr_char field (see worldwalker.go), not the raw address.
func (v *VIP) fillOverflowTile(entry uint16) [64]int {
	palette := v.GPLT[(entry>>14)&3]
	tile := int(entry & 0x7FF)
	flipX := entry&0x2000 != 0
	flipY := entry&0x1000 != 0

	var grid [64]int
	for yi := 0; yi < 8; yi++ {
		row := v.Chars.TileRow(tile, yi, flipX, flipY)
		for xi := 0; xi < 8; xi++ {
			dat := (row >> uint(xi*2)) & 3
			if dat == 0 {
				grid[yi*8+xi] = surface.Transparent
			} else {
				grid[yi*8+xi] = int((palette >> (dat * 2)) & 3)
			}
		}
	}
	return grid
}

// bgmapParams bundles the world-attribute fields draw_bgmap and
// draw_affine both need.
type bgmapParams struct {
	segment            int
	paramBase          int
	gx, gp, gy         int16
	mx, mp, my         int16
	w, h               uint16
	xMask, yMask       uint16
	ovr                bool
	ovrTile            [64]int
	right              bool
}

// drawBGMap draws both Normal (mode 0) and HBias (mode 1)
// worlds; hbias selects whether the per-row horizontal-shift parameter
// block is consulted.
func (v *VIP) drawBGMap(dst *surface.Bitmap, clip surface.Rect, hbias bool, p bgmapParams) {
	for y := 0; y <= int(p.h); y++ {
		dy := y + int(p.gy)
		sy := y + int(p.my)

		for x := 0; x <= int(p.w); x++ {
			dx := x + int(p.gx)
			if p.right {
				dx -= int(p.gp)
			} else {
				dx += int(p.gp)
			}

			sx := x + int(p.mx)
			if hbias {
				lineOffset := 2*y + 1
				if p.right {
					lineOffset = 2 * y
				}
				sx += int(int16(v.BGMap.ReadWord(p.paramBase + lineOffset)))
			}
			if p.right {
				sx -= int(p.mp)
			} else {
				sx += int(p.mp)
			}

			pix := v.sampleSourcePixel(p, sx, sy)
			dst.SetPixel(dx, dy, pix, clip)
		}
	}
}

// sampleSourcePixel resolves one bgmap-sourced pixel, dispatching to the
// overflow tile when OVR is set and the source coordinate falls outside
// the map's active area.
func (v *VIP) sampleSourcePixel(p bgmapParams, sx, sy int) int {
	if p.ovr && (sx < 0 || sy < 0 || sx > int(p.xMask) || sy > int(p.yMask)) {
		return p.ovrTile[(sy&7)*8+(sx&7)]
	}
	return v.sampleBGMapPixel(p.segment, sx&int(p.xMask), sy&int(p.yMask))
}

// drawAffine draws Affine-mode (world mode 2) worlds: five int16
// parameters are read per destination row from the world's parameter
// block, and the source coordinate for each column is a linear function
// of x with row-varying skew/scale.
func (v *VIP) drawAffine(dst *surface.Bitmap, clip surface.Rect, p bgmapParams) {
	for y := 0; y <= int(p.h); y++ {
		base := p.paramBase + 8*y
		hSkw := int16(v.BGMap.ReadWord(base + 0))
		prlx := int16(v.BGMap.ReadWord(base + 1))
		vSkw := int16(v.BGMap.ReadWord(base + 2))
		hScl := float64(int16(v.BGMap.ReadWord(base+3))) / 512.0
		vScl := float64(int16(v.BGMap.ReadWord(base+4))) / 512.0

		hSkwAdj := float64(hSkw)
		if p.right {
			hSkwAdj -= float64(prlx)
		} else {
			hSkwAdj += float64(prlx)
		}
		vSkwAdj := float64(vSkw)

		dy := y + int(p.gy)

		for x := 0; x <= int(p.w); x++ {
			dx := x + int(p.gx)
			if p.right {
				dx -= int(p.gp)
			} else {
				dx += int(p.gp)
			}

			sx := int(math.Floor(hSkwAdj + hScl*float64(x)))
			sy := int(math.Floor(vSkwAdj + vScl*float64(x)))

			pix := v.sampleSourcePixel(p, sx, sy)
			if pix == surface.Transparent {
				continue
			}
			dst.SetPixel(dx, dy, pix, clip)
		}
	}
}

// putObject blits an 8x8 sprite at (x, y), skipping
// transparent (color 0) source pixels.
func (v *VIP) putObject(dst *surface.Bitmap, clip surface.Rect, x, y int, tile int, flipX, flipY bool, palette uint16) {
	for yi := 0; yi < 8; yi++ {
		row := v.Chars.TileRow(tile, yi, flipX, flipY)
		for xi := 0; xi < 8; xi++ {
			dat := (row >> uint(xi*2)) & 3
			if dat == 0 {
				continue
			}
			color := int((palette >> (dat * 2)) & 3)
			dst.SetPixel(x+xi, y+yi, color, clip)
		}
	}
}
