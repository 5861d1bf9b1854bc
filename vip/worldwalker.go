package vip

import (
	"github.com/redherring-emu/vip/internal/vlog"
	"github.com/redherring-emu/vip/surface"
)

// World attribute word 0 bit layout.
const (
	worldLON      = 1 << 15
	worldRON      = 1 << 14
	worldModeMask = 3 << 12
	worldModeShift = 12
	worldSCXShift = 10
	worldSCXMask  = 3 << worldSCXShift
	worldSCYShift = 8
	worldSCYMask  = 3 << worldSCYShift
	worldOVR      = 1 << 7
	worldEND      = 1 << 6
	worldBaseMask = 0xF
)

const (
	modeNormal = 0
	modeHBias  = 1
	modeAffine = 2
	modeObject = 3
)

// RenderEye redraws dst for one eye by walking worlds 31 down to 0,
// stopping at the first END world, and dispatching Object worlds to
// walkObjects as they're encountered. It is called once per eye per
// frame by the scheduler as its image-processing pass, before XP_END is
// raised.
func (v *VIP) RenderEye(right bool, dst *surface.Bitmap) {
	clip := surface.Full()
	dst.SetPens(v.pens)
	dst.Fill(int(v.BKCOL), clip)

	curSPT := 3
	for world := 31; world >= 0; world-- {
		attr := v.BGMap.WorldAttrWord(world, 0)
		if attr&worldEND != 0 {
			break
		}

		mode := int(attr&worldModeMask) >> worldModeShift
		if mode == modeObject {
			curSPT = v.walkObjects(right, dst, clip, attr, curSPT)
			continue
		}

		lon := attr&worldLON != 0
		ron := attr&worldRON != 0
		enabled := (right && ron) || (!right && lon)

		p := v.worldParams(world, attr, right)

		ovr := attr&worldOVR != 0
		if ovr {
			ovrAddr := int(v.BGMap.WorldAttrWord(world, 10))
			p.ovr = true
			p.ovrTile = v.fillOverflowTile(v.BGMap.ReadWord(ovrAddr))
		}
		if !enabled {
			continue
		}

		switch mode {
		case modeNormal:
			v.drawBGMap(dst, clip, false, p)
		case modeHBias:
			v.drawBGMap(dst, clip, true, p)
		case modeAffine:
			v.drawAffine(dst, clip, p)
		}
	}
}

// worldParams reads the geometry fields (words 1-9) common to Normal,
// HBias, and Affine worlds out of world descriptor world.
func (v *VIP) worldParams(world int, attr uint16, right bool) bgmapParams {
	scx := (attr & worldSCXMask) >> worldSCXShift
	scy := (attr & worldSCYMask) >> worldSCYShift
	mapWidthTiles := 64 << scx
	mapHeightTiles := 64 << scy

	return bgmapParams{
		segment:   int(attr & worldBaseMask),
		paramBase: int(v.BGMap.WorldAttrWord(world, 9) & 0xFFF0),
		gx:        int16(v.BGMap.WorldAttrWord(world, 1)),
		gp:        int16(v.BGMap.WorldAttrWord(world, 2)),
		gy:        int16(v.BGMap.WorldAttrWord(world, 3)),
		mx:        int16(v.BGMap.WorldAttrWord(world, 4)),
		mp:        int16(v.BGMap.WorldAttrWord(world, 5)),
		my:        int16(v.BGMap.WorldAttrWord(world, 6)),
		w:         v.BGMap.WorldAttrWord(world, 7),
		h:         v.BGMap.WorldAttrWord(world, 8),
		xMask:     uint16(mapWidthTiles*8 - 1),
		yMask:     uint16(mapHeightTiles*8 - 1),
		right:     right,
	}
}

// Object attribute word bit layout.
const (
	objAttrJLON     = 1 << 15
	objAttrJRON     = 1 << 14
	objAttrJPMask   = 0x3FFF
	objAttrTileMask = 0x7FF
	objAttrFlipX    = 1 << 13
	objAttrFlipY    = 1 << 12
	objAttrPaletteShift = 14
)

// walkObjects consumes one SPT-delimited group of the object-attribute
// table for the given Object world: entries are visited in
// descending index order starting at SPT[curSPT] down to (but excluding)
// SPT[curSPT-1] (or 0x3FF when curSPT is 0), wrapping modulo 1024. curSPT
// is decremented once the group has been consumed for the eye this world
// enables, and the resulting cursor is returned for the next Object world.
// A world encountered after all four groups are already spent (curSPT ==
// -1) is an SPT underflow: it is logged and skipped rather than
// indexing SPT[-1].
func (v *VIP) walkObjects(right bool, dst *surface.Bitmap, clip surface.Rect, attr uint16, curSPT int) int {
	if curSPT == -1 {
		vlog.Log("vip", "SPT underflow: object world skipped")
		return -1
	}

	lon := attr&worldLON != 0
	ron := attr&worldRON != 0

	start := int(v.SPT[curSPT]) & 0x3FF
	end := 0x3FF
	if curSPT > 0 {
		end = int(v.SPT[curSPT-1]) & 0x3FF
	}

	for i := start; i != end; i = (i - 1) & 0x3FF {
		v.drawObject(right, dst, clip, i)
	}

	if (lon && !right) || (ron && right) {
		curSPT--
	}
	return curSPT
}

// drawObject decodes object-attribute entry idx and blits it if its
// per-eye enable bit (JLON/JRON) matches the eye currently being rendered.
func (v *VIP) drawObject(right bool, dst *surface.Bitmap, clip surface.Rect, idx int) {
	jx := v.BGMap.ObjectAttrWord(idx, 0)
	w1 := v.BGMap.ObjectAttrWord(idx, 1)
	jy := v.BGMap.ObjectAttrWord(idx, 2)
	w3 := v.BGMap.ObjectAttrWord(idx, 3)

	jlon := w1&objAttrJLON != 0
	jron := w1&objAttrJRON != 0
	if (right && !jron) || (!right && !jlon) {
		return
	}

	jp := int(w1 & objAttrJPMask)
	if jp&0x2000 != 0 {
		jp -= 0x4000 // sign-extend the 14-bit field
	}

	x := int(int16(jx))
	if right {
		x += jp
	} else {
		x -= jp
	}
	x &= 0x1FF
	if x >= 0x100 {
		x -= 0x200 // recover the signed screen coordinate
	}

	y := int(int16(jy)) & 0x1FF
	if y >= 0x100 {
		y -= 0x200
	}

	palette := v.JPLT[(w3>>objAttrPaletteShift)&3]
	tile := int(w3 & objAttrTileMask)
	flipX := w3&objAttrFlipX != 0
	flipY := w3&objAttrFlipY != 0

	v.putObject(dst, clip, x, y, tile, flipX, flipY, palette)
}
