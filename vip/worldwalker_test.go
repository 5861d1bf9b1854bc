package vip

import (
	"testing"

	"github.com/redherring-emu/vip/surface"
)

// setWorldEnd marks world idx as the terminating (END) world.
func setWorldEnd(v *VIP, idx int) {
	v.BGMap.WriteWord(worldAttrBase+idx*16, worldEND, 0x03)
}

func TestRenderEyeStopsAtFirstEND(t *testing.T) {
	v := newTestVIP()

	v.GPLT[0] = 0xE4
	v.Chars.WriteWord(0, 0, 0xFFFF, 0x03)
	// RenderEye draws through the brightness pens; BRTA=0x80 makes pens 1-3
	// full intensity (255) while pen 0 (the BKCOL=0 fill) stays black.
	v.Write(regBRTA, 0x80)

	setWorld := func(idx int, attr uint16) {
		v.BGMap.WriteWord(worldAttrBase+idx*16+0, attr, 0x03)
		v.BGMap.WriteWord(worldAttrBase+idx*16+7, 7, 0x03) // w
		v.BGMap.WriteWord(worldAttrBase+idx*16+8, 7, 0x03) // h
	}

	setWorld(31, worldLON)
	setWorldEnd(v, 30)
	setWorld(5, worldLON) // must never be reached

	// gx: world 5 would draw at x=100 if the walk reached it.
	v.BGMap.WriteWord(worldAttrBase+5*16+1, 100, 0x03)

	fb := NewFramebuffers()
	v.RenderEye(false, fb.Left[0])

	if got := fb.Left[0].At(0, 0); got != v.pens[3] {
		t.Fatalf("world 31 should have drawn color 3 (pen %d) at (0,0), got %d", v.pens[3], got)
	}
	if got := fb.Left[0].At(100, 0); got != v.pens[0] {
		t.Fatalf("world 5 lies below the END world and must not be drawn: pixel (100,0) = %d", got)
	}
}

func TestObjectGroupVisitsExpectedCountAndDecrementsCursor(t *testing.T) {
	v := newTestVIP()

	v.SPT[3] = 5
	v.SPT[2] = 2

	v.GPLT[0] = 0xE4
	v.JPLT[0] = 0xE4
	v.Chars.WriteWord(0, 0, 0xFFFF, 0x03)

	for _, idx := range []int{3, 4, 5} {
		v.BGMap.WriteWord(objAttrBase+idx*4+0, uint16(idx), 0x03) // jx = idx
		v.BGMap.WriteWord(objAttrBase+idx*4+1, objAttrJLON, 0x03) // jlon set, jp=0
		v.BGMap.WriteWord(objAttrBase+idx*4+2, 0, 0x03)           // jy = 0
		v.BGMap.WriteWord(objAttrBase+idx*4+3, 0, 0x03)           // tile 0, palette 0
	}
	// entry 2 belongs to the previous group and must not be drawn.
	v.BGMap.WriteWord(objAttrBase+2*4+0, 2, 0x03)
	v.BGMap.WriteWord(objAttrBase+2*4+1, objAttrJLON, 0x03)

	dst := NewFramebuffers().Left[0]

	next := v.walkObjects(false, dst, surface.Full(), worldLON, 3)
	if next != 2 {
		t.Fatalf("curSPT after group = %d, want 2 (decremented once)", next)
	}

	for _, idx := range []int{3, 4, 5} {
		if got := dst.At(idx, 0); got != 3 {
			t.Fatalf("object %d not drawn at its jx: pixel = %d", idx, got)
		}
	}
	if got := dst.At(2, 0); got != 0 {
		t.Fatalf("entry 2 belongs to the previous group and must not be drawn, got pixel %d", got)
	}
}

func TestObjectWalkerUnderflowIsSkipped(t *testing.T) {
	v := newTestVIP()
	dst := NewFramebuffers().Left[0]

	next := v.walkObjects(false, dst, surface.Full(), worldLON, -1)
	if next != -1 {
		t.Fatalf("curSPT should remain -1 on underflow, got %d", next)
	}
}
