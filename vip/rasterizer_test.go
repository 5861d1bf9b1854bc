package vip

import (
	"testing"

	"github.com/redherring-emu/vip/surface"
)

func newTestVIP() *VIP {
	return New(newFakeCPU())
}

func TestSampleBGMapPixelTransparentOnZero(t *testing.T) {
	v := newTestVIP()

	// tile 0, all rows zero (pixel value 0 everywhere): bgmap entry 0 already
	// points at tile 0 by default (a freshly zeroed word).
	v.BGMap.WriteWord(0, 0x0000, 0x03)

	if got := v.sampleBGMapPixel(0, 0, 0); got != surface.Transparent {
		t.Fatalf("sampleBGMapPixel over an all-zero tile = %v, want transparent", got)
	}
}

func TestSampleBGMapPixelNonzeroReturnsColor(t *testing.T) {
	v := newTestVIP()

	v.GPLT[0] = 0xE4 // identity mapping: pixel value n -> color n
	v.BGMap.WriteWord(0, 0x0000, 0x03)   // entry: palette 0, tile 0
	v.Chars.WriteWord(0, 0, 0x0001, 0x03) // row 0 of tile 0: pixel 0 = value 1

	got := v.sampleBGMapPixel(0, 0, 0)
	if got != 1 {
		t.Fatalf("sampleBGMapPixel = %d, want 1", got)
	}
}

func TestPutObjectSkipsTransparentPixels(t *testing.T) {
	v := newTestVIP()
	dst := surface.New()
	clip := surface.Full()

	v.Chars.WriteWord(0, 0, 0x0001, 0x03) // pixel 0 of row 0 = value 1, rest 0

	v.putObject(dst, clip, 10, 10, 0, false, false, 0xE4)

	if got := dst.At(10, 10); got != 1 {
		t.Fatalf("object pixel (0,0) = %d, want 1", got)
	}
	// pixel (1,0) of the tile is value 0 and must be left untouched
	// (background fill, not overwritten by the object).
	dst.Fill(2, clip)
	v.putObject(dst, clip, 10, 10, 0, false, false, 0xE4)
	if got := dst.At(11, 10); got != 2 {
		t.Fatalf("transparent object pixel overwrote background: got %d, want 2", got)
	}
}

func TestDrawBGMapCullsOutsideClip(t *testing.T) {
	v := newTestVIP()
	dst := surface.New()
	dst.Fill(0, surface.Full())

	v.GPLT[0] = 0xE4
	v.Chars.WriteWord(0, 0, 0xFFFF, 0x03) // every pixel = 3

	p := bgmapParams{
		segment: 0,
		w:       7,
		h:       7,
		xMask:   511,
		yMask:   511,
	}
	// draw fully off-screen to the left; nothing should land in the surface.
	p.gx = -100
	v.drawBGMap(dst, surface.Full(), false, p)

	if got := dst.At(0, 0); got != 0 {
		t.Fatalf("off-clip write leaked into surface: got %d", got)
	}
}
