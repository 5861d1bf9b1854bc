package vip

import "github.com/redherring-emu/vip/internal/vlog"

// BGMapMemory is the flat 64Ki-word (128KiB) store backing background map
// segments, the world-attribute table, the column-parallax tables, and the
// object-attribute table. All of these are just different word ranges of
// the same underlying array; the overlay offsets below are fixed by the
// hardware layout, not configurable.
const (
	BGMapWords = 0x10000

	// word offsets of the overlaid tables, in the last 10KiB of the map.
	worldAttrBase  = 0x1D800 / 2
	worldAttrWords = 32 * 16

	colParallax0Base = 0x1DC00 / 2
	colParallax1Base = 0x1DE00 / 2
	colParallaxWords = 0x100 / 2

	objAttrBase  = 0x1E000 / 2
	objAttrWords = 1024 * 4
)

// BGMapMemory is the raw background-map / world-attribute / object-attribute
// store. Segment sampling and world/object decoding read this array
// directly rather than duplicating storage.
type BGMapMemory struct {
	words [BGMapWords]uint16
}

// ReadWord masks i to 16 bits (the full word range) and returns the stored
// value.
func (m *BGMapMemory) ReadWord(i int) uint16 {
	return m.words[i&(BGMapWords-1)]
}

// WriteWord writes value into word i honoring a byte mask, matching
// CharacterTable's convention.
func (m *BGMapMemory) WriteWord(i int, value uint16, byteMask uint8) {
	idx := i & (BGMapWords - 1)
	m.words[idx] = mergeByteMask(m.words[idx], value, byteMask)
}

// WorldAttrWord reads word wordIdx (0-15) of world descriptor worldIdx
// (0-31).
func (m *BGMapMemory) WorldAttrWord(worldIdx, wordIdx int) uint16 {
	if worldIdx < 0 || worldIdx >= 32 || wordIdx < 0 || wordIdx >= 16 {
		vlog.Logf("bgmap", "world attr index out of range: world=%d word=%d", worldIdx, wordIdx)
		return 0xFFFF
	}
	return m.ReadWord(worldAttrBase + worldIdx*16 + wordIdx)
}

// ColumnParallax reads entry idx of column-parallax table t (0 or 1).
func (m *BGMapMemory) ColumnParallax(t, idx int) uint16 {
	base := colParallax0Base
	if t != 0 {
		base = colParallax1Base
	}
	return m.ReadWord(base + idx&(colParallaxWords-1))
}

// ObjectAttrWord reads word wordIdx (0-3) of object-attribute entry idx
// (0-1023).
func (m *BGMapMemory) ObjectAttrWord(idx, wordIdx int) uint16 {
	idx &= 0x3FF
	wordIdx &= 3
	return m.ReadWord(objAttrBase + idx*4 + wordIdx)
}
