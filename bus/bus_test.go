package bus

import "testing"

func newTestBus() (*HostBus, *fakeIO) {
	chars := make([][4096]uint16, 4)
	charAccess := &CharacterTableAccess{
		ReadWordFn: func(bank int, offset uint16) uint16 { return chars[bank][offset&4095] },
		WriteWordFn: func(bank int, offset uint16, value uint16, mask uint8) {
			old := chars[bank][offset&4095]
			chars[bank][offset&4095] = mergeMask(old, value, mask)
		},
	}

	bg := make([]uint16, 0x10000)
	bgAccess := BGMapAccess{
		ReadWordFn: func(i int) uint16 { return bg[i&0xFFFF] },
		WriteWordFn: func(i int, value uint16, mask uint8) {
			bg[i&0xFFFF] = mergeMask(bg[i&0xFFFF], value, mask)
		},
	}

	regs := make(map[uint16]uint16)
	regAccess := RegisterAccess{
		ReadFn:  func(addr uint16) uint16 { return regs[addr] },
		WriteFn: func(addr uint16, data uint16) { regs[addr] = data },
	}

	io := &fakeIO{}
	return New(charAccess, bgAccess, regAccess, io), io
}

func mergeMask(old, next uint16, mask uint8) uint16 {
	result := old
	if mask&0x01 != 0 {
		result = result&0xFF00 | next&0x00FF
	}
	if mask&0x02 != 0 {
		result = result&0x00FF | next&0xFF00
	}
	return result
}

type fakeIO struct {
	last map[uint16]uint8
}

func (f *fakeIO) Read(addr uint16) uint8 {
	if f.last == nil {
		return 0
	}
	return f.last[addr]
}

func (f *fakeIO) Write(addr uint16, data uint8) {
	if f.last == nil {
		f.last = make(map[uint16]uint8)
	}
	f.last[addr] = data
}

func TestFramebufferWindowsAreIndependent(t *testing.T) {
	hb, _ := newTestBus()

	hb.Write8(0x0000, 0xAA) // LFB0
	hb.Write8(0x8000, 0xBB) // LFB1
	hb.Write8(0x1_0000, 0xCC) // RFB0
	hb.Write8(0x1_8000, 0xDD) // RFB1

	if got := hb.Read8(0x0000); got != 0xAA {
		t.Fatalf("LFB0 readback = %#02x, want 0xAA", got)
	}
	if got := hb.Read8(0x8000); got != 0xBB {
		t.Fatalf("LFB1 readback = %#02x, want 0xBB", got)
	}
	if got := hb.Read8(0x1_0000); got != 0xCC {
		t.Fatalf("RFB0 readback = %#02x, want 0xCC", got)
	}
	if got := hb.Read8(0x1_8000); got != 0xDD {
		t.Fatalf("RFB1 readback = %#02x, want 0xDD", got)
	}
}

func TestCharBankMirrorReflectsPrimaryWindow(t *testing.T) {
	hb, _ := newTestBus()

	hb.Write8(0x6000, 0x12) // CharBank0 low byte, offset 0
	hb.Write8(0x6001, 0x34) // CharBank0 high byte, offset 0

	if got := hb.Read8(0x7_8000); got != 0x12 {
		t.Fatalf("mirror low byte = %#02x, want 0x12", got)
	}
	if got := hb.Read8(0x7_8001); got != 0x34 {
		t.Fatalf("mirror high byte = %#02x, want 0x34", got)
	}
}

func TestVIPRegisterWindowRoundTrips(t *testing.T) {
	hb, _ := newTestBus()

	hb.Write8(0x5_F800, 0x22) // INTPND low byte
	hb.Write8(0x5_F801, 0x33) // INTPND high byte

	if got := hb.Read8(0x5_F800); got != 0x22 {
		t.Fatalf("register low byte = %#02x, want 0x22", got)
	}
	if got := hb.Read8(0x5_F801); got != 0x33 {
		t.Fatalf("register high byte = %#02x, want 0x33", got)
	}
}

func TestIOWindowMirrorsAcrossPage(t *testing.T) {
	hb, io := newTestBus()

	hb.Write8(0x200_0010, 0x99)
	if io.last[0x10] != 0x99 {
		t.Fatalf("I/O write did not reach offset 0x10")
	}
	if got := hb.Read8(0x201_0010); got != 0x99 {
		t.Fatalf("I/O window should mirror across the page, got %#02x", got)
	}
}

func TestRAMWindowMirrors(t *testing.T) {
	hb, _ := newTestBus()

	hb.Write8(0x500_0000, 0x55)
	if got := hb.Read8(0x501_0000); got != 0x55 {
		t.Fatalf("RAM should mirror every 64KiB, got %#02x", got)
	}
}

func TestCartridgeWindowsAreInertStubs(t *testing.T) {
	hb, _ := newTestBus()

	hb.Write8(0x0400_0000, 0xFF)
	if got := hb.Read8(0x0400_0000); got != 0 {
		t.Fatalf("cartridge stub should read back 0, got %#02x", got)
	}
}

func TestUnmappedAddressReturnsAllOnes(t *testing.T) {
	hb, _ := newTestBus()
	if got := hb.Read8(0x0300_0000); got != 0xFF {
		t.Fatalf("unmapped read = %#02x, want 0xFF", got)
	}
}
