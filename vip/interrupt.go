package vip

// Interrupt kinds, as bit positions in INTPND/INTENB.
const (
	TimeErr    uint16 = 0x8000
	XPEnd      uint16 = 0x4000
	SBHit      uint16 = 0x2000
	FrameStart uint16 = 0x0010
	GameStart  uint16 = 0x0008
	RFBEnd     uint16 = 0x0004
	LFBEnd     uint16 = 0x0002
	ScanErr    uint16 = 0x0001

	vipInterruptLine = 4
)

// RaiseInterrupt sets the given pending bits and reevaluates the CPU
// interrupt line. Called both by register writes that synthesize an
// interrupt (there are none today) and by the scanline scheduler.
func (v *VIP) RaiseInterrupt(kind uint16) {
	v.INTPND |= kind
	v.reevaluateIRQ()
}

// reevaluateIRQ asserts the VIP's CPU interrupt line iff INTENB & INTPND is
// non-zero (invariant: INTPND with no matching INTENB bit never drives the
// line), and deasserts it otherwise. Every write to INTPND or INTENB must
// call this before returning control to the caller.
func (v *VIP) reevaluateIRQ() {
	if v.cpu == nil {
		return
	}
	v.cpu.SetInterruptLine(vipInterruptLine, v.INTENB&v.INTPND != 0)
}
