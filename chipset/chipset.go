// Package chipset wires the VIP, the hardware timer, the I/O register
// block, and the host bus into the single aggregate a host emulator
// constructs and drives, mirroring the way hardware.Console glues its
// console's coprocessors together behind one type.
package chipset

import (
	"github.com/redherring-emu/vip/bus"
	"github.com/redherring-emu/vip/internal/vlog"
	"github.com/redherring-emu/vip/iodev"
	"github.com/redherring-emu/vip/surface"
	"github.com/redherring-emu/vip/timer"
	"github.com/redherring-emu/vip/vip"
)

// interruptLines is the Chipset's own implementation of the vip.HostCPU
// and timer.HostCPU facades: a real host CPU would consume these
// lines directly, but nothing in this module implements CPU instruction
// execution, so Chipset just records asserted state for the caller to
// poll via InterruptAsserted.
type interruptLines struct {
	asserted [5]bool
}

func (l *interruptLines) SetInterruptLine(line int, asserted bool) {
	if line < 0 || line >= len(l.asserted) {
		vlog.Logf("chipset", "interrupt line %d out of range", line)
		return
	}
	l.asserted[line] = asserted
}

// Chipset owns the VIP, hardware timer, I/O registers, host bus, and
// framebuffer pair, and exposes the tick entry points a host emulator's
// scheduling loop calls.
type Chipset struct {
	cpu interruptLines

	VIP   *vip.VIP
	Timer *timer.Timer
	IO    *iodev.IoRegisters
	Bus   *bus.HostBus
	FB    *vip.Framebuffers

	scanline    int
	tickAccum   int
	timerPeriod int
}

// New constructs a fully wired Chipset. pad supplies keypad state to the
// I/O block on a KCR sample strobe.
func New(pad iodev.KeypadSource) *Chipset {
	cs := &Chipset{FB: vip.NewFramebuffers()}
	cs.VIP = vip.New(&cs.cpu)
	cs.Timer = timer.New(&cs.cpu)
	cs.IO = iodev.New(pad, cs.Timer)

	chars := &bus.CharacterTableAccess{
		ReadWordFn:  cs.VIP.Chars.ReadWord,
		WriteWordFn: cs.VIP.Chars.WriteWord,
	}
	bg := bus.BGMapAccess{
		ReadWordFn:  cs.VIP.BGMap.ReadWord,
		WriteWordFn: cs.VIP.BGMap.WriteWord,
	}
	regs := bus.RegisterAccess{
		ReadFn:  cs.VIP.Read,
		WriteFn: cs.VIP.Write,
	}
	cs.Bus = bus.New(chars, bg, regs, cs.IO)

	cs.timerPeriod = hostTicksPerTimerTick(cs.Timer.Rate())
	return cs
}

// hostTicksPerTimerTick converts a timer rate (10kHz or 50kHz) into the
// number of ScanlineTick calls between hardware-timer ticks, assuming the
// host drives ScanlineTick at the display's ~50.038Hz * 264-row rate
// (scanline advance and timer ticking share this same clock domain).
func hostTicksPerTimerTick(rateHz int) int {
	const hostTickHz = 50038 * 264 / 1000
	if rateHz <= 0 {
		return 1
	}
	period := hostTickHz / rateHz
	if period < 1 {
		period = 1
	}
	return period
}

// ScanlineTick advances the VIP by one scanline and, at the configured
// divisor, ticks the hardware timer once, coalesced here since both
// run off the same host clock.
func (cs *Chipset) ScanlineTick() {
	cs.VIP.ScanlineTick(cs.scanline, cs.FB)
	cs.scanline++

	cs.timerPeriod = hostTicksPerTimerTick(cs.Timer.Rate())
	cs.tickAccum++
	if cs.tickAccum >= cs.timerPeriod {
		cs.tickAccum = 0
		cs.Timer.Tick()
	}
}

// PadTick samples the keypad the way a KCR-driven strobe would, at the
// ~50.038Hz cadence a real host samples the pad at. Games normally trigger
// this themselves via a KCR write; PadTick exists for hosts that want to
// simulate periodic polling directly.
func (cs *Chipset) PadTick() {
	cs.IO.Write(iodev.OffsetKCR, 0x04)
}

// RenderEye exposes the VIP's render entry point directly.
func (cs *Chipset) RenderEye(right bool, dst *surface.Bitmap) {
	cs.VIP.RenderEye(right, dst)
}

// InterruptAsserted reports whether CPU interrupt line n is currently
// asserted, for a host CPU emulator (absent from this module) to poll.
func (cs *Chipset) InterruptAsserted(line int) bool {
	if line < 0 || line >= len(cs.cpu.asserted) {
		return false
	}
	return cs.cpu.asserted[line]
}

// Read8 and Write8 proxy directly to the host bus.
func (cs *Chipset) Read8(address uint32) uint8         { return cs.Bus.Read8(address) }
func (cs *Chipset) Write8(address uint32, data uint8)  { cs.Bus.Write8(address, data) }
