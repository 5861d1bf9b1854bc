// Package vip implements the Virtual Image Processor: the display-list
// renderer (CharacterTable, BGMapMemory, Rasterizer, WorldWalker), the
// register file (VipRegisters), the interrupt gate (InterruptController),
// and the periodic scanline scheduler that paces them. Everything in this
// package runs to completion synchronously with respect to the caller —
// there is no emulated-side concurrency.
package vip

import "github.com/redherring-emu/vip/surface"

// HostCPU is the facade the VIP drives interrupts through. Line 4 is the
// VIP's interrupt line; other lines belong to the timer and cartridge bus
// and are of no concern to this package.
type HostCPU interface {
	SetInterruptLine(line int, asserted bool)
}

// VIP is the aggregate holding every piece of VIP state: font/bgmap
// storage, the register file, and the scheduler's scanline/frame/buffer
// counters, all as plain fields on one struct — mirroring the way real VIP
// hardware has no internal module boundaries either.
type VIP struct {
	cpu HostCPU

	Chars CharacterTable
	BGMap BGMapMemory

	// register file
	INTPND, INTENB uint16
	DPCTRL         uint16
	XPCTRL         uint16
	BRTA, BRTB, BRTC, REST uint16
	FRMCYC uint16
	CTA    uint16
	VER    uint16
	SPT    [4]uint16
	GPLT   [4]uint16
	JPLT   [4]uint16
	BKCOL  uint16

	pens surface.Pens

	// scheduler state
	frameCount  int // divisor counter, reset whenever it exceeds FRMCYC
	totalFrames int // monotonic FRAME_START count, for diagnostics only
	rowNum      int
	displayFB   int // 0 or 1: which framebuffer is scanned out
	drawFB      int // 0 (idle), 1 or 2: which is being rendered
}

// New constructs a VIP wired to the given host CPU facade for interrupt
// delivery.
func New(cpu HostCPU) *VIP {
	v := &VIP{cpu: cpu}
	v.recomputeBrightness()
	return v
}
