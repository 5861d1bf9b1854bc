package vip

import (
	"github.com/redherring-emu/vip/internal/vlog"
	"github.com/redherring-emu/vip/surface"
)

// Register byte offsets within the VIP control block (host address
// 0x0005F800-0x0005F87F). Read/Write below take these directly; bus.HostBus
// is responsible for turning a byte address in that window into one of
// these offsets.
const (
	regINTPND = 0x00
	regINTENB = 0x02
	regINTCLR = 0x04
	regDPSTTS = 0x20
	regDPCTRL = 0x22
	regBRTA   = 0x24
	regBRTB   = 0x26
	regBRTC   = 0x28
	regREST   = 0x2A
	regFRMCYC = 0x2E
	regCTA    = 0x30
	regXPSTTS = 0x40
	regXPCTRL = 0x42
	regVER    = 0x44
	regSPT0   = 0x48
	regSPT1   = 0x4A
	regSPT2   = 0x4C
	regSPT3   = 0x4E
	regGPLT0  = 0x60
	regGPLT1  = 0x62
	regGPLT2  = 0x64
	regGPLT3  = 0x66
	regJPLT0  = 0x68
	regJPLT1  = 0x6A
	regJPLT2  = 0x6C
	regJPLT3  = 0x6E
	regBKCOL  = 0x70
)

// vipVersion is a fixed, read-only identification value; real hardware
// software never relies on a particular value here but a register that
// silently discards writes needs something to read back.
const vipVersion = 0x0002

// Read returns the value of the VIP register at byte offset addr,
// synthesizing the computed status registers and returning 0xFFFF with a
// diagnostic for anything unmapped; unknown register access is never
// fatal.
func (v *VIP) Read(addr uint16) uint16 {
	switch addr {
	case regINTPND:
		return v.INTPND
	case regINTENB:
		return v.INTENB
	case regDPSTTS:
		return v.readDPSTTS()
	case regDPCTRL:
		return v.DPCTRL
	case regBRTA:
		return v.BRTA
	case regBRTB:
		return v.BRTB
	case regBRTC:
		return v.BRTC
	case regREST:
		return v.REST
	case regFRMCYC:
		return v.FRMCYC
	case regCTA:
		return v.CTA
	case regXPSTTS:
		return v.readXPSTTS()
	case regXPCTRL:
		return v.XPCTRL
	case regVER:
		return vipVersion
	case regSPT0:
		return v.SPT[0]
	case regSPT1:
		return v.SPT[1]
	case regSPT2:
		return v.SPT[2]
	case regSPT3:
		return v.SPT[3]
	case regGPLT0:
		return v.GPLT[0]
	case regGPLT1:
		return v.GPLT[1]
	case regGPLT2:
		return v.GPLT[2]
	case regGPLT3:
		return v.GPLT[3]
	case regJPLT0:
		return v.JPLT[0]
	case regJPLT1:
		return v.JPLT[1]
	case regJPLT2:
		return v.JPLT[2]
	case regJPLT3:
		return v.JPLT[3]
	case regBKCOL:
		return v.BKCOL
	case regINTCLR:
		vlog.Log("vip", "read of write-only register INTCLR")
		return 0xFFFF
	default:
		vlog.Logf("vip", "read of unknown register %#04x", addr)
		return 0xFFFF
	}
}

// readDPSTTS synthesizes the display-status register from DPCTRL and the
// scheduler's row/displayfb state.
func (v *VIP) readDPSTTS() uint16 {
	result := v.DPCTRL & 0x0702
	if v.DPCTRL&0x02 != 0 && v.rowNum < 28 {
		if v.displayFB == 0 {
			result |= 0x0C
		} else {
			result |= 0x30
		}
	}
	result |= 0x40
	return result
}

// readXPSTTS synthesizes the pixel-processor status register from drawFB
// and rowNum. XPSTTS itself has no independently-writable bits
// tracked here beyond the 0x00F3 mask, which is currently always zero.
func (v *VIP) readXPSTTS() uint16 {
	result := uint16(0) & 0x00F3
	result |= uint16(v.drawFB) << 2
	if v.rowNum < 28 {
		result |= 0x8000 | uint16(v.rowNum)<<8
	}
	return result
}

// Write applies a register write's strobe side effects and
// reevaluates the interrupt line where the write can affect it. Writing an
// unknown or protected (read-only) register is logged and ignored.
func (v *VIP) Write(addr uint16, data uint16) {
	switch addr {
	case regINTPND:
		vlog.Log("vip", "write to read-only register INTPND ignored")
	case regINTENB:
		v.INTENB = data
		v.reevaluateIRQ()
	case regINTCLR:
		v.INTPND &^= data
		v.reevaluateIRQ()
	case regDPSTTS:
		vlog.Log("vip", "write to read-only register DPSTTS ignored")
	case regDPCTRL:
		v.DPCTRL = data & 0x0702
		if data&0x01 != 0 {
			v.INTPND &= 0xE000 // retain SB_HIT, XP_END, TIME_ERR
			v.reevaluateIRQ()
		}
	case regBRTA:
		v.BRTA = data
		v.recomputeBrightness()
	case regBRTB:
		v.BRTB = data
		v.recomputeBrightness()
	case regBRTC:
		v.BRTC = data
		v.recomputeBrightness()
	case regREST:
		// accepted but not applied to the brightness computation.
		v.REST = data
		v.recomputeBrightness()
	case regFRMCYC:
		v.FRMCYC = data
	case regCTA:
		v.CTA = data
	case regXPSTTS:
		vlog.Log("vip", "write to read-only register XPSTTS ignored")
	case regXPCTRL:
		v.XPCTRL = data & 0x1F02
		if data&0x01 != 0 {
			v.INTPND &= 0x1FFF // retain the low 13 bits, clear SB_HIT/XP_END/TIME_ERR
			v.reevaluateIRQ()
		}
	case regVER:
		vlog.Log("vip", "write to read-only register VER ignored")
	case regSPT0:
		v.SPT[0] = data & 0x3FF
	case regSPT1:
		v.SPT[1] = data & 0x3FF
	case regSPT2:
		v.SPT[2] = data & 0x3FF
	case regSPT3:
		v.SPT[3] = data & 0x3FF
	case regGPLT0:
		v.GPLT[0] = data
	case regGPLT1:
		v.GPLT[1] = data
	case regGPLT2:
		v.GPLT[2] = data
	case regGPLT3:
		v.GPLT[3] = data
	case regJPLT0:
		v.JPLT[0] = data & 0xFC
	case regJPLT1:
		v.JPLT[1] = data & 0xFC
	case regJPLT2:
		v.JPLT[2] = data & 0xFC
	case regJPLT3:
		v.JPLT[3] = data & 0xFC
	case regBKCOL:
		v.BKCOL = data & 3
	default:
		vlog.Logf("vip", "write to unknown register %#04x (data=%#04x)", addr, data)
	}
}

// recomputeBrightness derives the three visible grayscale pens from
// BRTA/BRTB/BRTC as three plateaus; pen0 is always black. REST is stored
// but intentionally not consulted here.
func (v *VIP) recomputeBrightness() {
	clamp := func(x int) uint8 {
		if x < 0 {
			return 0
		}
		if x > 255 {
			return 255
		}
		return uint8(x)
	}
	a, b, c := int(v.BRTA), int(v.BRTB), int(v.BRTC)
	pen1 := clamp(0xFF * a / 0x80)
	pen2 := clamp(0xFF * (a + b) / 0x80)
	pen3 := clamp(0xFF * (a + b + c) / 0x80)
	v.pens = surface.Pens{0, pen1, pen2, pen3}
}
