package vip

import "github.com/redherring-emu/vip/surface"

// Scanline milestones the scheduler reacts to. VIP row timing is
// driven externally, one call per host scanline, rather than by an
// internal clock: the caller (chipset.Chipset) is expected to invoke
// ScanlineTick 264 times per frame.
const (
	totalRows   = 264
	displayRows = 224 // XP_END: image processing runs, drawfb selected
	lfbEndRow   = 232 // LFB_END: drawfb returns to idle
	rfbEndRow   = 240 // RFB_END
)

// Framebuffers holds the double-buffered output surfaces of both eyes. The
// renderer draws into them and the caller (cmd/vipdemo) reads the displayed
// one out through CurrentLeft/CurrentRight for presentation; the VIP
// itself never reads them back.
type Framebuffers struct {
	Left  [2]*surface.Bitmap
	Right [2]*surface.Bitmap
}

// NewFramebuffers allocates both double-buffered pairs.
func NewFramebuffers() *Framebuffers {
	return &Framebuffers{
		Left:  [2]*surface.Bitmap{surface.New(), surface.New()},
		Right: [2]*surface.Bitmap{surface.New(), surface.New()},
	}
}

// ScanlineTick advances the VIP by one scanline. row is the current
// scanline counter, 0-263, wrapping to 0 at 264 (a display frame is 224
// active rows followed by a 40-row blanking tail that also covers the
// image-processing window). fb is the pair of framebuffers this VIP draws
// into and scans out of; the caller owns their allocation and lifetime.
func (v *VIP) ScanlineTick(row int, fb *Framebuffers) {
	scanline := row % totalRows
	v.rowNum = (scanline / 8) & 0x1F

	switch scanline {
	case 0:
		if v.DPCTRL&0x02 != 0 {
			v.RaiseInterrupt(FrameStart)
			v.displayFB ^= 1
			v.totalFrames++
		}
		v.frameCount++
		if v.frameCount > int(v.FRMCYC) {
			v.RaiseInterrupt(GameStart)
			v.frameCount = 0
		}
	case displayRows:
		v.runImageProcessing(fb)
	case lfbEndRow:
		v.drawFB = 0
		v.RaiseInterrupt(LFBEnd)
	case rfbEndRow:
		v.RaiseInterrupt(RFBEnd)
	}

	if v.rowNum == int((v.XPCTRL>>8)&0x1F) {
		v.RaiseInterrupt(SBHit)
	}
}

// runImageProcessing performs the XP_END-triggered render pass: both eyes
// are drawn into the buffer not currently displayed, drawfb is set to
// identify which buffer that is, and XP_END is raised once complete.
// Right-eye output always exists but the scheduler never drives an
// independent right-eye display timeline: both eyes' buffers swap together
// with displayFB.
func (v *VIP) runImageProcessing(fb *Framebuffers) {
	drawBuf := v.displayFB ^ 1
	v.drawFB = drawBuf + 1

	v.RenderEye(false, fb.Left[drawBuf])
	v.RenderEye(true, fb.Right[drawBuf])

	v.RaiseInterrupt(XPEnd)
}

// CurrentLeft and CurrentRight return the framebuffer each eye is
// currently scanning out, for the host presentation layer to sample.
func (fb *Framebuffers) CurrentLeft(v *VIP) *surface.Bitmap  { return fb.Left[v.displayFB] }
func (fb *Framebuffers) CurrentRight(v *VIP) *surface.Bitmap { return fb.Right[v.displayFB] }

// FrameCount reports the number of FRAME_START interrupts raised since
// power-on, for diagnostics (cmd/vipstatus).
func (v *VIP) FrameCount() int { return v.totalFrames }
