// Command vipdemo drives a Chipset with an ebiten window, presenting the
// left-eye framebuffer and letting the keypad be exercised from the
// keyboard. It exists to give the VIP core a host to run inside; it does
// not implement the surrounding console's CPU.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	input "github.com/quasilyte/ebitengine-input"
	"golang.org/x/image/font/basicfont"

	"github.com/redherring-emu/vip/chipset"
	"github.com/redherring-emu/vip/surface"
)

var statusColor = color.White

// Keypad button bits, matching the console's standard pad layout.
const (
	padA     = 1 << 0
	padB     = 1 << 2
	padRight = 1 << 6
	padLeft  = 1 << 7
	padDown  = 1 << 8
	padUp    = 1 << 9
	padStart = 1 << 12
)

const (
	actionLeft = input.Action(iota)
	actionRight
	actionUp
	actionDown
	actionA
	actionB
	actionStart
)

// keymapSource adapts an ebitengine-input handler into iodev.KeypadSource,
// OR-ing together the buttons currently held.
type keymapSource struct {
	handler *input.Handler
}

func (k *keymapSource) ReadKeypad() uint16 {
	var v uint16
	if k.handler.ActionIsPressed(actionLeft) {
		v |= padLeft
	}
	if k.handler.ActionIsPressed(actionRight) {
		v |= padRight
	}
	if k.handler.ActionIsPressed(actionUp) {
		v |= padUp
	}
	if k.handler.ActionIsPressed(actionDown) {
		v |= padDown
	}
	if k.handler.ActionIsPressed(actionA) {
		v |= padA
	}
	if k.handler.ActionIsPressed(actionB) {
		v |= padB
	}
	if k.handler.ActionIsPressed(actionStart) {
		v |= padStart
	}
	return v
}

type demo struct {
	cs      *chipset.Chipset
	system  input.System
	handler *input.Handler
	screen  *ebiten.Image
	frame   int
}

func newDemo() *demo {
	d := &demo{}
	d.system.Init(input.SystemConfig{DevicesEnabled: input.AnyDevice})
	keymap := input.Keymap{
		actionLeft:  {input.KeyGamepadLeft, input.KeyLeft},
		actionRight: {input.KeyGamepadRight, input.KeyRight},
		actionUp:    {input.KeyGamepadUp, input.KeyUp},
		actionDown:  {input.KeyGamepadDown, input.KeyDown},
		actionA:     {input.KeyGamepadA, input.KeySpace},
		actionB:     {input.KeyGamepadB, input.KeyX},
		actionStart: {input.KeyGamepadStart, input.KeyEnter},
	}
	d.handler = d.system.NewHandler(0, keymap)
	d.cs = chipset.New(&keymapSource{handler: d.handler})
	d.screen = ebiten.NewImage(surface.Width, surface.Height)
	return d
}

func (d *demo) Update() error {
	d.system.Update()

	// a real console runs the VIP off the CPU's scanline-synchronous
	// clock; here we simply drive it directly at one frame's worth of
	// scanlines per Update tick.
	for i := 0; i < 264; i++ {
		d.cs.ScanlineTick()
	}
	d.cs.PadTick()
	d.frame++
	return nil
}

func (d *demo) Draw(screen *ebiten.Image) {
	left := d.cs.FB.CurrentLeft(d.cs.VIP)
	img := left.Image()

	pix := make([]byte, surface.Width*surface.Height*4)
	for i, g := range img.Pix {
		pix[i*4+0] = g
		pix[i*4+1] = g
		pix[i*4+2] = g
		pix[i*4+3] = 255
	}
	d.screen.WritePixels(pix)

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(2, 2)
	screen.DrawImage(d.screen, &op)

	text.Draw(screen, fmt.Sprintf("frame %d", d.cs.VIP.FrameCount()), basicfont.Face7x13, 4, 14, statusColor)
}

func (d *demo) Layout(outsideWidth, outsideHeight int) (int, int) {
	return surface.Width * 2, surface.Height * 2
}

func main() {
	ebiten.SetWindowTitle(fmt.Sprintf("vipdemo (%dx%d)", surface.Width, surface.Height))
	ebiten.SetWindowSize(surface.Width*2, surface.Height*2)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(newDemo()); err != nil {
		log.Fatal(err)
	}
}
