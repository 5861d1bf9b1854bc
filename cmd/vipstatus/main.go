// Command vipstatus runs a Chipset for a fixed number of frames with no
// display and prints a lipgloss-styled dump of selected VIP registers and
// the asserted interrupt lines, for quick headless inspection. It loads no
// bgmap or register image: the Chipset runs from its power-on state.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/redherring-emu/vip/chipset"
)

var (
	label = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4))
	value = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(7))
	flag_ = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2))
	warn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1))
)

type fixedPad struct{ state uint16 }

func (p fixedPad) ReadKeypad() uint16 { return p.state }

func main() {
	frames := flag.Int("frames", 1, "number of frames to run before dumping status")
	flag.Parse()

	cs := chipset.New(fixedPad{})

	for f := 0; f < *frames; f++ {
		for row := 0; row < 264; row++ {
			cs.ScanlineTick()
		}
	}

	dump(cs)
}

func dump(cs *chipset.Chipset) {
	row := func(name string, format string, args ...any) {
		fmt.Fprintf(os.Stdout, "%s %s\n", label.Render(name+":"), value.Render(fmt.Sprintf(format, args...)))
	}

	fmt.Println(flag_.Render("== vipstatus =="))
	row("FRAME_START count", "%d", cs.VIP.FrameCount())
	row("INTPND", "%#04x", cs.VIP.Read(0x00))
	row("INTENB", "%#04x", cs.VIP.Read(0x02))
	row("DPSTTS", "%#04x", cs.VIP.Read(0x20))
	row("XPSTTS", "%#04x", cs.VIP.Read(0x40))
	row("BKCOL", "%#04x", cs.VIP.Read(0x70))

	for line := 0; line < 5; line++ {
		if cs.InterruptAsserted(line) {
			fmt.Println(warn.Render(fmt.Sprintf("interrupt line %d asserted", line)))
		}
	}
}
