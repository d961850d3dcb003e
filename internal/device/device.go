// Package device is the demo appliance behind the stock hosts: a fake
// LED, uptime tracking, and the command table exposing them. Real
// firmware swaps in its own context type and table.
package device

import (
	"strings"
	"time"

	"mcli"
	"mcli/internal/buildinfo"
)

// Device is the handler context for the stock command table.
type Device struct {
	// Out is where command output goes, normally the same port the
	// engine polls.
	Out mcli.Port

	// LED is the demo LED state.
	LED bool

	booted time.Time
}

// New returns a Device printing through out, with uptime counted from
// now.
func New(out mcli.Port) *Device {
	return &Device{Out: out, booted: time.Now()}
}

// Commands returns the stock command table.
func Commands() []mcli.Command[Device] {
	return []mcli.Command[Device]{
		{Name: "led", Run: cmdLED, Help: "Control the LED: led on|off|toggle|status"},
		{Name: "echo", Run: cmdEcho, Help: "Print the arguments back"},
		{Name: "uptime", Run: cmdUptime, Help: "Show time since boot"},
		{Name: "ver", Run: cmdVer, Help: "Show the build version"},
		{Name: "clear", Run: cmdClear, Help: "Clear the screen"},
	}
}

func cmdLED(args mcli.Args, d *Device) {
	if args.Count() < 2 {
		mcli.Println(d.Out, "Usage: led on|off|toggle|status")
		return
	}
	switch args.Arg(1) {
	case "on":
		d.LED = true
	case "off":
		d.LED = false
	case "toggle":
		d.LED = !d.LED
	case "status":
		// report only
	default:
		mcli.Printf(d.Out, "Unknown LED state '%s'\r\n", args.Arg(1))
		return
	}
	if d.LED {
		mcli.Println(d.Out, "LED is on")
	} else {
		mcli.Println(d.Out, "LED is off")
	}
}

func cmdEcho(args mcli.Args, d *Device) {
	var sb strings.Builder
	for i := 1; i < args.Count(); i++ {
		if i > 1 {
			sb.WriteByte(' ')
		}
		sb.WriteString(args.Arg(i))
	}
	mcli.Println(d.Out, sb.String())
}

func cmdUptime(args mcli.Args, d *Device) {
	up := time.Since(d.booted).Round(time.Second)
	mcli.Printf(d.Out, "Up %s\r\n", up)
}

func cmdVer(args mcli.Args, d *Device) {
	mcli.Printf(d.Out, "mcli %s\r\n", buildinfo.Short())
}

func cmdClear(args mcli.Args, d *Device) {
	mcli.ClearScreen(d.Out)
}
