package device

import (
	"io"
	"strings"
	"testing"

	"mcli"
)

// fakePort collects output; it feeds nothing back.
type fakePort struct {
	out []byte
}

func (p *fakePort) Buffered() int           { return 0 }
func (p *fakePort) ReadByte() (byte, error) { return 0, io.EOF }
func (p *fakePort) WriteByte(b byte) error  { p.out = append(p.out, b); return nil }
func (p *fakePort) String() string          { return string(p.out) }

func run(t *testing.T, d *Device, line string) string {
	t.Helper()
	p := d.Out.(*fakePort)
	p.out = nil
	eng := mcli.New(d.Out, d, Commands())
	if !eng.ExecuteCommand(line) {
		t.Fatalf("ExecuteCommand(%q) found no command", line)
	}
	return p.String()
}

func TestLED(t *testing.T) {
	d := New(&fakePort{})

	if got := run(t, d, "led on"); !strings.Contains(got, "LED is on") {
		t.Fatalf("led on output = %q", got)
	}
	if !d.LED {
		t.Fatal("LED not on after 'led on'")
	}

	if got := run(t, d, "led toggle"); !strings.Contains(got, "LED is off") {
		t.Fatalf("led toggle output = %q", got)
	}
	if d.LED {
		t.Fatal("LED still on after 'led toggle'")
	}

	if got := run(t, d, "led status"); !strings.Contains(got, "LED is off") {
		t.Fatalf("led status output = %q", got)
	}
	if d.LED {
		t.Fatal("'led status' changed the LED")
	}

	if got := run(t, d, "led warp"); !strings.Contains(got, "Unknown LED state 'warp'") {
		t.Fatalf("led warp output = %q", got)
	}
}

func TestLEDUsage(t *testing.T) {
	d := New(&fakePort{})
	if got := run(t, d, "led"); !strings.Contains(got, "Usage: led on|off|toggle|status") {
		t.Fatalf("bare led output = %q", got)
	}
}

func TestEcho(t *testing.T) {
	d := New(&fakePort{})
	if got := run(t, d, "echo hello world"); got != "hello world\r\n" {
		t.Fatalf("echo output = %q; want %q", got, "hello world\r\n")
	}
	if got := run(t, d, "echo"); got != "\r\n" {
		t.Fatalf("bare echo output = %q; want %q", got, "\r\n")
	}
}

func TestUptime(t *testing.T) {
	d := New(&fakePort{})
	if got := run(t, d, "uptime"); !strings.HasPrefix(got, "Up ") {
		t.Fatalf("uptime output = %q", got)
	}
}

func TestVer(t *testing.T) {
	d := New(&fakePort{})
	if got := run(t, d, "ver"); !strings.HasPrefix(got, "mcli ") {
		t.Fatalf("ver output = %q", got)
	}
}

func TestClear(t *testing.T) {
	d := New(&fakePort{})
	if got := run(t, d, "clear"); got != "\x1b[2J\r\n" {
		t.Fatalf("clear output = %q; want %q", got, "\x1b[2J\r\n")
	}
}
