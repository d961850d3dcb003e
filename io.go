package mcli

import "fmt"

// Default terminal byte sequences. A transport with a different
// terminal model overrides them through the Terminal interface.
const (
	// DefaultPrompt is the bold prompt sent before each input line.
	DefaultPrompt = "\x1b[1mmcli> \x1b[0m"

	backspaceSeq   = "\b \b"
	clearScreenSeq = "\x1b[2J\r\n"
	crlf           = "\r\n"
)

// printfBufSize bounds Printf output. Longer output is truncated.
const printfBufSize = 64

// Port is the byte-level contract the engine needs from a transport.
// None of the three methods may block: Buffered reports how many bytes
// can be read right now, ReadByte returns an error when nothing is
// buffered, and a transport that has lost its peer simply keeps
// reporting nothing to read. TinyGo's machine.UART and machine.Serial
// satisfy Port as-is.
type Port interface {
	Buffered() int
	ReadByte() (byte, error)
	WriteByte(b byte) error
}

// BulkReader is an optional Port upgrade for transports that can drain
// several buffered bytes in one call (sockets, DMA rings). ReadBytes
// must not block and returns 0 when nothing is available.
type BulkReader interface {
	ReadBytes(p []byte) int
}

// BulkWriter is an optional Port upgrade for packet-oriented
// transports where per-byte writes are wasteful.
type BulkWriter interface {
	WriteBytes(p []byte)
}

// Flusher is an optional Port upgrade for transports that buffer
// output. The engine never calls Flush; hosts do, at their own cadence.
type Flusher interface {
	Flush()
}

// Terminal is an optional Port upgrade that replaces the canned ANSI
// control sequences, for transports that are not plain byte-stream
// terminals (pixel displays, protocol framers).
type Terminal interface {
	SendPrompt(prompt string)
	SendBackspace()
	ClearScreen()
}

// ReadBytes drains up to len(buf) currently available bytes from p and
// reports how many it read, 0 when none are pending. It never blocks.
func ReadBytes(p Port, buf []byte) int {
	if br, ok := p.(BulkReader); ok {
		return br.ReadBytes(buf)
	}
	n := 0
	for n < len(buf) && p.Buffered() > 0 {
		b, err := p.ReadByte()
		if err != nil {
			break
		}
		buf[n] = b
		n++
	}
	return n
}

// WriteBytes writes data through p, one bulk call when available.
func WriteBytes(p Port, data []byte) {
	if bw, ok := p.(BulkWriter); ok {
		bw.WriteBytes(data)
		return
	}
	for i := 0; i < len(data); i++ {
		_ = p.WriteByte(data[i])
	}
}

// Print writes s through p.
func Print(p Port, s string) {
	if len(s) == 0 {
		return
	}
	if bw, ok := p.(BulkWriter); ok {
		bw.WriteBytes([]byte(s))
		return
	}
	for i := 0; i < len(s); i++ {
		_ = p.WriteByte(s[i])
	}
}

// Println writes s followed by CRLF.
func Println(p Port, s string) {
	Print(p, s)
	Print(p, crlf)
}

// Printf formats into a fixed 64-byte buffer and writes the result.
// Output that does not fit is truncated, never overflowed.
func Printf(p Port, format string, args ...any) {
	var buf [printfBufSize]byte
	out := fmt.Appendf(buf[:0], format, args...)
	if len(out) > printfBufSize-1 {
		out = out[:printfBufSize-1]
	}
	WriteBytes(p, out)
}

// SendPrompt writes the prompt, honoring a Terminal override.
func SendPrompt(p Port, prompt string) {
	if t, ok := p.(Terminal); ok {
		t.SendPrompt(prompt)
		return
	}
	Print(p, prompt)
}

// SendBackspace erases the character left of the cursor: move left,
// overwrite with a space, move left again.
func SendBackspace(p Port) {
	if t, ok := p.(Terminal); ok {
		t.SendBackspace()
		return
	}
	Print(p, backspaceSeq)
}

// ClearScreen clears the peer's terminal.
func ClearScreen(p Port) {
	if t, ok := p.(Terminal); ok {
		t.ClearScreen()
		return
	}
	Print(p, clearScreenSeq)
}

// Flush pushes pending output on transports that buffer writes.
func Flush(p Port) {
	if f, ok := p.(Flusher); ok {
		f.Flush()
	}
}
