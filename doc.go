// Package mcli is a small, transport-agnostic command-line engine for
// embedded and host targets.
//
// The engine accumulates bytes from a Port into a line with echo and
// backspace handling, tokenizes the line into a fixed-capacity argument
// vector, and dispatches the first token against a static command
// table. It is intended as a firmware console core: line editing is
// minimal, tokens are fixed-width, and there is no quoting, history,
// or completion.
//
// The engine never blocks and spawns nothing. Hosts poll it from their
// own loop, timer, or scheduler tick:
//
//	eng := mcli.New(port, &dev, commands)
//	for {
//		eng.ProcessInput()
//		time.Sleep(5 * time.Millisecond)
//	}
//
// A Port is anything with Buffered/ReadByte/WriteByte, which TinyGo's
// machine.Serial already satisfies. The transport packages adapt TCP
// connections, byte streams, stdio, and pixel displays to the same
// shape, so the command table is written once and reused unchanged
// across hardware and host builds.
package mcli
