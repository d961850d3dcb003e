package mcli

import "strings"

// Capacity limits for one command line. They are deliberately small:
// the engine targets microcontrollers where every session buffer is
// statically sized.
const (
	// MaxArgs is the number of argument slots in an Args. At most
	// MaxArgs-1 tokens are captured per line.
	MaxArgs = 5

	// MaxArgLen is the size in bytes of one argument slot. A token
	// keeps at most MaxArgLen-1 bytes; the rest of its run is dropped.
	MaxArgLen = 12

	// CmdBufSize is the size of the input accumulation buffer. A line
	// holds at most CmdBufSize-1 characters; further input is dropped
	// until the line is terminated.
	CmdBufSize = 128
)

// Args is the argument vector produced by tokenizing one input line.
// It is a plain value: handlers receive a copy and may keep it without
// aliasing engine state. Slots at index >= Count() are zero.
type Args struct {
	argc int
	argv [MaxArgs][MaxArgLen]byte
}

// Count reports the number of tokens captured from the line.
func (a Args) Count() int { return a.argc }

// Arg returns token i, or the empty string when i is out of range.
func (a Args) Arg(i int) string {
	if i < 0 || i >= a.argc {
		return ""
	}
	b := a.argv[i][:]
	for j := range b {
		if b[j] == 0 {
			return string(b[:j])
		}
	}
	return string(b)
}

// ParseLine splits a line on runs of spaces into a fresh Args. No
// quoting, no escapes, no empty tokens. Tokenization stops once
// MaxArgs-1 tokens are captured; a token is the maximal run of
// non-space bytes, cut at MaxArgLen-1 with the remainder of the run
// consumed silently. Hosts building their own line editors can call it
// directly; the engine uses it for every committed line.
func ParseLine(line string) Args {
	var args Args

	// The engine's own buffer is always short enough, but
	// ExecuteCommand accepts arbitrary strings.
	if i := strings.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}
	if len(line) > CmdBufSize-1 {
		line = line[:CmdBufSize-1]
	}

	i := 0
	for i < len(line) && args.argc < MaxArgs-1 {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if i == len(line) {
			break
		}
		start := i
		for i < len(line) && line[i] != ' ' {
			i++
		}
		tok := line[start:i]
		if len(tok) > MaxArgLen-1 {
			tok = tok[:MaxArgLen-1]
		}
		copy(args.argv[args.argc][:], tok)
		args.argc++
	}
	return args
}
