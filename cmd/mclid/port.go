package main

import (
	"io"

	"mcli"
)

// writerPort adapts an output-only writer to the engine's Port, for
// the subcommands that read input through other means.
type writerPort struct {
	w io.Writer
}

var (
	_ mcli.Port       = writerPort{}
	_ mcli.BulkWriter = writerPort{}
)

func (p writerPort) Buffered() int { return 0 }

func (p writerPort) ReadByte() (byte, error) { return 0, io.EOF }

func (p writerPort) WriteByte(b byte) error {
	_, err := p.w.Write([]byte{b})
	return err
}

func (p writerPort) WriteBytes(data []byte) {
	_, _ = p.w.Write(data)
}
