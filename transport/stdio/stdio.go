// Package stdio runs the console over the process's standard streams.
// When stdin is a terminal it is switched into raw mode so keystrokes
// arrive one byte at a time and the engine does its own echo.
package stdio

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"mcli"
	"mcli/transport/serial"
)

// stdinout glues stdin and stdout into one device for the stream pump.
type stdinout struct{}

func (stdinout) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdinout) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// Term is a Port over the standard streams.
type Term struct {
	*serial.Stream
	oldState *term.State
}

var _ mcli.Port = (*Term)(nil)

// Open wires up the standard streams, putting a terminal stdin into
// raw mode. Piped input is left alone.
func Open() (*Term, error) {
	t := &Term{}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		st, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return nil, fmt.Errorf("stdio: enter raw mode: %w", err)
		}
		t.oldState = st
	}
	t.Stream = serial.New(stdinout{}, 0)
	return t, nil
}

// Close restores the terminal state and stops the stream. The pump
// goroutine stays blocked on stdin until the process exits or one
// more byte arrives; that is harmless for a process tearing down.
func (t *Term) Close() error {
	err := t.Stream.Close()
	if t.oldState != nil {
		if rerr := term.Restore(int(os.Stdin.Fd()), t.oldState); err == nil {
			err = rerr
		}
		t.oldState = nil
	}
	return err
}
