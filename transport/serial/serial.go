// Package serial adapts a blocking byte-stream device, anything that
// satisfies io.ReadWriter, to the engine's non-blocking Port contract.
// A single pump goroutine owns the device reads and feeds a buffered
// channel the engine polls; writes pass straight through.
package serial

import (
	"errors"
	"io"
	"sync"

	"mcli"
)

// Errors returned by the non-blocking read path.
var (
	// ErrNoData reports an empty receive buffer on a live stream.
	ErrNoData = errors.New("serial: no data buffered")

	// ErrClosed reports a drained receive buffer on a dead stream.
	ErrClosed = errors.New("serial: stream closed")
)

const defaultRxBuf = 256

// Stream pumps a blocking io.ReadWriter into a receive buffer so a
// poll loop can drain it without ever blocking. Except for Close and
// Closed, Stream methods are not safe for concurrent use; the engine
// is the sole caller in a poll-driven host.
type Stream struct {
	rw   io.ReadWriter
	rx   chan byte
	quit chan struct{}
	done chan struct{}
	once sync.Once
	wb   [1]byte
}

var (
	_ mcli.Port       = (*Stream)(nil)
	_ mcli.BulkReader = (*Stream)(nil)
	_ mcli.BulkWriter = (*Stream)(nil)
)

// New wraps rw and starts the read pump. bufSize bounds how many
// unread bytes the stream holds before the pump stalls; 0 selects a
// 256-byte default.
func New(rw io.ReadWriter, bufSize int) *Stream {
	if bufSize <= 0 {
		bufSize = defaultRxBuf
	}
	s := &Stream{
		rw:   rw,
		rx:   make(chan byte, bufSize),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.pump()
	return s
}

func (s *Stream) pump() {
	defer close(s.done)
	buf := make([]byte, 64)
	for {
		n, err := s.rw.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case s.rx <- buf[i]:
			case <-s.quit:
				return
			}
		}
		if err != nil {
			return
		}
		select {
		case <-s.quit:
			return
		default:
		}
	}
}

// Buffered reports how many received bytes are waiting to be read.
func (s *Stream) Buffered() int { return len(s.rx) }

// ReadByte pops one buffered byte. It returns ErrNoData when the
// buffer is empty, and ErrClosed once the buffer is drained after the
// device is gone.
func (s *Stream) ReadByte() (byte, error) {
	select {
	case b := <-s.rx:
		return b, nil
	default:
	}
	if s.Closed() {
		return 0, ErrClosed
	}
	return 0, ErrNoData
}

// ReadBytes drains up to len(p) buffered bytes without blocking and
// reports how many it copied.
func (s *Stream) ReadBytes(p []byte) int {
	n := 0
	for n < len(p) {
		select {
		case b := <-s.rx:
			p[n] = b
			n++
		default:
			return n
		}
	}
	return n
}

// WriteByte sends one byte to the device.
func (s *Stream) WriteByte(b byte) error {
	s.wb[0] = b
	_, err := s.rw.Write(s.wb[:])
	return err
}

// WriteBytes sends data in a single device write.
func (s *Stream) WriteBytes(data []byte) {
	_, _ = s.rw.Write(data)
}

// Close stops the read pump and closes the device when it supports
// closing. Bytes already received stay readable until drained. On a
// device without Close the pump exits after its next read returns.
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.quit)
		if c, ok := s.rw.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

// Closed reports whether the read pump has stopped, either through
// Close or because the device returned a read error.
func (s *Stream) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}
