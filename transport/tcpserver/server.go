// Package tcpserver exposes the engine over a TCP listener. It serves
// one interactive client at a time, the way a device console would: a
// new connection replaces the previous one, and a lost peer fades to
// silent zero-reads instead of erroring the poll loop.
package tcpserver

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"mcli"
)

// Errors returned by the non-blocking read and write paths.
var (
	// ErrNoClient reports that no client session is installed.
	ErrNoClient = errors.New("tcpserver: no client connected")

	// ErrNoData reports an empty receive buffer.
	ErrNoData = errors.New("tcpserver: no data buffered")
)

const defaultRxBuf = 256

// Config parameterizes a Server.
type Config struct {
	// Addr is the listen address, e.g. ":7001".
	Addr string

	// StripTelnet removes IAC command and subnegotiation sequences
	// from the inbound stream, so stock telnet clients work without
	// leaking protocol bytes into the line editor.
	StripTelnet bool

	// RxBuf bounds unread bytes per session; 0 selects 256.
	RxBuf int
}

// Server is a single-session TCP console. It satisfies Port at all
// times; with no client installed reads report nothing and writes are
// rejected, so the engine can keep polling across connections.
type Server struct {
	cfg Config
	ln  net.Listener

	mu  sync.Mutex
	cur *session
}

var (
	_ mcli.Port       = (*Server)(nil)
	_ mcli.BulkReader = (*Server)(nil)
	_ mcli.BulkWriter = (*Server)(nil)
)

type session struct {
	conn  net.Conn
	rx    chan byte
	quit  chan struct{}
	alive atomic.Bool
	once  sync.Once
}

// Listen binds cfg.Addr and returns a Server with no client installed.
func Listen(cfg Config) (*Server, error) {
	if cfg.RxBuf <= 0 {
		cfg.RxBuf = defaultRxBuf
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, ln: ln}, nil
}

// Addr reports the bound listen address.
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// WaitClient blocks until the next client connects and installs it as
// the active session, replacing and closing any previous one. It
// returns ctx.Err() when the context is canceled; cancellation closes
// the listener, so a canceled server cannot accept again.
func (s *Server) WaitClient(ctx context.Context) error {
	watch := make(chan struct{})
	defer close(watch)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.ln.Close()
		case <-watch:
		}
	}()

	conn, err := s.ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}

	c := &session{
		conn: conn,
		rx:   make(chan byte, s.cfg.RxBuf),
		quit: make(chan struct{}),
	}
	c.alive.Store(true)
	go c.pump(s.cfg.StripTelnet)

	s.mu.Lock()
	old := s.cur
	s.cur = c
	s.mu.Unlock()
	if old != nil {
		old.close()
	}
	return nil
}

func (c *session) pump(stripTelnet bool) {
	defer c.alive.Store(false)
	var f telnetFilter
	buf := make([]byte, 256)
	for {
		n, err := c.conn.Read(buf)
		data := buf[:n]
		if stripTelnet {
			data = f.strip(data)
		}
		for _, b := range data {
			select {
			case c.rx <- b:
			case <-c.quit:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (c *session) close() {
	c.once.Do(func() {
		close(c.quit)
		_ = c.conn.Close()
	})
}

func (s *Server) session() *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// Connected reports whether the active session is still worth polling:
// the peer is alive, or it left buffered bytes behind. It goes false
// only after a lost session is fully drained.
func (s *Server) Connected() bool {
	c := s.session()
	return c != nil && (c.alive.Load() || len(c.rx) > 0)
}

// RemoteAddr reports the active client's address, nil without one.
func (s *Server) RemoteAddr() net.Addr {
	if c := s.session(); c != nil {
		return c.conn.RemoteAddr()
	}
	return nil
}

// Buffered reports how many received bytes are waiting to be read.
func (s *Server) Buffered() int {
	if c := s.session(); c != nil {
		return len(c.rx)
	}
	return 0
}

// ReadByte pops one buffered byte without blocking.
func (s *Server) ReadByte() (byte, error) {
	c := s.session()
	if c == nil {
		return 0, ErrNoClient
	}
	select {
	case b := <-c.rx:
		return b, nil
	default:
		return 0, ErrNoData
	}
}

// ReadBytes drains up to len(p) buffered bytes and reports how many.
func (s *Server) ReadBytes(p []byte) int {
	c := s.session()
	if c == nil {
		return 0
	}
	n := 0
	for n < len(p) {
		select {
		case b := <-c.rx:
			p[n] = b
			n++
		default:
			return n
		}
	}
	return n
}

// WriteByte sends one byte to the client. A send failure tears the
// session down so the poll loop sees the disconnect.
func (s *Server) WriteByte(b byte) error {
	var buf [1]byte
	buf[0] = b
	return s.write(buf[:])
}

// WriteBytes sends data to the client, dropping it when none is
// connected.
func (s *Server) WriteBytes(data []byte) {
	_ = s.write(data)
}

func (s *Server) write(data []byte) error {
	c := s.session()
	if c == nil {
		return ErrNoClient
	}
	if _, err := c.conn.Write(data); err != nil {
		c.close()
		return err
	}
	return nil
}

// CloseClient tears down the active session, if any.
func (s *Server) CloseClient() {
	s.mu.Lock()
	c := s.cur
	s.cur = nil
	s.mu.Unlock()
	if c != nil {
		c.close()
	}
}

// Close tears down the active session and stops listening.
func (s *Server) Close() error {
	s.CloseClient()
	return s.ln.Close()
}
