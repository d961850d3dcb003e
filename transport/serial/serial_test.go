package serial

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

func readFrom(t *testing.T, r io.Reader, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	done := make(chan error, 1)
	go func() {
		_, err := io.ReadFull(r, buf)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out reading peer side")
	}
	return buf
}

func TestStream_DeliversBytes(t *testing.T) {
	local, peer := net.Pipe()
	s := New(local, 0)
	defer s.Close()

	_, err := peer.Write([]byte("help\r\n"))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return s.Buffered() == 6 },
		time.Second, 5*time.Millisecond)

	buf := make([]byte, 16)
	n := s.ReadBytes(buf)
	require.Equal(t, "help\r\n", string(buf[:n]))
	require.Equal(t, 0, s.Buffered())
}

func TestStream_WritePath(t *testing.T) {
	local, peer := net.Pipe()
	s := New(local, 0)
	defer s.Close()

	go s.WriteBytes([]byte("ok\r\n"))
	require.Equal(t, "ok\r\n", string(readFrom(t, peer, 4)))

	go func() { _ = s.WriteByte('x') }()
	require.Equal(t, "x", string(readFrom(t, peer, 1)))
}

func TestStream_ReadByteEmpty(t *testing.T) {
	local, _ := net.Pipe()
	s := New(local, 0)
	defer s.Close()

	_, err := s.ReadByte()
	require.ErrorIs(t, err, ErrNoData)
}

func TestStream_PeerLossGoesSilent(t *testing.T) {
	local, peer := net.Pipe()
	s := New(local, 0)
	defer s.Close()

	require.NoError(t, peer.Close())
	require.Eventually(t, s.Closed, time.Second, 5*time.Millisecond)

	require.Equal(t, 0, s.Buffered())
	_, err := s.ReadByte()
	require.ErrorIs(t, err, ErrClosed)
}

func TestStream_CloseDrainsBuffered(t *testing.T) {
	local, peer := net.Pipe()
	s := New(local, 0)

	_, err := peer.Write([]byte("ab"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return s.Buffered() == 2 },
		time.Second, 5*time.Millisecond)

	require.NoError(t, s.Close())
	require.Eventually(t, s.Closed, time.Second, 5*time.Millisecond)

	b, err := s.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('a'), b)
	b, err = s.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('b'), b)

	_, err = s.ReadByte()
	require.ErrorIs(t, err, ErrClosed)
}

func TestStream_SmallBufferStallsPump(t *testing.T) {
	local, peer := net.Pipe()
	s := New(local, 4)
	defer s.Close()

	go func() { _, _ = peer.Write([]byte("abcdef")) }()

	require.Eventually(t, func() bool { return s.Buffered() == 4 },
		time.Second, 5*time.Millisecond)

	// Draining makes room; the pump forwards the rest.
	buf := make([]byte, 8)
	total := 0
	require.Eventually(t, func() bool {
		total += s.ReadBytes(buf[total:])
		return total == 6
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "abcdef", string(buf[:6]))
}

func TestStream_PtySmoke(t *testing.T) {
	master, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer master.Close()
	defer tty.Close()

	// Raw mode keeps the line discipline from echoing or translating.
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		t.Skipf("cannot set raw mode on pty: %v", err)
	}

	s := New(tty, 0)
	defer s.Close()

	_, err = master.Write([]byte("led on\r"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return s.Buffered() >= 7 },
		2*time.Second, 5*time.Millisecond)

	buf := make([]byte, 16)
	n := s.ReadBytes(buf)
	require.Equal(t, "led on\r", string(buf[:n]))

	s.WriteBytes([]byte("ok"))
	require.Equal(t, "ok", string(readFrom(t, master, 2)))
}
