// mcliterm is a minimal raw client for the TCP console: it connects,
// puts the local terminal into raw mode, and shovels bytes both ways
// so the remote engine does all echo and line editing. Press Ctrl-] to
// quit.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"mcli"
	"mcli/internal/buildinfo"
	"mcli/transport/stdio"
)

// Ctrl-], the traditional telnet escape key.
const escapeKey = 0x1d

var errQuit = errors.New("mcliterm: quit")

func main() {
	addr := flag.String("addr", "127.0.0.1:7001", "console address to connect to")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("mcliterm " + buildinfo.Short())
		return
	}

	err := run(*addr)
	if err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "mcliterm: %v\n", err)
		os.Exit(1)
	}
}

func run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	tty, err := stdio.Open()
	if err != nil {
		return err
	}
	defer tty.Close()

	fmt.Fprintf(os.Stderr, "connected to %s, press Ctrl-] to quit\r\n", addr)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		// Remote output straight to the screen.
		if _, err := io.Copy(os.Stdout, conn); err != nil {
			return err
		}
		return errQuit
	})

	g.Go(func() error {
		// Keystrokes to the remote engine, watching for the escape key.
		tick := time.NewTicker(5 * time.Millisecond)
		defer tick.Stop()
		buf := make([]byte, 256)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}

			n := mcli.ReadBytes(tty, buf)
			quit := bytes.IndexByte(buf[:n], escapeKey)
			if quit >= 0 {
				n = quit
			}
			if n > 0 {
				if _, err := conn.Write(buf[:n]); err != nil {
					return err
				}
			}
			if quit >= 0 {
				return errQuit
			}
			if n == 0 && tty.Closed() {
				// Piped stdin ran dry.
				return errQuit
			}
		}
	})

	g.Go(func() error {
		// First exit from either loop tears the connection down so the
		// other loop unblocks.
		<-ctx.Done()
		conn.Close()
		return nil
	})

	return g.Wait()
}
