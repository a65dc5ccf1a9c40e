package testutil

import (
	"fmt"
	"net"
	"testing"
)

// NextListener returns a TCP listener bound to a free port on the loopback
// interface. The caller owns the listener; servers started on it take over
// closing it.
func NextListener(t *testing.T) net.Listener {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("could not bind a loopback listener: %v", err)
	}

	return ln
}

// NextPort returns a port number that was free at the time of the call. The
// port is released before returning, so a parallel test may grab it; prefer
// NextListener when the listener itself can be handed to the server.
func NextPort(t *testing.T) int {
	t.Helper()

	ln := NextListener(t)
	defer ln.Close()

	return ln.Addr().(*net.TCPAddr).Port
}

// NextAddr returns a loopback host:port string for a port that was free at
// the time of the call.
func NextAddr(t *testing.T) string {
	t.Helper()

	return fmt.Sprintf("127.0.0.1:%d", NextPort(t))
}
