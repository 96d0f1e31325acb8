package rosapi

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Socket is the byte stream a Transport drives. Write must send all of
// p or fail, Read returns whatever a single receive produced.
// *net.TCPConn, *tls.Conn and net.Pipe ends all satisfy it.
type Socket interface {
	io.Reader
	io.Writer
	io.Closer
}

// Optional socket capabilities.
type (
	readCloser    interface{ CloseRead() error }
	writeCloser   interface{ CloseWrite() error }
	readDeadliner interface {
		SetReadDeadline(t time.Time) error
	}
	writeDeadliner interface {
		SetWriteDeadline(t time.Time) error
	}
)

// Transport turns socket faults into *ConnError values and owns the
// socket's shutdown. It is not safe for concurrent use.
type Transport struct {
	sock    Socket
	logger  Logger
	timeout time.Duration
	closed  atomic.Bool
}

// NewTransport wraps an already connected socket.
func NewTransport(sock Socket, opt ...Option) *Transport {
	return newTransportWithOptions(sock, buildOptions(opt))
}

func newTransportWithOptions(sock Socket, opts options) *Transport {
	return &Transport{
		sock:    sock,
		logger:  opts.logger,
		timeout: opts.timeout,
	}
}

// Write sends all of data.
func (t *Transport) Write(data []byte) error {
	if t.closed.Load() {
		return &ConnError{Op: "write", Err: ErrConnectionClosed}
	}

	if d, ok := t.sock.(writeDeadliner); ok && t.timeout > 0 {
		_ = d.SetWriteDeadline(time.Now().Add(t.timeout))
	}

	n, err := t.sock.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &ConnError{Op: "write", Err: err}
	}
	return nil
}

// Read performs one receive of up to n bytes and returns what arrived,
// which may be fewer than n. A receive that yields nothing fails with
// ErrUnexpectedClose as its cause, for every n including zero.
func (t *Transport) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("rosapi: negative read size %d", n)
	}
	if t.closed.Load() {
		return nil, &ConnError{Op: "read", Err: ErrConnectionClosed}
	}

	if d, ok := t.sock.(readDeadliner); ok && t.timeout > 0 {
		_ = d.SetReadDeadline(time.Now().Add(t.timeout))
	}

	buf := make([]byte, n)
	got, err := t.sock.Read(buf)
	if got > 0 {
		// A fault delivered alongside data is reported by the next Read.
		return buf[:got], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, &ConnError{Op: "read", Err: ErrUnexpectedClose}
	}
	return nil, &ConnError{Op: "read", Err: err}
}

// Close shuts the socket down in both directions and closes it.
// Faults are logged and swallowed, so Close always returns nil.
// Calls after the first are no-ops.
func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return nil
	}

	if err := shutdown(t.sock); err != nil {
		t.logger.Debug("socket shutdown failed", "error", err)
	}
	if err := t.sock.Close(); err != nil {
		t.logger.Debug("socket close failed", "error", err)
	}
	return nil
}

// IsClosed returns true if the transport has been closed.
func (t *Transport) IsClosed() bool {
	return t.closed.Load()
}

// shutdown half-closes whichever directions sock supports.
func shutdown(sock Socket) error {
	var first error
	if rc, ok := sock.(readCloser); ok {
		first = rc.CloseRead()
	}
	if wc, ok := sock.(writeCloser); ok {
		if err := wc.CloseWrite(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
