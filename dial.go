package rosapi

import (
	"context"
	"crypto/tls"
	"net"
)

// Default RouterOS API service ports.
const (
	DefaultPort    = "8728"
	DefaultTLSPort = "8729"
)

// Dial connects to a device at addr ("host" or "host:port") and returns
// a Protocol over the connection. Without a port, DefaultPort is used,
// or DefaultTLSPort when TLSConfigOption is set.
func Dial(ctx context.Context, addr string, opt ...Option) (*Protocol, error) {
	opts := buildOptions(opt)

	if _, _, err := net.SplitHostPort(addr); err != nil {
		port := DefaultPort
		if opts.tlsConfig != nil {
			port = DefaultTLSPort
		}
		addr = net.JoinHostPort(addr, port)
	}

	dialer := &net.Dialer{Timeout: opts.timeout}

	var (
		conn net.Conn
		err  error
	)
	if opts.tlsConfig != nil {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: opts.tlsConfig}
		conn, err = tlsDialer.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, &ConnError{Op: "dial", Err: err}
	}

	if tcp, ok := conn.(*net.TCPConn); ok {
		_ = tcp.SetNoDelay(true)
	}

	opts.logger.Debug("connection established", "addr", conn.RemoteAddr())
	return newProtocolWithOptions(conn, opts), nil
}
