package rosapi

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Handler answers one request sentence with zero or more reply sentences.
// A returned error is sent to the client as a !trap followed by !done.
// Replying with a !fatal sentence ends the session after it is written.
type Handler interface {
	ServeSentence(ctx context.Context, sentence []string) ([][]string, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, sentence []string) ([][]string, error)

// ServeSentence calls f(ctx, sentence).
func (f HandlerFunc) ServeSentence(ctx context.Context, sentence []string) ([][]string, error) {
	return f(ctx, sentence)
}

// Server accepts API connections and speaks the device side of the
// protocol. Every connection gets its own Protocol.
type Server struct {
	listener        *net.TCPListener
	logger          Logger
	shutdownTimeout time.Duration
	connOpts        []Option

	mu          sync.Mutex
	shutdown    bool
	shutdownNow chan struct{} // signals immediate shutdown, bypassing timeout
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// ServerLoggerOption sets the logger for the server.
func ServerLoggerOption(logger Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// ServerShutdownTimeoutOption sets the graceful shutdown timeout.
// When the context is canceled, the server keeps serving open sessions for
// up to this duration before closing the listener and every connection.
// Default is 0 (immediate shutdown).
func ServerShutdownTimeoutOption(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// ServerConnOption sets the options used for each accepted connection,
// such as EncodingOption or TimeoutOption.
func ServerConnOption(opt ...Option) ServerOption {
	return func(s *Server) {
		s.connOpts = append(s.connOpts, opt...)
	}
}

// NewServer creates a new server bound to the specified address.
// Returns an error if the address cannot be bound.
func NewServer(addr *net.TCPAddr, opts ...ServerOption) (*Server, error) {
	listener, err := net.ListenTCP(addr.Network(), addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		listener:    listener,
		logger:      slog.Default(),
		shutdownNow: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Serve accepts connections and dispatches their sentences to handler.
// It blocks until the context is canceled or Close is called, and returns
// only after every session has ended.
func (s *Server) Serve(ctx context.Context, handler Handler) error {
	s.logger.Info("server started", "addr", s.listener.Addr())

	sessions, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-ctx.Done():
		case <-sessions.Done():
			return
		}

		// Wait for shutdown timeout if configured, but allow early exit via Close()
		if s.shutdownTimeout > 0 {
			s.logger.Info("graceful shutdown initiated", "timeout", s.shutdownTimeout)
			select {
			case <-time.After(s.shutdownTimeout):
			case <-s.shutdownNow:
				s.logger.Debug("shutdown timeout bypassed via Close()")
			}
		}

		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		// Set a deadline to unblock Accept
		_ = s.listener.SetDeadline(time.Now())
	}()

	var group errgroup.Group
	for {
		conn, err := s.listener.AcceptTCP()
		if err != nil {
			s.mu.Lock()
			isShutdown := s.shutdown
			s.mu.Unlock()

			if isShutdown {
				cancel()
				_ = group.Wait()
				s.logger.Info("server stopped", "addr", s.listener.Addr())
				return ctx.Err()
			}

			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			s.logger.Error("accept error", "error", err)
			cancel()
			_ = group.Wait()
			return err
		}

		s.logger.Debug("accepted connection", "remote_addr", conn.RemoteAddr())
		_ = conn.SetNoDelay(true)
		group.Go(func() error {
			s.serveConn(sessions, conn, handler)
			return nil
		})
	}
}

// serveConn runs one session until the client leaves, a !fatal reply is
// sent, or ctx is canceled.
func (s *Server) serveConn(ctx context.Context, conn *net.TCPConn, handler Handler) {
	addr := conn.RemoteAddr()
	p := New(conn, append([]Option{LoggerOption(s.logger)}, s.connOpts...)...)
	defer p.Close()

	stop := context.AfterFunc(ctx, func() { _ = p.Close() })
	defer stop()

	for {
		sentence, err := p.ReadSentence()
		if err != nil {
			if errors.Is(err, ErrUnexpectedClose) || errors.Is(err, ErrConnectionClosed) {
				s.logger.Debug("session closed", "remote_addr", addr)
			} else {
				s.logger.Info("session closed with error", "remote_addr", addr, "error", err)
			}
			return
		}
		if len(sentence) == 0 {
			continue
		}

		replies, err := handler.ServeSentence(ctx, sentence)
		if err != nil {
			replies = [][]string{{ReplyTrap, "=message=" + err.Error()}, {ReplyDone}}
		}

		for _, reply := range replies {
			if err := p.WriteSentence(reply...); err != nil {
				s.logger.Info("session write failed", "remote_addr", addr, "error", err)
				return
			}
			if len(reply) > 0 && reply[0] == ReplyFatal {
				s.logger.Debug("session terminated", "remote_addr", addr)
				return
			}
		}
	}
}

// Close stops the server by closing the underlying listener.
// If a shutdown timeout is configured, Close() bypasses the remaining timeout.
// Open sessions are closed before Serve returns.
func (s *Server) Close() error {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()

	// Signal to bypass any pending shutdown timeout
	select {
	case s.shutdownNow <- struct{}{}:
	default:
	}

	return s.listener.Close()
}

// Addr returns the listener's network address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
