package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"wsgate/pkg/http"
	"wsgate/pkg/router"
	"wsgate/pkg/websocket"
)

// Server errors.
var (
	ErrServerClosed  = errors.New("server closed")
	ErrServerStarted = errors.New("server already started")
)

// Default values applied by New.
const (
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultReadBufferSize = 1024
	DefaultMaxRequestSize = 8192
)

// UpgradeFunc receives a connection after its 101 response was written. It
// runs on the connection's goroutine; the connection is closed when it returns.
type UpgradeFunc func(conn net.Conn, req *http.Request)

// Config holds server configuration.
type Config struct {
	Addr string
	// Routes is the static route table. A nil table answers 404 for every plain request.
	Routes *router.Table
	// Upgrader performs WebSocket handshakes. Nil means no subprotocols.
	Upgrader *websocket.Upgrader

	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	ReadBufferSize int
	MaxRequestSize int

	// Logger receives connection logs. Defaults to stderr.
	Logger *log.Logger
	// OnUpgrade is called for every upgraded connection. Nil closes the connection.
	OnUpgrade UpgradeFunc
}

// Server answers HTTP requests and WebSocket handshakes over raw TCP.
type Server struct {
	cfg      Config
	routes   *router.Table
	upgrader *websocket.Upgrader
	logger   *log.Logger
	stats    *counters

	mu       sync.Mutex
	listener net.Listener
	conns    map[net.Conn]struct{}
	started  bool
	closing  atomic.Bool
	wg       sync.WaitGroup
}

// New creates a server with the given configuration. Zero values are
// replaced with defaults.
func New(cfg Config) *Server {
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = DefaultReadBufferSize
	}
	if cfg.MaxRequestSize < cfg.ReadBufferSize {
		cfg.MaxRequestSize = max(DefaultMaxRequestSize, cfg.ReadBufferSize)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "wsgate: ", log.LstdFlags)
	}

	routes := cfg.Routes
	if routes == nil {
		routes, _ = router.New()
	}
	upgrader := cfg.Upgrader
	if upgrader == nil {
		upgrader = websocket.NewUpgrader()
	}

	return &Server{
		cfg:      cfg,
		routes:   routes,
		upgrader: upgrader,
		logger:   cfg.Logger,
		stats:    newCounters(),
		conns:    make(map[net.Conn]struct{}),
	}
}

// Routes returns the server's route table.
func (s *Server) Routes() *router.Table {
	return s.routes
}

// Stats returns a snapshot of the connection counters.
func (s *Server) Stats() Stats {
	return s.stats.snapshot()
}

// Addr returns the listener address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe listens on the configured address and serves connections
// until Shutdown is called.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, handling each on its own goroutine. It
// returns ErrServerClosed after Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		ln.Close()
		return ErrServerStarted
	}
	if s.closing.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.started = true
	s.listener = ln
	s.mu.Unlock()

	s.logger.Printf("listening on %s", ln.Addr())

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closing.Load() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			// Log error but continue
			backoff = nextBackoff(backoff)
			s.logger.Printf("accept error: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0

		if !s.track(conn) {
			conn.Close()
			return ErrServerClosed
		}
		go s.handleConnection(conn)
	}
}

// Shutdown stops accepting connections and waits for in-flight ones to
// finish. When ctx expires first, the remaining connections are closed and
// ctx's error is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln != nil {
		ln.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Println("server stopped")
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for c := range s.conns {
			c.Close()
		}
		s.mu.Unlock()
		<-done
		return ctx.Err()
	}
}

// track registers a connection for shutdown. It reports false once the
// server is closing.
func (s *Server) track(c net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Load() {
		return false
	}
	s.conns[c] = struct{}{}
	s.wg.Add(1)
	return true
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}

// nextBackoff doubles the accept retry delay between 5ms and 1s.
func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > time.Second {
		d = time.Second
	}
	return d
}
