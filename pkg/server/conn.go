package server

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"github.com/google/uuid"

	"wsgate/pkg/http"
)

// handleConnection reads one request from conn, answers it and closes the
// connection, unless an upgrade hook takes it over first.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.untrack(conn)
	defer conn.Close()

	id := uuid.New()
	logger := log.New(s.logger.Writer(), fmt.Sprintf("%s[%s] ", s.logger.Prefix(), id), s.logger.Flags())

	s.stats.opened()
	defer s.stats.closed()

	req, err := s.readRequest(conn)
	if err != nil {
		var kind http.Error
		if !errors.As(err, &kind) {
			logger.Printf("%s: %v", conn.RemoteAddr(), err)
			s.stats.failed.Add(1)
			return
		}
		logger.Printf("%s: rejected request: %v", conn.RemoteAddr(), err)
		s.respond(conn, logger, http.ErrorResponse(err))
		return
	}

	logRequest(logger, req)

	resp, upgraded := Dispatch(req, s.routes, s.upgrader)
	if err := s.respond(conn, logger, resp); err != nil {
		return
	}
	if !upgraded {
		return
	}

	s.stats.upgraded.Add(1)
	logger.Printf("websocket handshake complete for %s", req.Target)
	if s.cfg.OnUpgrade != nil {
		conn.SetDeadline(time.Time{})
		s.cfg.OnUpgrade(conn, req)
	}
}

// readRequest reads from conn until the buffered bytes hold a complete
// request head, the head is found to be malformed, or MaxRequestSize is
// reached. Errors that are not an http.Error are connection failures.
func (s *Server) readRequest(conn net.Conn) (*http.Request, error) {
	buf := make([]byte, 0, s.cfg.ReadBufferSize)
	chunk := make([]byte, s.cfg.ReadBufferSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}

		limit := min(len(chunk), s.cfg.MaxRequestSize-len(buf))
		n, err := conn.Read(chunk[:limit])
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			req, perr := http.Parse(buf)
			if !errors.Is(perr, http.Incomplete) {
				return req, perr
			}
			if len(buf) >= s.cfg.MaxRequestSize {
				return nil, fmt.Errorf("request head exceeds %d bytes: %w", s.cfg.MaxRequestSize, http.BadRequest)
			}
		}
		if err != nil {
			if len(buf) > 0 {
				// The peer stopped sending mid-request.
				return nil, fmt.Errorf("read after %d bytes: %v: %w", len(buf), err, http.Incomplete)
			}
			if errors.Is(err, io.EOF) {
				return nil, errors.New("connection closed before any request bytes")
			}
			return nil, fmt.Errorf("failed to read request: %w", err)
		}
	}
}

// respond writes resp to conn and records its status.
func (s *Server) respond(conn net.Conn, logger *log.Logger, resp *http.Response) error {
	s.stats.record(resp.StatusCode)
	if err := conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout)); err != nil {
		logger.Printf("failed to set write deadline: %v", err)
		return err
	}
	if _, err := resp.WriteTo(conn); err != nil {
		logger.Printf("failed to write %s response: %v", resp.Status(), err)
		s.stats.failed.Add(1)
		return err
	}
	return nil
}

// logRequest prints the request line, headers and upgrade flag.
func logRequest(logger *log.Logger, req *http.Request) {
	logger.Printf("REQUEST -- %s %s %s", req.Method, req.Target, req.Version)
	for name, value := range req.Header {
		logger.Printf("  %s: %q", name, value)
	}
	logger.Printf("is_websocket: %v", req.IsWebSocket())
}
