package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	Status    string    `json:"status"`
	Addr      string    `json:"addr"`
	Uptime    string    `json:"uptime"`
	Stats     Stats     `json:"stats"`
	Timestamp time.Time `json:"timestamp"`
}

// RoutesResponse is the body of GET /api/routes.
type RoutesResponse struct {
	Routes []string `json:"routes"`
}

// statusHandler serves read-only information about a Server.
type statusHandler struct {
	srv     *Server
	started time.Time
}

// NewStatusHandler returns a gin engine exposing the health, counters and
// routes of srv. Access logs go to logOut.
func NewStatusHandler(srv *Server, logOut io.Writer) *gin.Engine {
	h := &statusHandler{srv: srv, started: time.Now()}

	engine := gin.New()
	engine.Use(gin.LoggerWithWriter(logOut), gin.Recovery())

	engine.GET("/health", h.health)
	api := engine.Group("/api")
	{
		api.GET("/status", h.status)
		api.GET("/routes", h.routes)
	}
	return engine
}

func (h *statusHandler) health(c *gin.Context) {
	c.JSON(nethttp.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

func (h *statusHandler) status(c *gin.Context) {
	addr := ""
	if a := h.srv.Addr(); a != nil {
		addr = a.String()
	}
	state := "running"
	if h.srv.closing.Load() {
		state = "stopping"
	}
	c.JSON(nethttp.StatusOK, StatusResponse{
		Status:    state,
		Addr:      addr,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Stats:     h.srv.Stats(),
		Timestamp: time.Now(),
	})
}

func (h *statusHandler) routes(c *gin.Context) {
	c.JSON(nethttp.StatusOK, RoutesResponse{Routes: h.srv.Routes().Targets()})
}

// StatusServer serves the status API over net/http.
type StatusServer struct {
	httpServer *nethttp.Server
}

// NewStatusServer creates a status server for srv listening on addr.
func NewStatusServer(addr string, srv *Server, logOut io.Writer) *StatusServer {
	return &StatusServer{
		httpServer: &nethttp.Server{
			Addr:              addr,
			Handler:           NewStatusHandler(srv, logOut),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start serves until Shutdown. It returns nil after a clean shutdown.
func (s *StatusServer) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return fmt.Errorf("status server failed: %w", err)
	}
	return nil
}

// Shutdown stops the status server.
func (s *StatusServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down status server: %w", err)
	}
	return nil
}
