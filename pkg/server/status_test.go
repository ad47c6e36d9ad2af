package server

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestStatusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	srv := newTestServer(t, Config{})
	exchange(t, srv, "GET / HTTP/1.1\r\n\r\n")
	engine := NewStatusHandler(srv, io.Discard)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/health", nil))
		if w.Code != nethttp.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, nethttp.StatusOK)
		}
		var body HealthResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "healthy" {
			t.Errorf("status field = %q, want %q", body.Status, "healthy")
		}
	})

	t.Run("status", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/status", nil))
		if w.Code != nethttp.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, nethttp.StatusOK)
		}
		var body StatusResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "running" {
			t.Errorf("status field = %q, want %q", body.Status, "running")
		}
		if body.Stats.Accepted != 1 {
			t.Errorf("accepted = %d, want 1", body.Stats.Accepted)
		}
		if body.Stats.Responses[200] != 1 {
			t.Errorf("responses[200] = %d, want 1", body.Stats.Responses[200])
		}
	})

	t.Run("routes", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/routes", nil))
		var body RoutesResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Routes) != 1 || body.Routes[0] != "/" {
			t.Errorf("routes = %v, want [/]", body.Routes)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/api/nope", nil))
		if w.Code != nethttp.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, nethttp.StatusNotFound)
		}
	})
}
