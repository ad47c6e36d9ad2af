// wsgate serves a static home page and answers WebSocket opening handshakes
// over raw TCP. A JSON status API runs on a separate address.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"wsgate/pkg/config"
	"wsgate/pkg/router"
	"wsgate/pkg/server"
	"wsgate/pkg/websocket"
)

func main() {
	var (
		host       = flag.String("host", "", "listen host (default from WSGATE_HOST or 0.0.0.0)")
		port       = flag.Int("port", 0, "listen port (default from PORT or 4485)")
		statusAddr = flag.String("status-addr", "", "status API address, \"off\" disables it")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	switch *statusAddr {
	case "":
	case "off":
		cfg.Status.Enabled = false
	default:
		cfg.Status.Addr = *statusAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	routes, err := router.Default(cfg.Routes.HomePath)
	if err != nil {
		log.Fatalf("Failed to load routes: %v", err)
	}

	logger := log.New(os.Stderr, "wsgate: ", log.LstdFlags)
	srv := server.New(server.Config{
		Addr:           cfg.ServerAddress(),
		Routes:         routes,
		Upgrader:       websocket.NewUpgrader(cfg.Subprotocols...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		ReadBufferSize: cfg.Server.ReadBufferSize,
		MaxRequestSize: cfg.Server.MaxRequestSize,
		Logger:         logger,
	})

	fmt.Printf("Listening on %s\n", cfg.ServerAddress())
	fmt.Printf("Routes: %v\n", routes.Targets())

	errCh := make(chan error, 2)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
			errCh <- err
		}
	}()

	var status *server.StatusServer
	if cfg.Status.Enabled {
		gin.SetMode(gin.ReleaseMode)
		status = server.NewStatusServer(cfg.Status.Addr, srv, logger.Writer())
		fmt.Printf("Status API on http://%s/api/status\n", cfg.Status.Addr)
		go func() {
			if err := status.Start(); err != nil {
				errCh <- err
			}
		}()
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Printf("Received %v, shutting down...", sig)
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if status != nil {
		if err := status.Shutdown(ctx); err != nil {
			log.Printf("%v", err)
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
