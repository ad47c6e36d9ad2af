// Package config loads the server configuration from defaults and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 4485
	DefaultReadTimeout    = 10 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultReadBufferSize = 1024
	DefaultMaxRequestSize = 8192
	DefaultStatusAddr     = "127.0.0.1:4486"
)

// Config holds the whole application configuration.
type Config struct {
	Server ServerConfig
	Status StatusConfig
	Routes RoutesConfig
	// Subprotocols lists the WebSocket subprotocols offered during the handshake.
	Subprotocols []string
}

// ServerConfig configures the request listener.
type ServerConfig struct {
	Host string
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ReadBufferSize is the size of a single read from the connection.
	ReadBufferSize int
	// MaxRequestSize bounds the request head; larger requests get 400.
	MaxRequestSize int
}

// StatusConfig configures the status API.
type StatusConfig struct {
	Enabled bool
	Addr    string
}

// RoutesConfig configures the static route table.
type RoutesConfig struct {
	// HomePath is the file served at "/". Empty selects the embedded page.
	HomePath string
}

// Default returns the configuration with every field at its default.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           DefaultHost,
			Port:           DefaultPort,
			ReadTimeout:    DefaultReadTimeout,
			WriteTimeout:   DefaultWriteTimeout,
			ReadBufferSize: DefaultReadBufferSize,
			MaxRequestSize: DefaultMaxRequestSize,
		},
		Status: StatusConfig{
			Enabled: true,
			Addr:    DefaultStatusAddr,
		},
	}
}

// Load builds the configuration from defaults and environment variables and validates it.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with a custom environment lookup.
func LoadFrom(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	env := envReader{lookup: lookup}

	cfg.Server.Host = env.getString("WSGATE_HOST", cfg.Server.Host)
	cfg.Server.Port = env.getInt("PORT", cfg.Server.Port)
	cfg.Server.ReadTimeout = env.getDuration("WSGATE_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = env.getDuration("WSGATE_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.MaxRequestSize = env.getInt("WSGATE_MAX_REQUEST_SIZE", cfg.Server.MaxRequestSize)
	cfg.Status.Enabled = env.getBool("WSGATE_STATUS", cfg.Status.Enabled)
	cfg.Status.Addr = env.getString("WSGATE_STATUS_ADDR", cfg.Status.Addr)
	cfg.Routes.HomePath = env.getString("WSGATE_HOME", cfg.Routes.HomePath)
	cfg.Subprotocols = env.getList("WSGATE_SUBPROTOCOLS")

	if err := env.err(); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive: %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive: %s", c.Server.WriteTimeout)
	}
	if c.Server.ReadBufferSize <= 0 {
		return fmt.Errorf("read buffer size must be positive: %d", c.Server.ReadBufferSize)
	}
	if c.Server.MaxRequestSize < c.Server.ReadBufferSize {
		return fmt.Errorf("max request size %d is smaller than read buffer size %d",
			c.Server.MaxRequestSize, c.Server.ReadBufferSize)
	}
	if c.Status.Enabled {
		if _, _, err := net.SplitHostPort(c.Status.Addr); err != nil {
			return fmt.Errorf("invalid status address %q: %w", c.Status.Addr, err)
		}
	}
	return nil
}

// ServerAddress returns the listen address of the request server.
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// envReader reads typed values and collects parse errors.
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) getString(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *envReader) getInt(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("$%s is not an integer: %q", key, v))
		return def
	}
	return n
}

func (e *envReader) getDuration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("$%s is not a duration: %q", key, v))
		return def
	}
	return d
}

func (e *envReader) getBool(key string, def bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("$%s is not a boolean: %q", key, v))
		return def
	}
	return b
}

func (e *envReader) getList(key string) []string {
	v, ok := e.raw(key)
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}
