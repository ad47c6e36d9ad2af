package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// TestLoad_Defaults tests loading with an empty environment.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Server.Port != 4485 {
		t.Errorf("Port = %d, want 4485", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q", cfg.Server.Host)
	}
	if cfg.Server.ReadBufferSize != 1024 {
		t.Errorf("ReadBufferSize = %d, want 1024", cfg.Server.ReadBufferSize)
	}
	if !cfg.Status.Enabled {
		t.Error("status API disabled by default")
	}
	if cfg.Routes.HomePath != "" {
		t.Errorf("HomePath = %q, want empty", cfg.Routes.HomePath)
	}
	if cfg.ServerAddress() != "0.0.0.0:4485" {
		t.Errorf("ServerAddress() = %q", cfg.ServerAddress())
	}
}

// TestLoad_Environment tests environment overrides.
func TestLoad_Environment(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                    " 9000 ",
		"WSGATE_HOST":             "127.0.0.1",
		"WSGATE_READ_TIMEOUT":     "3s",
		"WSGATE_MAX_REQUEST_SIZE": "4096",
		"WSGATE_STATUS":           "false",
		"WSGATE_HOME":             "/srv/home.html",
		"WSGATE_SUBPROTOCOLS":     "chat, superchat,",
	}))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxRequestSize != 4096 {
		t.Errorf("MaxRequestSize = %d", cfg.Server.MaxRequestSize)
	}
	if cfg.Status.Enabled {
		t.Error("status API still enabled")
	}
	if cfg.Routes.HomePath != "/srv/home.html" {
		t.Errorf("HomePath = %q", cfg.Routes.HomePath)
	}
	if !reflect.DeepEqual(cfg.Subprotocols, []string{"chat", "superchat"}) {
		t.Errorf("Subprotocols = %v", cfg.Subprotocols)
	}
	if cfg.ServerAddress() != "127.0.0.1:9000" {
		t.Errorf("ServerAddress() = %q", cfg.ServerAddress())
	}
}

// TestLoad_InvalidEnvironment tests that malformed values are reported.
func TestLoad_InvalidEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port not integer", map[string]string{"PORT": "http"}, "PORT"},
		{"bad duration", map[string]string{"WSGATE_READ_TIMEOUT": "soon"}, "WSGATE_READ_TIMEOUT"},
		{"bad bool", map[string]string{"WSGATE_STATUS": "maybe"}, "WSGATE_STATUS"},
		{"port out of range", map[string]string{"PORT": "70000"}, "invalid port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(envMap(tt.env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

// TestConfigValidation tests Validate.
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*Config)
		expectErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"negative read timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }, true},
		{"zero write timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, true},
		{"zero read buffer", func(c *Config) { c.Server.ReadBufferSize = 0 }, true},
		{"max below buffer", func(c *Config) { c.Server.MaxRequestSize = 512 }, true},
		{"bad status addr", func(c *Config) { c.Status.Addr = "nohostport" }, true},
		{"bad status addr ignored when disabled", func(c *Config) {
			c.Status.Enabled = false
			c.Status.Addr = "nohostport"
		}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
