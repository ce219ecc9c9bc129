package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/freekieb7/calcd/test"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	test.NoError(t, err)

	test.Equal(t, 0, cfg.Port)
	test.Equal(t, "calcd/1.0", cfg.Name)
	test.Equal(t, true, cfg.AllowHead)
	test.Equal(t, false, cfg.StrictHeaders)
	test.Equal(t, true, cfg.LegacyRedirects)
	test.Equal(t, slog.LevelInfo, cfg.LogLevel)
	test.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	test.Equal(t, "", cfg.OTLPEndpoint)
	if cfg.Host == "" {
		t.Error("expected a default host")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"CALCD_HOST":                  "127.0.0.1",
		"CALCD_PORT":                  "8080",
		"CALCD_NAME":                  "test-server",
		"CALCD_ALLOW_HEAD":            "false",
		"CALCD_STRICT_HEADERS":        "true",
		"CALCD_LEGACY_REDIRECTS":      "0",
		"CALCD_LOG_LEVEL":             "debug",
		"CALCD_SHUTDOWN_TIMEOUT":      "250ms",
		"OTEL_SERVICE_NAME":           "calc",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "http://127.0.0.1:4317",
	}))
	test.NoError(t, err)

	test.Equal(t, "127.0.0.1:8080", cfg.Addr())
	test.Equal(t, "test-server", cfg.Name)
	test.Equal(t, false, cfg.AllowHead)
	test.Equal(t, true, cfg.StrictHeaders)
	test.Equal(t, false, cfg.LegacyRedirects)
	test.Equal(t, slog.LevelDebug, cfg.LogLevel)
	test.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
	test.Equal(t, "calc", cfg.ServiceName)
	test.Equal(t, "http://127.0.0.1:4317", cfg.OTLPEndpoint)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]map[string]string{
		"port not a number": {"CALCD_PORT": "http"},
		"port out of range": {"CALCD_PORT": "65536"},
		"negative port":     {"CALCD_PORT": "-1"},
		"bad boolean":       {"CALCD_ALLOW_HEAD": "maybe"},
		"bad level":         {"CALCD_LOG_LEVEL": "loud"},
		"bad timeout":       {"CALCD_SHUTDOWN_TIMEOUT": "soon"},
	}

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(env(values))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestAddrIPv6(t *testing.T) {
	cfg := Config{Host: "::1", Port: 0}
	test.Equal(t, "[::1]:0", cfg.Addr())
}
