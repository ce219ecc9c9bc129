// Package config reads calcd's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Host            string
	Port            int
	Name            string
	AllowHead       bool
	StrictHeaders   bool
	LegacyRedirects bool
	LogLevel        slog.Level
	ShutdownTimeout time.Duration

	ServiceName  string
	OTLPEndpoint string
}

func Default() Config {
	return Config{
		Host:            DefaultHost(),
		Port:            0,
		Name:            "calcd/1.0",
		AllowHead:       true,
		StrictHeaders:   false,
		LegacyRedirects: true,
		LogLevel:        slog.LevelInfo,
		ShutdownTimeout: 5 * time.Second,
		ServiceName:     "calcd",
	}
}

// Load reads the process environment on top of Default.
func Load() (Config, error) {
	return LoadFrom(os.LookupEnv)
}

func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CALCD_HOST"); ok {
		cfg.Host = v
	}
	if v, ok := lookup("CALCD_NAME"); ok && v != "" {
		cfg.Name = v
	}
	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.OTLPEndpoint = v
	}

	if v, ok := lookup("CALCD_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: CALCD_PORT %q is not an integer", ErrInvalid, v)
		}
		if port < 0 || port > 65535 {
			return cfg, fmt.Errorf("%w: CALCD_PORT %d out of range", ErrInvalid, port)
		}
		cfg.Port = port
	}

	for name, target := range map[string]*bool{
		"CALCD_ALLOW_HEAD":       &cfg.AllowHead,
		"CALCD_STRICT_HEADERS":   &cfg.StrictHeaders,
		"CALCD_LEGACY_REDIRECTS": &cfg.LegacyRedirects,
	} {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s %q is not a boolean", ErrInvalid, name, v)
		}
		*target = b
	}

	if v, ok := lookup("CALCD_LOG_LEVEL"); ok {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("%w: CALCD_LOG_LEVEL %q", ErrInvalid, v)
		}
	}

	if v, ok := lookup("CALCD_SHUTDOWN_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil || timeout < 0 {
			return cfg, fmt.Errorf("%w: CALCD_SHUTDOWN_TIMEOUT %q", ErrInvalid, v)
		}
		cfg.ShutdownTimeout = timeout
	}

	return cfg, nil
}

func (cfg Config) Addr() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// DefaultHost resolves the machine's hostname to its first address, falling
// back to the loopback address.
func DefaultHost() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}

	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}

	return addrs[0]
}
