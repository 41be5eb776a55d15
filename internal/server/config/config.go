// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the library sync server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - LockTimeout: how long a mutation waits for the per-library lock.
//     Zero waits until the request context ends.
//   - MetricsAddr: bind address of the Prometheus /metrics endpoint.
//     Empty disables it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDSN      string
	LockTimeout      time.Duration
	MetricsAddr      string
	LogLevel         string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.LockTimeout = 5 * time.Second
	c.MetricsAddr = ":9090"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
