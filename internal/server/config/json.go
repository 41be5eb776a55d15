package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/libsync/internal/flagx"
	"github.com/dmitrijs2005/libsync/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept both "5s"
// and integer nanoseconds. Pointer fields tell an absent key from an
// empty value, so a partial file keeps the defaults it does not mention.
type JsonConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	LockTimeout      *timex.Duration `json:"lock_timeout"`
	MetricsAddr      *string         `json:"metrics_addr"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c or -config.
// Without the flag nothing is loaded. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.ConfigFile()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LockTimeout != nil {
		config.LockTimeout = c.LockTimeout.Duration
	}
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
}
