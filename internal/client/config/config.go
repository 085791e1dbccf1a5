package config

import "time"

const (
	StoreSQLite = "sqlite"
	StoreDiskv  = "diskv"
	StoreMemory = "memory"
)

// Config holds runtime settings for the jourin CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client checks that the server is reachable.
//   - StoreBackend: local storage engine, one of sqlite, diskv, memory.
//   - StorePath: SQLite file or diskv directory; unused for memory.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	StoreBackend        string
	StorePath           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.StoreBackend = StoreSQLite
	c.StorePath = "jourin.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
