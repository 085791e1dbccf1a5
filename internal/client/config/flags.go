package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/jourin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-s string   local store backend: sqlite, diskv or memory
//	-p string   local store path
//
// Only the flags listed above are taken from os.Args (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-s", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "local store backend (sqlite|diskv|memory)")
	fs.StringVar(&cfg.StorePath, "p", cfg.StorePath, "local store path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	switch cfg.StoreBackend {
	case StoreSQLite, StoreDiskv, StoreMemory:
	default:
		panic(fmt.Sprintf("unknown store backend %q", cfg.StoreBackend))
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
