package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvListenAddr = "SCOREBOARD_LISTEN"
	EnvDevMode    = "SCOREBOARD_DEV"
	EnvStaticDir  = "SCOREBOARD_STATIC_DIR"
)

// ServerConfig holds the operator surface settings. The device listens on :80,
// the simulator on :8080.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
	// StaticDir replaces the embedded preview page, for working on the UI.
	StaticDir string
}

// DefaultServerConfigFromEnv reads the web settings, falling back to
// defaultListenAddr. A malformed SCOREBOARD_DEV is an error rather than a
// silent default so a typo cannot open CORS unexpectedly.
func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{
		ListenAddr: strings.TrimSpace(os.Getenv(EnvListenAddr)),
		StaticDir:  strings.TrimSpace(os.Getenv(EnvStaticDir)),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if raw := strings.TrimSpace(os.Getenv(EnvDevMode)); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = dev
	}
	return cfg, nil
}
