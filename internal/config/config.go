// Package config loads the optional bpp.toml configuration file. A missing
// file is not an error; every field has a default.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file looked up next to the working directory
const DefaultFileName = "bpp.toml"

// Config holds runtime settings for the CLI and the logging stack
type Config struct {
	// LogFile is the rotating log destination; empty disables file logging
	LogFile string
	// MaxSnapshots bounds the in-memory snapshot ring
	MaxSnapshots int
	// NoColor disables colored output regardless of terminal detection
	NoColor bool
}

type fileConfig struct {
	LogFile      string `toml:"log_file"`
	MaxSnapshots int    `toml:"max_snapshots"`
	NoColor      bool   `toml:"no_color"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		LogFile:      "",
		MaxSnapshots: 10,
		NoColor:      false,
	}
}

// Load reads a TOML config file over the defaults. A nonexistent path yields
// the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config: %w", err)
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}

	if meta.IsDefined("log_file") {
		cfg.LogFile = strings.TrimSpace(raw.LogFile)
	}
	if meta.IsDefined("max_snapshots") {
		if raw.MaxSnapshots < 1 {
			return cfg, fmt.Errorf("load config %q: max_snapshots must be at least 1, got %d", path, raw.MaxSnapshots)
		}
		cfg.MaxSnapshots = raw.MaxSnapshots
	}
	if meta.IsDefined("no_color") {
		cfg.NoColor = raw.NoColor
	}
	return cfg, nil
}
