// Package config loads the console's one configuration document: the
// completable command list and the screen's attribute palette.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"console/internal/complete"
	"console/internal/screen"
)

// Completion is the `[completion]` table.
type Completion struct {
	Commands []string `toml:"commands"`
}

// ScreenPalette is the `[screen]` table, overriding the default normal and
// highlight attribute bytes.
type ScreenPalette struct {
	Normal    *byte `toml:"normal"`
	Highlight *byte `toml:"highlight"`
}

// Config is the top-level document.
type Config struct {
	Completion Completion    `toml:"completion"`
	Screen     ScreenPalette `toml:"screen"`
}

// Default returns the built-in defaults used when no file is configured:
// the compiled-in command list and the spec's normal/highlight attribute
// bytes.
func Default() Config {
	return Config{
		Completion: Completion{Commands: complete.DefaultCommands},
		Screen: ScreenPalette{
			Normal:    attrPtr(screen.AttrNormal),
			Highlight: attrPtr(screen.AttrHighlight),
		},
	}
}

func attrPtr(b byte) *byte { return &b }

// Load reads and parses path. A missing file is not an error: Default is
// returned unchanged, matching "a missing file falls back to the built-in
// defaults" in the design.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if len(cfg.Completion.Commands) == 0 {
		cfg.Completion.Commands = complete.DefaultCommands
	}
	if cfg.Screen.Normal == nil {
		cfg.Screen.Normal = attrPtr(screen.AttrNormal)
	}
	if cfg.Screen.Highlight == nil {
		cfg.Screen.Highlight = attrPtr(screen.AttrHighlight)
	}
	return cfg, nil
}
