// Package config reads the scrawl CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/aretw0/scrawl/pkg/view"
)

// Config holds the defaults the CLI applies before flags override them.
type Config struct {
	Adapter  string
	Path     string
	Sort     view.SortOption
	Locale   language.Tag
	LogLevel slog.Level

	// pathSet records that Path came from the file rather than the
	// adapter's default.
	pathSet bool
}

const (
	defaultConfigPath = "~/.config/scrawl/config.toml"
	defaultDataDir    = "~/.local/share/scrawl"
	defaultAdapter    = "fs"
)

// DefaultPath returns the expanded location of the config file.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Adapter:  defaultAdapter,
		Path:     defaultNotesPath(defaultAdapter),
		Sort:     view.SortDateCreated,
		Locale:   language.English,
		LogLevel: slog.LevelInfo,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Adapter  string `toml:"adapter"`
		Path     string `toml:"path"`
		Sort     string `toml:"sort"`
		Locale   string `toml:"locale"`
		LogLevel string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if adapter := strings.TrimSpace(raw.Adapter); adapter != "" {
		cfg.Adapter = adapter
	}

	if p := strings.TrimSpace(raw.Path); p != "" {
		cfg.Path = ExpandNotesPath(p)
		cfg.pathSet = true
	} else {
		cfg.Path = defaultNotesPath(cfg.Adapter)
	}

	if s := strings.TrimSpace(raw.Sort); s != "" {
		if cfg.Sort, err = view.ParseSortOption(s); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if l := strings.TrimSpace(raw.Locale); l != "" {
		if cfg.Locale, err = language.Parse(l); err != nil {
			return Config{}, fmt.Errorf("parse config: locale %q: %w", l, err)
		}
	}

	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(lvl)); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	return cfg, nil
}

// NotesPath returns where adapter should keep the notes: the configured
// path when the file sets one, otherwise that adapter's default, so that
// overriding the adapter never points it at the other adapter's file.
func (c Config) NotesPath(adapter string) string {
	if c.pathSet {
		return c.Path
	}
	return defaultNotesPath(adapter)
}

// ExpandNotesPath expands ~ in a notes location. SQLite special DSNs
// (":memory:", "file:...") are returned unchanged.
func ExpandNotesPath(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return mustExpand(path)
}

func defaultNotesPath(adapter string) string {
	if adapter == "sqlite" {
		return mustExpand(defaultDataDir + "/notes.db")
	}
	return mustExpand(defaultDataDir + "/notes.json")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
