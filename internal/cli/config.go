package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/api"
	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/layout"
)

// Environment variables that override the config file.
const (
	envCacheBackend = "LAYOUTKIT_CACHE_BACKEND"
	envCacheURL     = "LAYOUTKIT_CACHE_URL"
)

// =============================================================================
// Config File
// =============================================================================

// Config is the contents of config.toml.
//
//	[log]
//	level = "info"
//
//	[cache]
//	backend = "bolt"
//	ttl = "12h"
//
//	[server]
//	addr = ":9090"
//
//	[text]
//	char_width = 8
//	line_height = 16
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Text   TextConfig   `toml:"text"`
}

// LogConfig sets the default log level (debug, info, warn, error).
type LogConfig struct {
	Level string `toml:"level"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Backend    string   `toml:"backend"`
	Dir        string   `toml:"dir,omitempty"`
	URL        string   `toml:"url,omitempty"`
	Database   string   `toml:"database,omitempty"`
	Collection string   `toml:"collection,omitempty"`
	TTL        duration `toml:"ttl"`
}

// ServerConfig configures `layoutkit serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
	Font string `toml:"font,omitempty"`
}

// TextConfig holds the text-block metrics used by `measure` and the API.
type TextConfig struct {
	CharWidth  float64 `toml:"char_width"`
	LineHeight float64 `toml:"line_height"`
	Cells      bool    `toml:"cells"` // count display cells instead of runes
}

func (t TextConfig) metrics() layout.TextMetrics {
	return layout.TextMetrics{CharWidth: t.CharWidth, LineHeight: t.LineHeight, Cells: t.Cells}
}

func (c CacheConfig) cacheConfig() cache.Config {
	return cache.Config{
		Backend:    c.Backend,
		Dir:        c.Dir,
		URL:        c.URL,
		Database:   c.Database,
		Collection: c.Collection,
	}
}

// duration is a time.Duration written as a string ("24h") in TOML.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// =============================================================================
// Loading
// =============================================================================

func defaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Cache:  CacheConfig{Backend: cache.BackendFile, TTL: duration{cache.TTLLayout}},
		Server: ServerConfig{Addr: api.DefaultAddr},
		Text: TextConfig{
			CharWidth:  layout.DefaultTextMetrics.CharWidth,
			LineHeight: layout.DefaultTextMetrics.LineHeight,
		},
	}
}

// configFilePath returns the default location of config.toml.
func configFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// loadConfig reads the config file at path over the defaults and applies
// environment overrides. An empty path means the default location, which
// may be absent; an explicit path must exist.
func loadConfig(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configFilePath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if v := getenv(envCacheBackend); v != "" {
		cfg.Cache.Backend = v
	}
	if v := getenv(envCacheURL); v != "" {
		cfg.Cache.URL = v
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if !slices.Contains(cache.Backends, c.Cache.Backend) {
		return fmt.Errorf("cache.backend %q: want one of %s", c.Cache.Backend, strings.Join(cache.Backends, ", "))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Cache.TTL.Duration < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	if c.Text.CharWidth < 0 || c.Text.LineHeight < 0 {
		return fmt.Errorf("text metrics cannot be negative")
	}
	return nil
}

func (c Config) level() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return LogInfo
	}
	return level
}

// =============================================================================
// Command
// =============================================================================

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := configFilePath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(c.Config)
		},
	})

	return cmd
}
