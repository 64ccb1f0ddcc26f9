package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutkit/pkg/buildinfo"
	"github.com/matzehuels/layoutkit/pkg/cache"
	"github.com/matzehuels/layoutkit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "layoutkit"

	// configFile is the name of the config file inside the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "layoutkit sizes and aligns container layouts",
		Long: `layoutkit lays out tree-structured scenes: it distributes each container's
extent among fixed, proportional and stretching children, keeps that
distribution live across resizes, and reports the resulting geometry.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/layoutkit/config.toml)")

	root.AddCommand(c.applyCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.measureCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context. --verbose wins over the configured level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(c.configPath, os.Getenv)
	if err != nil {
		return err
	}
	c.Config = cfg

	level := cfg.level()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. An unreachable remote
// cache degrades to no caching instead of failing the command.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		if !cache.IsRetryable(err) {
			return nil, err
		}
		c.Logger.Warn("cache unavailable, continuing without it", "backend", c.Config.Cache.Backend, "err", err)
		store = cache.NewNullCache()
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.Config.Cache
	if cc.Dir == "" && (cc.Backend == "" || cc.Backend == cache.BackendFile || cc.Backend == cache.BackendBolt) {
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		cc.Dir = dir
	}
	return cache.Open(ctx, cc.cacheConfig())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/layoutkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/layoutkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
