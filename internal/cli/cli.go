// Package cli implements the constellation command-line interface.
//
// The CLI wraps the pipeline in a handful of cobra commands: fetch pulls
// the topic graph from the content API, layout places the stars, render
// draws them, and build runs all three at once. serve exposes the same
// pipeline over HTTP and inspect browses a constellation in the terminal.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through a
// shared charmbracelet/log logger. Human-facing status lines are printed
// to stdout with lipgloss styling.
//
// # Configuration
//
// Every command reads the TOML file named by --config (default
// ~/.config/constellation/config.toml). Flags override the file.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/internal/config"
	"github.com/matzehuels/constellation/pkg/buildinfo"
	"github.com/matzehuels/constellation/pkg/cache"
	"github.com/matzehuels/constellation/pkg/pipeline"
	"github.com/matzehuels/constellation/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "constellation"

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

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Constellation lays out journal topics as a night sky",
		Long:         `Constellation turns the topics of a thought journal into a star map: frequent words become bright stars, co-occurring words are joined by faint lines, and a deterministic force-directed layout keeps the picture stable between runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/constellation/config.toml)")

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// resolveConfigPath returns --config or the XDG default.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file. A missing file yields the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, newKeyer(cfg.Cache), c.Logger), nil
}

func newCache(ctx context.Context, cfg cache.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if cfg.Dir == "" {
			dir, err := config.CacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			cfg.Dir = dir
		}
	}
	return cache.Open(ctx, cfg)
}

// newKeyer scopes keys by the configured prefix. Redis applies the prefix
// itself.
func newKeyer(cfg cache.Config) cache.Keyer {
	if cfg.Prefix == "" || cfg.Backend == cache.BackendRedis {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, cfg.Prefix)
}

// newSource builds the topic provider. A local file takes precedence over
// the configured content API.
func (c *CLI) newSource(cfg config.Config, runner *pipeline.Runner, file, url string) (source.Provider, error) {
	if file != "" {
		return source.NewFileProvider(file), nil
	}
	if url == "" {
		url = cfg.Source.URL
	}
	opts := []source.Option{
		source.WithLogger(c.Logger),
		source.WithHeaders(cfg.Source.Headers),
		source.WithKeyer(runner.Keyer),
	}
	if cfg.Source.TTL > 0 {
		opts = append(opts, source.WithTTL(cfg.Source.TTL))
	}
	return source.NewClient(url, runner.Cache, opts...)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
