// Package config loads the constellation TOML configuration.
//
// A configuration file is optional. Load starts from [Default] and overlays
// whatever the file sets, so a file containing only
//
//	[physics]
//	repulsion = 2400.0
//
// changes that one constant and keeps every other default. Command-line
// flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/constellation/pkg/cache"
	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

const appName = "constellation"

// Config is the full file layout.
type Config struct {
	Server  ServerConfig `toml:"server"`
	Source  SourceConfig `toml:"source"`
	Cache   cache.Config `toml:"cache"`
	Layout  LayoutConfig `toml:"layout"`
	Physics force.Config `toml:"physics"`
	Render  RenderConfig `toml:"render"`
}

// ServerConfig configures `constellation serve`.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	AllowedOrigins  []string      `toml:"allowed_origins"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// SourceConfig points at the topic provider.
type SourceConfig struct {
	// URL is the base URL of the content API.
	URL string `toml:"url"`
	// Headers are sent with every request (for example an Authorization
	// header for a protected deployment).
	Headers map[string]string `toml:"headers"`
	// TTL bounds how long a fetched response is served from cache.
	TTL time.Duration `toml:"ttl"`
}

// LayoutConfig holds the canvas and seeding defaults.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Seeder string  `toml:"seeder"`
	Salt   uint64  `toml:"salt"`
}

// RenderConfig holds rendering defaults.
type RenderConfig struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	Labels  bool     `toml:"labels"`
	Animate bool     `toml:"animate"`
	Scale   float64  `toml:"scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Source: SourceConfig{
			URL: "http://localhost:8000",
			TTL: cache.TTLHTTP,
		},
		Cache: cache.Config{
			Backend: cache.BackendFile,
			Dir:     defaultCacheDir(),
		},
		Layout: LayoutConfig{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Seeder: pipeline.DefaultSeeder,
		},
		Physics: force.DefaultConfig(),
		Render: RenderConfig{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
			Labels:  true,
			Animate: true,
			Scale:   pipeline.DefaultScale,
		},
	}
}

// DefaultPath returns the XDG location of the config file
// (~/.config/constellation/config.toml).
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the XDG cache directory (~/.cache/constellation).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func defaultCacheDir() string {
	dir, err := CacheDir()
	if err != nil {
		return ""
	}
	return dir
}

// Load reads path over the defaults. A missing file is not an error and
// yields Default(). Unknown keys are rejected so typos do not go unnoticed.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, cerrors.New(cerrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "server.addr cannot be empty")
	}
	if c.Server.ShutdownTimeout < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "server.shutdown_timeout cannot be negative")
	}
	if c.Source.URL != "" {
		if err := cerrors.ValidateURL(c.Source.URL); err != nil {
			return fmt.Errorf("source.url: %w", err)
		}
	}
	if c.Source.TTL < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "source.ttl cannot be negative")
	}
	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo, cache.BackendSQLite:
	default:
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	if err := pipeline.ValidateDimensions(c.Layout.Width, c.Layout.Height, c.Physics); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := pipeline.ValidateSeeder(c.Layout.Seeder); err != nil {
		return fmt.Errorf("layout.seeder: %w", err)
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return fmt.Errorf("render.style: %w", err)
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return fmt.Errorf("render.formats: %w", err)
	}
	if c.Render.Scale < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidConfig, "render.scale cannot be negative")
	}
	return nil
}

// Write encodes c to path, creating parent directories as needed.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// PipelineOptions maps the layout, physics and render sections onto
// pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Layout.Width,
		Height:  c.Layout.Height,
		Seeder:  c.Layout.Seeder,
		Salt:    c.Layout.Salt,
		Physics: c.Physics,
		Formats: append([]string(nil), c.Render.Formats...),
		Style:   c.Render.Style,
		Labels:  c.Render.Labels,
		Animate: c.Render.Animate,
		Scale:   c.Render.Scale,
	}
}
