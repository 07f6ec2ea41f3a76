package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/internal/config"
	"github.com/matzehuels/constellation/internal/server"
	"github.com/matzehuels/constellation/pkg/observability"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		file    string
		watch   bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve constellations over HTTP",
		Long: `Serve constellations over HTTP.

The server fetches topics from the content API on demand and answers with
layout JSON or rendered SVG. Prometheus metrics are exposed on /metrics.

With --watch the config file is reloaded on change and a new [physics]
section takes effect for the next request without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, file, watch, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&file, "file", "", "serve topics from a local file instead of the API")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload physics when the config file changes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, file string, watch, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	runner.Source, err = c.newSource(cfg, runner, file, "")
	if err != nil {
		return err
	}

	backend := cfg.Cache.Backend
	if noCache {
		backend = ""
	}
	srv := server.New(server.Options{
		Runner:         runner,
		Logger:         c.Logger,
		Defaults:       cfg.PipelineOptions(),
		CacheBackend:   backend,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	m := srv.Metrics()
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
	defer observability.Reset()

	if watch {
		path, err := c.resolveConfigPath()
		if err != nil {
			return err
		}
		go c.watchPhysics(ctx, srv, path)
	}

	printInfo("Listening on %s", addr)
	printDetail("Source: %s", runner.Source.Name())
	return srv.ListenAndServe(ctx, addr, cfg.Server.ShutdownTimeout)
}

// watchPhysics pushes the [physics] section of every valid reload into srv.
// Invalid reloads are logged and the running preset is kept.
func (c *CLI) watchPhysics(ctx context.Context, srv *server.Server, path string) {
	c.Logger.Info("watching config", "path", path)
	err := config.Watch(ctx, path, func(cfg config.Config, err error) {
		if err != nil {
			c.Logger.Warn("config reload rejected", "err", err)
			return
		}
		if err := srv.SetPhysics(cfg.Physics); err != nil {
			c.Logger.Warn("physics rejected", "err", err)
		}
	})
	if err != nil {
		c.Logger.Error("config watch stopped", "err", err)
	}
}
