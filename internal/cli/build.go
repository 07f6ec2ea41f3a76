package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/internal/config"
	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/observability"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// buildCommand creates the build command, which runs fetch, layout and
// render in one go.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		file    string
		url     string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch, lay out and render a constellation in one step",
		Long: `Fetch, lay out and render a constellation in one step.

Topics come from the content API (--url or the [source] config section) or
from a local topics.json with --file. The layout is saved as
<output>.layout.json alongside the rendered formats.`,
		Args: cobra.NoArgs,
	}
	lf := bindLayoutFlags(cmd)
	rf := bindRenderFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		opts := cfg.PipelineOptions()
		lf.apply(cmd, &opts)
		rf.apply(cmd, &opts)
		opts.Formats = c.availableFormats(opts.Formats)
		opts.Refresh = refresh
		opts.Logger = c.Logger
		return c.runBuild(cmd.Context(), buildParams{
			cfg:     cfg,
			file:    file,
			url:     url,
			output:  output,
			noCache: noCache,
			opts:    opts,
		})
	}

	cmd.Flags().StringVarP(&output, "output", "o", "constellation", "output base path")
	cmd.Flags().StringVar(&file, "file", "", "read topics from a local file instead of the API")
	cmd.Flags().StringVar(&url, "url", "", "content API base URL (overrides config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

type buildParams struct {
	cfg     config.Config
	file    string
	url     string
	output  string
	noCache bool
	opts    pipeline.Options
}

// stageSpinner moves the spinner message along as pipeline stages start.
type stageSpinner struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h stageSpinner) OnLayoutStart(_ context.Context, stars, _ int) {
	h.spinner.Update(fmt.Sprintf("Placing %d stars...", stars))
}

func (h stageSpinner) OnRenderStart(context.Context, []string) {
	h.spinner.Update("Rendering...")
}

func (c *CLI) runBuild(ctx context.Context, p buildParams) error {
	runner, err := c.newRunner(ctx, p.cfg, p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	runner.Source, err = c.newSource(p.cfg, runner, p.file, p.url)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Fetching topics...")
	observability.SetPipelineHooks(stageSpinner{spinner: spinner})
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(ctx, p.opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	base := basePath(p.output, "")
	layoutOut := base + ".layout.json"
	if err := graph.WriteLayoutFile(result.Layout, layoutOut); err != nil {
		return fmt.Errorf("write layout %s: %w", layoutOut, err)
	}
	paths, err := writeArtifacts(result.Artifacts, p.opts.Formats, base)
	if err != nil {
		return err
	}

	cached := result.CacheInfo.FetchHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printSuccess("Constellation built")
	printFile(layoutOut)
	for _, path := range paths {
		printFile(path)
	}
	printStats(result.Graph.Stats(), cached)
	printTimings(
		stageTiming{"fetch", result.Stats.FetchTime},
		stageTiming{"layout", result.Stats.LayoutTime},
		stageTiming{"render", result.Stats.RenderTime},
	)
	printNewline()
	printNextStep("Explore", appName+" inspect "+layoutOut)
	return nil
}
