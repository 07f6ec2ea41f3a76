package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// fetchCommand creates the fetch command, which downloads the topic graph
// from the content API.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		url     string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the topic graph from the content API",
		Long: `Download the topic graph from the content API.

The topics endpoint (/analytics/thoughts/topics) is queried at the URL from
--url or the [source] section of the config file. Responses are cached; use
--refresh to bypass the cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd.Context(), url, output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "topics.json", "output file")
	cmd.Flags().StringVar(&url, "url", "", "content API base URL (overrides config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, url, output string, refresh, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	runner.Source, err = c.newSource(cfg, runner, "", url)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Fetching topics...")
	spinner.Start()
	prog := newProgress(c.Logger)

	g, cached, err := runner.Fetch(ctx, pipeline.Options{Refresh: refresh})
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return err
	}
	spinner.Stop()
	prog.done("fetched topics", "source", runner.Source.Name(), "cached", cached)

	if err := graph.WriteGraphFile(g, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Topics fetched")
	printFile(output)
	printStats(g.Stats(), cached)
	printNewline()
	printNextStep("Layout", appName+" layout "+output)
	return nil
}
