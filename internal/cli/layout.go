package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/graph"
)

// layoutCommand creates the layout command for placing stars.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [topics.json]",
		Short: "Compute star positions for a topic graph",
		Long: `Compute star positions for a topic graph.

The layout command takes a topics.json file (produced by 'fetch' or exported
from the content API) and runs the force-directed simulation. The output is a
layout.json file that 'render' turns into SVG, PNG, PDF or DOT.

The same topics and settings always produce the same positions. Results are
cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
	}
	lf := bindLayoutFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runLayout(cmd, args[0], lf, output, noCache)
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, input string, lf *layoutFlags, output string, noCache bool) error {
	ctx := cmd.Context()

	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load topics %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.PipelineOptions()
	lf.apply(cmd, &opts)
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d stars...", len(g.Topics)))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if err := ctx.Err(); err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = layoutPath(input)
	}
	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(g.Stats(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// layoutPath derives "<base>.layout.json" from a topics file name.
func layoutPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
}
