package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/pipeline"
	"github.com/matzehuels/constellation/pkg/render"
)

// renderCommand creates the render command for drawing a computed layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		graphviz bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a constellation layout to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a constellation layout to SVG, PNG, PDF, JSON or DOT.

The input is a layout.json file produced by 'layout'. Multiple formats can be
requested at once with -f svg,png,dot; each is written next to the output base
path. PNG and PDF need rsvg-convert on the PATH.

--graphviz additionally renders the DOT output through Graphviz (neato with
pinned positions) as <base>.neato.svg.`,
		Args: cobra.ExactArgs(1),
	}
	rf := bindRenderFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return c.runRender(cmd, args[0], rf, output, noCache, graphviz)
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: derived from input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&graphviz, "graphviz", false, "also render through Graphviz neato")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, rf *renderFlags, output string, noCache, graphviz bool) error {
	ctx := cmd.Context()

	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.PipelineOptions()
	if l.Style != "" {
		opts.Style = l.Style
	}
	rf.apply(cmd, &opts)
	opts.Formats = c.availableFormats(opts.Formats)
	opts.Logger = c.Logger
	if len(opts.Formats) == 0 && !graphviz {
		return fmt.Errorf("no renderable formats requested")
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	base := basePath(output, input)
	var written []string

	if len(opts.Formats) > 0 {
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
		spinner.Start()
		artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()

		paths, err := writeArtifacts(artifacts, opts.Formats, base)
		if err != nil {
			return err
		}
		written = append(written, paths...)
		c.Logger.Debug("rendered", "formats", opts.Formats, "cached", cacheHit)
	}

	if graphviz {
		l.Style = opts.Style
		svg, err := render.RenderDOTSVG(ctx, render.ToDOT(l))
		if err != nil {
			return fmt.Errorf("graphviz: %w", err)
		}
		path := base + ".neato.svg"
		if err := os.WriteFile(path, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", plural(len(written), "file"))
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// availableFormats drops PNG and PDF with a warning when rsvg-convert is
// missing.
func (c *CLI) availableFormats(formats []string) []string {
	if render.HasConverter() {
		return formats
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			printWarning("Skipping %s: rsvg-convert not found", f)
			continue
		}
		out = append(out, f)
	}
	return out
}

// basePath derives the output base path. With no output it strips
// ".layout.json" (or the extension) from input; a known format extension
// on output is stripped too.
func basePath(output, input string) string {
	if output == "" {
		if strings.HasSuffix(input, ".layout.json") {
			return strings.TrimSuffix(input, ".layout.json")
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each format to base.format in request order and
// returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if slices.Contains(paths, path) {
			continue
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
