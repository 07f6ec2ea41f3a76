package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/internal/config"
	"github.com/matzehuels/constellation/pkg/pipeline"
)

// Flags are registered with the built-in defaults so --help shows them, but
// only flags the user actually set override the config file.

// layoutFlags binds canvas, seeding and physics flags.
type layoutFlags struct {
	opts pipeline.Options
}

func bindLayoutFlags(cmd *cobra.Command) *layoutFlags {
	f := &layoutFlags{}
	d := config.Default()
	fl := cmd.Flags()

	fl.Float64Var(&f.opts.Width, "width", d.Layout.Width, "canvas width")
	fl.Float64Var(&f.opts.Height, "height", d.Layout.Height, "canvas height")
	fl.StringVar(&f.opts.Seeder, "seeder", d.Layout.Seeder, "initial placement: hash (default), splitmix")
	fl.Uint64Var(&f.opts.Salt, "salt", 0, "salt for the splitmix seeder")

	p := &f.opts.Physics
	fl.Float64Var(&p.Repulsion, "repulsion", d.Physics.Repulsion, "pairwise repulsion constant")
	fl.Float64Var(&p.Attraction, "attraction", d.Physics.Attraction, "edge spring constant")
	fl.Float64Var(&p.Gravity, "gravity", d.Physics.Gravity, "pull toward the canvas center")
	fl.Float64Var(&p.Damping, "damping", d.Physics.Damping, "velocity damping per iteration, in (0, 1]")
	fl.Float64Var(&p.Padding, "padding", d.Physics.Padding, "minimum distance from the canvas edge")
	fl.IntVar(&p.Iterations, "iterations", d.Physics.Iterations, "simulation steps")
	return f
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	set := func(name string, fn func()) {
		if fl.Changed(name) {
			fn()
		}
	}
	set("width", func() { opts.Width = f.opts.Width })
	set("height", func() { opts.Height = f.opts.Height })
	set("seeder", func() { opts.Seeder = f.opts.Seeder })
	set("salt", func() { opts.Salt = f.opts.Salt })
	set("repulsion", func() { opts.Physics.Repulsion = f.opts.Physics.Repulsion })
	set("attraction", func() { opts.Physics.Attraction = f.opts.Physics.Attraction })
	set("gravity", func() { opts.Physics.Gravity = f.opts.Physics.Gravity })
	set("damping", func() { opts.Physics.Damping = f.opts.Physics.Damping })
	set("padding", func() { opts.Physics.Padding = f.opts.Physics.Padding })
	set("iterations", func() { opts.Physics.Iterations = f.opts.Physics.Iterations })
}

// renderFlags binds output format and appearance flags.
type renderFlags struct {
	formats string
	opts    pipeline.Options
}

func bindRenderFlags(cmd *cobra.Command) *renderFlags {
	f := &renderFlags{}
	d := config.Default()
	fl := cmd.Flags()

	fl.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	fl.StringVar(&f.opts.Style, "style", d.Render.Style, "visual style: night (default), simple")
	fl.StringVar(&f.opts.Selected, "selected", "", "highlight this star and its neighbours")
	fl.BoolVar(&f.opts.Labels, "labels", d.Render.Labels, "label every star")
	fl.BoolVar(&f.opts.Animate, "animate", d.Render.Animate, "twinkle animation (night style)")
	fl.Float64Var(&f.opts.Scale, "scale", d.Render.Scale, "PNG scale factor")
	return f
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fl.Changed("style") {
		opts.Style = f.opts.Style
	}
	if fl.Changed("selected") {
		opts.Selected = f.opts.Selected
	}
	if fl.Changed("labels") {
		opts.Labels = f.opts.Labels
	}
	if fl.Changed("animate") {
		opts.Animate = f.opts.Animate
	}
	if fl.Changed("scale") {
		opts.Scale = f.opts.Scale
	}
}
