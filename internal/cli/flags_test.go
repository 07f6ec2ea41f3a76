package cli

import (
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/constellation/internal/config"
)

func TestLayoutFlagsOnlyOverrideChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	lf := bindLayoutFlags(cmd)
	if err := cmd.ParseFlags([]string{"--width", "500", "--damping", "0.5", "--seeder", "splitmix", "--salt", "7"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	opts := config.Default().PipelineOptions()
	opts.Physics.Repulsion = 99
	opts.Height = 300
	lf.apply(cmd, &opts)

	if opts.Width != 500 {
		t.Errorf("Width = %v, want 500", opts.Width)
	}
	if opts.Physics.Damping != 0.5 {
		t.Errorf("Damping = %v, want 0.5", opts.Physics.Damping)
	}
	if opts.Seeder != "splitmix" || opts.Salt != 7 {
		t.Errorf("Seeder, Salt = %q, %d; want splitmix, 7", opts.Seeder, opts.Salt)
	}
	if opts.Physics.Repulsion != 99 {
		t.Errorf("unset --repulsion overrode config: %v", opts.Physics.Repulsion)
	}
	if opts.Height != 300 {
		t.Errorf("unset --height overrode config: %v", opts.Height)
	}
}

func TestRenderFlagsOnlyOverrideChanged(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	rf := bindRenderFlags(cmd)
	if err := cmd.ParseFlags([]string{"-f", "svg,dot", "--labels=false", "--selected", "ocean"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	opts := config.Default().PipelineOptions()
	opts.Style = "simple"
	rf.apply(cmd, &opts)

	if !slices.Equal(opts.Formats, []string{"svg", "dot"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Labels {
		t.Error("Labels should be false")
	}
	if opts.Selected != "ocean" {
		t.Errorf("Selected = %q", opts.Selected)
	}
	if opts.Style != "simple" {
		t.Errorf("unset --style overrode config: %q", opts.Style)
	}
	if !opts.Animate {
		t.Error("unset --animate overrode config")
	}
}
