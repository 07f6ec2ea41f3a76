// Package pipeline provides the core constellation pipeline.
//
// This package implements the complete fetch → layout → render pipeline that
// is used by both the CLI and the HTTP service. By centralizing this logic,
// every entry point validates, caches and logs the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Load the topic graph from a [source.Provider]
//  2. Layout: Place every topic with the force-directed engine
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	runner.Source = client
//	result, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	g, cached, err := runner.Fetch(ctx, opts)
//	layout, err := runner.GenerateLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/constellation/pkg/cache"
	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/graph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 480.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = graph.StyleNight

// DefaultSeeder is the default seeder name.
const DefaultSeeder = graph.SeederHash

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	graph.StyleNight:  true,
	graph.StyleSimple: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the constellation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Refresh bool `json:"refresh,omitempty"`

	// Layout options
	Width   float64      `json:"width,omitempty"`
	Height  float64      `json:"height,omitempty"`
	Seeder  string       `json:"seeder,omitempty"`
	Salt    uint64       `json:"salt,omitempty"` // Only used by the splitmix seeder
	Physics force.Config `json:"physics"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Selected string   `json:"selected,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Animate  bool     `json:"animate,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the fetched topic graph.
	Graph graph.Graph

	// GraphHash is the content hash of the canonical graph.
	GraphHash string

	// Layout contains the positioned constellation.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TopicCount int
	EdgeCount  int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the topic graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return cerrors.New(cerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return cerrors.New(cerrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: night, simple)", style)
	}
	return nil
}

// ValidateSeeder checks that a seeder name is known.
func ValidateSeeder(name string) error {
	_, err := force.SeederByName(name)
	return err
}

// ValidateDimensions checks that the canvas is positive and large enough to
// hold the physics padding on every side.
func ValidateDimensions(width, height float64, physics force.Config) error {
	if err := cerrors.ValidateDimensions(width, height); err != nil {
		return err
	}
	if !physics.Fits(width, height) {
		return cerrors.New(cerrors.ErrCodeInvalidDimensions,
			"canvas %gx%g is smaller than twice the padding (%g)", width, height, physics.Padding)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
// A zero Physics value is replaced by force.DefaultConfig.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Seeder == "" {
		o.Seeder = DefaultSeeder
	}
	if o.Physics == (force.Config{}) {
		o.Physics = force.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Physics.Validate(); err != nil {
		return err
	}
	if err := ValidateDimensions(o.Width, o.Height, o.Physics); err != nil {
		return err
	}
	return ValidateSeeder(o.Seeder)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.Selected != "" {
		if err := cerrors.ValidateWord(o.Selected); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// ValidateAndSetDefaults checks and applies defaults for the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// NewSeeder returns the seeder selected by Seeder and Salt.
func (o *Options) NewSeeder() (force.Seeder, error) {
	s, err := force.SeederByName(o.Seeder)
	if err != nil {
		return nil, err
	}
	if sm, ok := s.(force.SplitMixSeeder); ok {
		sm.Salt = o.Salt
		return sm, nil
	}
	return s, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	seeder := o.Seeder
	if seeder == graph.SeederSplitMix && o.Salt != 0 {
		seeder = fmt.Sprintf("%s:%d", seeder, o.Salt)
	}
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		Seeder:  seeder,
		Physics: o.Physics,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Selected: o.Selected,
		Labels:   o.Labels,
		Animate:  o.Animate,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
