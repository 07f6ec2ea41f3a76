package force

import (
	"math"

	"github.com/matzehuels/constellation/pkg/errors"
)

// Default physics constants. Together they form the standard preset returned
// by DefaultConfig.
const (
	DefaultRepulsion   = 1800.0
	DefaultAttraction  = 0.015
	DefaultGravity     = 0.02
	DefaultDamping     = 0.88
	DefaultMinDistance = 40.0
	DefaultMaxWeight   = 5.0
	DefaultPadding     = 56.0
	DefaultIterations  = 120
)

// Config holds the tunable constants of the simulation.
//
// The zero value is not useful; start from DefaultConfig and override
// individual fields.
type Config struct {
	// Repulsion is the inverse-square constant pushing every pair apart.
	Repulsion float64 `toml:"repulsion" json:"repulsion"`
	// Attraction scales the spring force along edges.
	Attraction float64 `toml:"attraction" json:"attraction"`
	// Gravity pulls every node toward the canvas center.
	Gravity float64 `toml:"gravity" json:"gravity"`
	// Damping multiplies velocity once per iteration.
	Damping float64 `toml:"damping" json:"damping"`
	// MinDistance is the rest length below which edges exert no pull.
	MinDistance float64 `toml:"min_distance" json:"min_distance"`
	// MaxWeight caps the influence of a single edge.
	MaxWeight float64 `toml:"max_weight" json:"max_weight"`
	// Padding keeps nodes this far from every canvas side.
	Padding float64 `toml:"padding" json:"padding"`
	// Iterations is the fixed number of simulation steps.
	Iterations int `toml:"iterations" json:"iterations"`
}

// DefaultConfig returns the standard preset.
func DefaultConfig() Config {
	return Config{
		Repulsion:   DefaultRepulsion,
		Attraction:  DefaultAttraction,
		Gravity:     DefaultGravity,
		Damping:     DefaultDamping,
		MinDistance: DefaultMinDistance,
		MaxWeight:   DefaultMaxWeight,
		Padding:     DefaultPadding,
		Iterations:  DefaultIterations,
	}
}

// Validate reports the first constant that cannot produce a sensible layout.
// Layout never calls Validate; entry points that accept user-supplied
// physics do.
func (c Config) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"repulsion", c.Repulsion},
		{"attraction", c.Attraction},
		{"gravity", c.Gravity},
		{"min_distance", c.MinDistance},
		{"max_weight", c.MaxWeight},
		{"padding", c.Padding},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) || f.val < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite non-negative number, got %g", f.name, f.val)
		}
	}
	if math.IsNaN(c.Damping) || c.Damping <= 0 || c.Damping > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "damping must be in (0, 1], got %g", c.Damping)
	}
	if c.Iterations <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be positive, got %d", c.Iterations)
	}
	return nil
}

// Fits reports whether the padded rectangle is non-empty for a canvas of the
// given size.
func (c Config) Fits(width, height float64) bool {
	return width-2*c.Padding >= 0 && height-2*c.Padding >= 0
}
