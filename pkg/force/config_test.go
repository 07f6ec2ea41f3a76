package force

import (
	"math"
	"testing"

	"github.com/matzehuels/constellation/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	want := Config{
		Repulsion:   1800,
		Attraction:  0.015,
		Gravity:     0.02,
		Damping:     0.88,
		MinDistance: 40,
		MaxWeight:   5,
		Padding:     56,
		Iterations:  120,
	}
	if cfg != want {
		t.Errorf("DefaultConfig() = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NegativeRepulsion", func(c *Config) { c.Repulsion = -1 }},
		{"NaNAttraction", func(c *Config) { c.Attraction = math.NaN() }},
		{"InfGravity", func(c *Config) { c.Gravity = math.Inf(1) }},
		{"ZeroDamping", func(c *Config) { c.Damping = 0 }},
		{"DampingAboveOne", func(c *Config) { c.Damping = 1.2 }},
		{"NegativePadding", func(c *Config) { c.Padding = -5 }},
		{"NegativeMinDistance", func(c *Config) { c.MinDistance = -1 }},
		{"ZeroIterations", func(c *Config) { c.Iterations = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestConfigFits(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Fits(800, 480) {
		t.Error("800x480 should fit")
	}
	if !cfg.Fits(112, 112) {
		t.Error("112x112 should fit with zero usable area")
	}
	if cfg.Fits(100, 480) {
		t.Error("100 wide should not fit padding 56")
	}
}
