package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Positioned Constellation
// =============================================================================

// Layout bundles a PositionMap with the graph and canvas it was computed for,
// so it can be rendered, cached or served later without recomputation.
type Layout struct {
	Width      float64     `json:"width" bson:"width"`
	Height     float64     `json:"height" bson:"height"`
	Style      string      `json:"style,omitempty" bson:"style,omitempty"`
	Seeder     string      `json:"seeder,omitempty" bson:"seeder,omitempty"`
	Iterations int         `json:"iterations,omitempty" bson:"iterations,omitempty"`
	Positions  PositionMap `json:"positions" bson:"positions"`
	Topics     []Topic     `json:"topics" bson:"topics"`
	Edges      []Edge      `json:"edges,omitempty" bson:"edges,omitempty"`
	Entries    []Entry     `json:"entries,omitempty" bson:"entries,omitempty"`
}

// Graph returns the topic graph carried by the layout.
func (l Layout) Graph() Graph {
	return Graph{Topics: l.Topics, Edges: l.Edges, Entries: l.Entries}
}

// Center returns the canvas center.
func (l Layout) Center() Point {
	return Point{X: l.Width / 2, Y: l.Height / 2}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the canvas is positive and every topic has a position.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout dimensions must be positive, got %gx%g", l.Width, l.Height)
	}
	for _, t := range l.Topics {
		if _, ok := l.Positions[t.Word]; !ok {
			return Layout{}, fmt.Errorf("layout missing position for %q", t.Word)
		}
	}
	if l.Positions == nil {
		l.Positions = PositionMap{}
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
