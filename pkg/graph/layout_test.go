package graph

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{
		Width:      800,
		Height:     480,
		Style:      StyleNight,
		Seeder:     SeederHash,
		Iterations: 120,
		Positions:  PositionMap{"ocean": {X: 400, Y: 240}, "tide": {X: 120.5, Y: 60}},
		Topics:     []Topic{{Word: "ocean", Count: 2}, {Word: "tide", Count: 1}},
		Edges:      []Edge{{Source: "ocean", Target: "tide", Weight: 1}},
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}

	if got.Positions["tide"] != (Point{X: 120.5, Y: 60}) {
		t.Errorf("tide = %+v, want {120.5 60}", got.Positions["tide"])
	}
	if got.Center() != (Point{X: 400, Y: 240}) {
		t.Errorf("Center() = %+v", got.Center())
	}
	if g := got.Graph(); len(g.Topics) != 2 || len(g.Edges) != 1 {
		t.Errorf("Graph() = %+v", g)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr string
	}{
		{"InvalidJSON", `{`, "unmarshal layout"},
		{"ZeroWidth", `{"width":0,"height":10,"positions":{}}`, "dimensions"},
		{"MissingPosition", `{"width":10,"height":10,"positions":{},"topics":[{"word":"a","count":1}]}`, `"a"`},
		{"Empty", `{"width":10,"height":10}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.json))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if l.Positions == nil {
					t.Error("Positions should default to an empty map")
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
