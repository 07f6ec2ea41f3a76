package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,dot,png", []string{"svg", "dot", "png"}},
		{"spaces trimmed", " svg , json ", []string{"svg", "json"}},
		{"empty items dropped", "svg,,pdf,", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"layout input", "", "out/journal.layout.json", "out/journal"},
		{"plain json input", "", "sky.json", "sky"},
		{"explicit base", "night", "sky.layout.json", "night"},
		{"format extension stripped", "night.svg", "sky.layout.json", "night"},
		{"unknown extension kept", "night.v2", "sky.layout.json", "night.v2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestLayoutPath(t *testing.T) {
	tests := map[string]string{
		"topics.json":       "topics.layout.json",
		"data/journal.json": "data/journal.layout.json",
		"noext":             "noext.layout.json",
	}
	for in, want := range tests {
		if got := layoutPath(in); got != want {
			t.Errorf("layoutPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "sky")
	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"dot": []byte("graph {}"),
	}

	paths, err := writeArtifacts(artifacts, []string{"dot", "svg", "svg", "png"}, base)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	want := []string{base + ".dot", base + ".svg"}
	if !slices.Equal(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestWriteArtifactsError(t *testing.T) {
	base := filepath.Join(t.TempDir(), "missing", "sky")
	_, err := writeArtifacts(map[string][]byte{"svg": nil}, []string{"svg"}, base)
	if err == nil {
		t.Fatal("expected error writing into a missing directory")
	}
}
