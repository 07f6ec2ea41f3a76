package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/constellation/pkg/graph"
)

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		word string
		want string
	}{
		{0, "star", "0 stars"},
		{1, "star", "1 star"},
		{2, "connection", "2 connections"},
		{1, "entry", "1 entry"},
		{4, "entry", "4 entries"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, tt.word); got != tt.want {
			t.Errorf("plural(%d, %q) = %q, want %q", tt.n, tt.word, got, tt.want)
		}
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		stats   graph.Stats
		cached  bool
		want    []string
		notWant []string
	}{
		{
			name:  "full",
			stats: graph.Stats{Stars: 3, Connections: 1, Entries: 2},
			want:  []string{"3 stars", "1 connection", "2 entries", iconFresh},
		},
		{
			name:    "lonely star",
			stats:   graph.Stats{Stars: 1},
			cached:  true,
			want:    []string{"1 star", iconCached},
			notWant: []string{"connection", "entr"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.stats, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, should not contain %q", got, w)
				}
			}
		})
	}
}
