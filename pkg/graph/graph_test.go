package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func sampleGraph() Graph {
	return Graph{
		Topics: []Topic{
			{Word: "ocean", Count: 6, DocumentIDs: []string{"e1", "e3"}},
			{Word: "tide", Count: 3, DocumentIDs: []string{"e1"}},
			{Word: "moon", Count: 2},
			{Word: "ink", Count: 1},
		},
		Edges: []Edge{
			{Source: "ocean", Target: "tide", Weight: 2},
			{Source: "moon", Target: "ocean", Weight: 1},
			{Source: "tide", Target: "moon", Weight: 1},
		},
		Entries: []Entry{
			{ID: "e1", Title: "Low water"},
			{ID: "e2", Title: "Unrelated"},
			{ID: "e3", Title: "Salt"},
		},
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if len(got.Topics) != 4 || len(got.Edges) != 3 || len(got.Entries) != 3 {
		t.Fatalf("round trip = %d/%d/%d, want 4/3/3", len(got.Topics), len(got.Edges), len(got.Entries))
	}
	if got.Topics[0].DocumentIDs[1] != "e3" {
		t.Errorf("entry_ids = %v, want [e1 e3]", got.Topics[0].DocumentIDs)
	}
}

func TestGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topics.json")
	if err := WriteGraphFile(sampleGraph(), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"entry_ids"`) {
		t.Errorf("file should use entry_ids key, got:\n%s", data)
	}

	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(g.Topics) != 4 {
		t.Errorf("topics = %d, want 4", len(g.Topics))
	}
}

func TestReadGraphFileMissing(t *testing.T) {
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadGraphInvalid(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestGraphTopicLastWins(t *testing.T) {
	g := Graph{Topics: []Topic{{Word: "a", Count: 1}, {Word: "a", Count: 9}}}
	got, ok := g.Topic("a")
	if !ok || got.Count != 9 {
		t.Errorf("Topic(a) = %+v, %v; want count 9", got, ok)
	}
	if _, ok := g.Topic("b"); ok {
		t.Error("Topic(b) should not be found")
	}
	if words := g.Words(); !slices.Equal(words, []string{"a"}) {
		t.Errorf("Words() = %v, want [a]", words)
	}
}

func TestGraphCounts(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantMax int
		wantAvg int
	}{
		{"Empty", Graph{}, 1, 0},
		{"ZeroCounts", Graph{Topics: []Topic{{Word: "a"}}}, 1, 0},
		{"Sample", sampleGraph(), 6, 3},
		{"RoundsHalfUp", Graph{Topics: []Topic{{Word: "a", Count: 1}, {Word: "b", Count: 2}}}, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.MaxCount(); got != tt.wantMax {
				t.Errorf("MaxCount() = %d, want %d", got, tt.wantMax)
			}
			if got := tt.g.AverageCount(); got != tt.wantAvg {
				t.Errorf("AverageCount() = %d, want %d", got, tt.wantAvg)
			}
		})
	}
}

func TestGraphNeighbors(t *testing.T) {
	g := sampleGraph()

	tests := []struct {
		word string
		want []string
	}{
		{"ocean", []string{"moon", "ocean", "tide"}},
		{"ink", []string{"ink"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			set := g.Neighbors(tt.word)
			var got []string
			for w := range set {
				got = append(got, w)
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Neighbors(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestGraphLinkedEntries(t *testing.T) {
	g := sampleGraph()

	got := g.LinkedEntries("ocean")
	if len(got) != 2 || got[0].ID != "e1" || got[1].ID != "e3" {
		t.Errorf("LinkedEntries(ocean) = %+v, want e1, e3", got)
	}
	if got := g.LinkedEntries("moon"); got != nil {
		t.Errorf("LinkedEntries(moon) = %+v, want nil", got)
	}
}

func TestGraphStats(t *testing.T) {
	s := sampleGraph().Stats()
	want := Stats{Stars: 4, Connections: 3, Entries: 3, AvgFrequency: 3}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestCanonical(t *testing.T) {
	g := sampleGraph()
	c := Canonical(g)

	var words []string
	for _, tp := range c.Topics {
		words = append(words, tp.Word)
	}
	if !slices.Equal(words, []string{"ink", "moon", "ocean", "tide"}) {
		t.Errorf("topics = %v, want sorted", words)
	}
	if c.Edges[0].Source != "moon" || c.Edges[2].Source != "tide" {
		t.Errorf("edges not sorted: %+v", c.Edges)
	}
	if g.Topics[0].Word != "ocean" {
		t.Error("Canonical must not mutate its input")
	}
}

func TestPositionMapWords(t *testing.T) {
	m := PositionMap{"b": {}, "a": {}, "c": {}}
	if got := m.Words(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Words() = %v", got)
	}
}
