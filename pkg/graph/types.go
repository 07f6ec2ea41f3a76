package graph

import (
	"encoding/json"
	"math"
	"slices"
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visual styles for rendering.
const (
	StyleNight  = "night"
	StyleSimple = "simple"
)

// Seeder names understood by the layout engine.
const (
	SeederHash     = "hash"
	SeederSplitMix = "splitmix"
)

// =============================================================================
// Graph - Topic Provider Payload
// =============================================================================

// Graph is the canonical serialization format for a topic graph.
// It matches the payload served by the content API's topics endpoint and is
// used for files, caching and API responses.
type Graph struct {
	Topics  []Topic `json:"topics" bson:"topics"`
	Edges   []Edge  `json:"edges" bson:"edges"`
	Entries []Entry `json:"entries,omitempty" bson:"entries,omitempty"`
}

// Topic is a recurring word mined from journal entries.
// Count only influences rendering; the layout engine ignores it.
type Topic struct {
	Word        string   `json:"word" bson:"word"`
	Count       int      `json:"count" bson:"count"`
	DocumentIDs []string `json:"entry_ids,omitempty" bson:"entry_ids,omitempty"`
}

// Edge is an undirected co-occurrence link between two topic words.
type Edge struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Entry is a document preview shipped alongside the topics.
type Entry struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Mood      string `json:"mood,omitempty" bson:"mood,omitempty"`
	Section   string `json:"section,omitempty" bson:"section,omitempty"`
	CreatedAt string `json:"created_at,omitempty" bson:"created_at,omitempty"`
	Preview   string `json:"preview,omitempty" bson:"preview,omitempty"`
}

// Stats summarizes a graph the way the constellation page does.
type Stats struct {
	Stars        int `json:"stars"`
	Connections  int `json:"connections"`
	Entries      int `json:"entries"`
	AvgFrequency int `json:"avg_frequency"`
}

// =============================================================================
// Positions
// =============================================================================

// Point is a canvas coordinate in pixels, origin top-left.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// PositionMap maps each topic word to its final position.
type PositionMap map[string]Point

// Words returns the words of the map in sorted order.
func (m PositionMap) Words() []string {
	out := make([]string, 0, len(m))
	for w := range m {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Graph Queries
// =============================================================================

// Topic returns the topic for word. When the word appears more than once the
// last occurrence wins.
func (g Graph) Topic(word string) (Topic, bool) {
	for i := len(g.Topics) - 1; i >= 0; i-- {
		if g.Topics[i].Word == word {
			return g.Topics[i], true
		}
	}
	return Topic{}, false
}

// Words returns the distinct topic words in sorted order.
func (g Graph) Words() []string {
	seen := make(map[string]struct{}, len(g.Topics))
	out := make([]string, 0, len(g.Topics))
	for _, t := range g.Topics {
		if _, ok := seen[t.Word]; ok {
			continue
		}
		seen[t.Word] = struct{}{}
		out = append(out, t.Word)
	}
	slices.Sort(out)
	return out
}

// MaxCount returns the largest topic count, never less than 1.
func (g Graph) MaxCount() int {
	m := 1
	for _, t := range g.Topics {
		m = max(m, t.Count)
	}
	return m
}

// AverageCount returns the mean topic count rounded to the nearest integer,
// or 0 for an empty graph.
func (g Graph) AverageCount() int {
	if len(g.Topics) == 0 {
		return 0
	}
	sum := 0
	for _, t := range g.Topics {
		sum += t.Count
	}
	return int(math.Round(float64(sum) / float64(len(g.Topics))))
}

// Neighbors returns the set of words sharing an edge with word, plus word
// itself. An empty word yields an empty set.
func (g Graph) Neighbors(word string) map[string]bool {
	out := make(map[string]bool)
	if word == "" {
		return out
	}
	out[word] = true
	for _, e := range g.Edges {
		if e.Source == word {
			out[e.Target] = true
		}
		if e.Target == word {
			out[e.Source] = true
		}
	}
	return out
}

// LinkedEntries returns the entries referenced by the topic for word, in the
// order they appear in g.Entries.
func (g Graph) LinkedEntries(word string) []Entry {
	t, ok := g.Topic(word)
	if !ok || len(t.DocumentIDs) == 0 {
		return nil
	}
	var out []Entry
	for _, e := range g.Entries {
		if slices.Contains(t.DocumentIDs, e.ID) {
			out = append(out, e)
		}
	}
	return out
}

// Stats returns the overview counters for g.
func (g Graph) Stats() Stats {
	return Stats{
		Stars:        len(g.Topics),
		Connections:  len(g.Edges),
		Entries:      len(g.Entries),
		AvgFrequency: g.AverageCount(),
	}
}

// Canonical returns a copy of g with topics sorted by word and edges sorted
// by (source, target). Entries keep their order. Useful for content hashing.
func Canonical(g Graph) Graph {
	out := Graph{
		Topics:  slices.Clone(g.Topics),
		Edges:   slices.Clone(g.Edges),
		Entries: slices.Clone(g.Entries),
	}
	slices.SortStableFunc(out.Topics, func(a, b Topic) int {
		return strings.Compare(a.Word, b.Word)
	})
	slices.SortStableFunc(out.Edges, func(a, b Edge) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return out
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
