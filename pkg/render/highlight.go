package render

import (
	"maps"
	"slices"

	"github.com/matzehuels/constellation/pkg/graph"
)

// Selection is the highlight state derived from a selected star.
// The zero value selects nothing and dims nothing.
type Selection struct {
	word      string
	connected map[string]bool
}

// Highlight walks the edges of g to find the stars connected to selected.
// An empty selected word, or one not present in g, yields an empty Selection.
func Highlight(g graph.Graph, selected string) Selection {
	if selected == "" {
		return Selection{}
	}
	if _, ok := g.Topic(selected); !ok {
		return Selection{}
	}
	return Selection{word: selected, connected: g.Neighbors(selected)}
}

// Word returns the selected word, or "".
func (s Selection) Word() string { return s.word }

// Any reports whether a star is selected.
func (s Selection) Any() bool { return s.word != "" }

// Selected reports whether word is the selected star.
func (s Selection) Selected(word string) bool { return s.Any() && word == s.word }

// Connected reports whether word is the selected star or one of its neighbors.
func (s Selection) Connected(word string) bool { return s.connected[word] }

// Dimmed reports whether word should fade into the background.
func (s Selection) Dimmed(word string) bool { return s.Any() && !s.connected[word] }

// Active reports whether both ends of e are connected stars, so an edge
// between two neighbors of the selection stays lit.
func (s Selection) Active(e graph.Edge) bool {
	return s.Any() && s.connected[e.Source] && s.connected[e.Target]
}

// EdgeDimmed reports whether e should fade into the background.
func (s Selection) EdgeDimmed(e graph.Edge) bool { return s.Any() && !s.Active(e) }

// Words returns the connected words, including the selection itself, sorted.
func (s Selection) Words() []string {
	return slices.Sorted(maps.Keys(s.connected))
}
