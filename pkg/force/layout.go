package force

import "github.com/matzehuels/constellation/pkg/graph"

// Layout places every topic on a width×height canvas and returns the final
// positions keyed by word.
//
// The result has exactly one entry per distinct word, isolated topics
// included, and every position lies within the padded rectangle. Identical
// inputs always give identical output, regardless of input order. Edges with
// unknown endpoints are ignored. Zero topics yield an empty map.
//
// width and height must be positive; Layout does not check.
func Layout(topics []graph.Topic, edges []graph.Edge, width, height float64, opts ...Option) graph.PositionMap {
	sim := New(topics, edges, width, height, opts...)
	sim.Run()
	return sim.Positions()
}
