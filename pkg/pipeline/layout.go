package pipeline

import (
	"fmt"

	"github.com/matzehuels/constellation/pkg/cache"
	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/graph"
)

// =============================================================================
// Layout Generation
// =============================================================================

// energyLogInterval is how often, in steps, convergence is logged at debug
// level.
const energyLogInterval = 20

// GenerateLayout places every topic of g on the canvas described by opts and
// returns a self-contained layout carrying the graph, so it can be rendered
// later without the source.
func GenerateLayout(g graph.Graph, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	seeder, err := opts.NewSeeder()
	if err != nil {
		return graph.Layout{}, err
	}

	simOpts := []force.Option{force.WithConfig(opts.Physics), force.WithSeeder(seeder)}
	if logger := opts.Logger; logger != nil {
		last := opts.Physics.Iterations
		simOpts = append(simOpts, force.WithObserver(func(iter int, energy float64) {
			if iter%energyLogInterval == 0 || iter == last {
				logger.Debug("simulation", "iteration", iter, "energy", energy)
			}
		}))
	}
	positions := force.Layout(g.Topics, g.Edges, opts.Width, opts.Height, simOpts...)

	return graph.Layout{
		Width:      opts.Width,
		Height:     opts.Height,
		Style:      opts.Style,
		Seeder:     opts.Seeder,
		Iterations: opts.Physics.Iterations,
		Positions:  positions,
		Topics:     g.Topics,
		Edges:      g.Edges,
		Entries:    g.Entries,
	}, nil
}

// GraphHash returns the content hash of g. Topic and edge order do not
// affect the hash.
func GraphHash(g graph.Graph) string {
	c := graph.Canonical(g)
	h, err := cache.HashJSON(c)
	if err != nil {
		// JSON rejects NaN and Inf weights.
		return cache.Hash(fmt.Appendf(nil, "%#v", c))
	}
	return h
}
