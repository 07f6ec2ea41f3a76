// Package pkg provides the libraries behind constellation, a layout engine
// that turns recurring journal topics into a night sky of stars.
//
// # Overview
//
// Topics are words mined from journal entries; edges record how often two
// words appear together. The engine places every topic on a canvas with a
// deterministic force-directed simulation so related words cluster, and the
// renderers draw the result as a constellation. The pkg directory is
// organized into these areas:
//
//  1. [graph] - Serialization types for topic graphs and layouts
//  2. [force] - The layout engine (simulation, seeding, physics presets)
//  3. [render] - SVG, Graphviz, PNG and PDF output
//  4. [source] - Topic Provider clients (content API, local files)
//  5. [cache] - Response, layout and artifact caching (file, Redis, MongoDB, SQLite)
//  6. [pipeline] - Orchestration (fetch → layout → render)
//  7. [errors], [httputil], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// The typical data flow:
//
//	Content API /analytics/thoughts/topics
//	         ↓
//	    [source] package (fetch, retry, circuit breaker, cache)
//	         ↓
//	    [force] package (positions per word)
//	         ↓
//	    [render] package (stars, edges, labels)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	positions := force.Layout(g.Topics, g.Edges, 800, 480)
//	for word, p := range positions {
//	    fmt.Printf("%s at (%.0f, %.0f)\n", word, p.X, p.Y)
//	}
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Source = client
//	result, err := runner.Execute(ctx, pipeline.Options{Formats: []string{"svg"}})
//
// [graph]: github.com/matzehuels/constellation/pkg/graph
// [force]: github.com/matzehuels/constellation/pkg/force
// [render]: github.com/matzehuels/constellation/pkg/render
// [source]: github.com/matzehuels/constellation/pkg/source
// [cache]: github.com/matzehuels/constellation/pkg/cache
// [pipeline]: github.com/matzehuels/constellation/pkg/pipeline
// [errors]: github.com/matzehuels/constellation/pkg/errors
// [httputil]: github.com/matzehuels/constellation/pkg/httputil
// [observability]: github.com/matzehuels/constellation/pkg/observability
// [buildinfo]: github.com/matzehuels/constellation/pkg/buildinfo
package pkg
