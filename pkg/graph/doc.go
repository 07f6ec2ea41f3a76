// Package graph provides serialization types for topic graphs and layouts.
//
// This package defines the canonical wire format for constellation data,
// used for JSON files, API responses, caching, and cross-tool interoperability.
// The JSON shape matches the content API's topics endpoint, so a response body
// can be saved to disk and read back with [ReadGraphFile].
//
// # Core Types
//
//   - [Graph]: topics, co-occurrence edges and entry previews
//   - [Topic], [Edge], [Entry]: the graph's elements
//   - [PositionMap], [Point]: layout engine output
//   - [Layout]: positions bundled with the graph and canvas size
//
// # Graph Serialization
//
//	{
//	  "topics": [{"word": "ocean", "count": 4, "entry_ids": ["e1"]}],
//	  "edges": [{"source": "ocean", "target": "tide", "weight": 2}],
//	  "entries": [{"id": "e1", "title": "Low water"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("topics.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")       // Graph → File
//	data, _ := graph.MarshalGraph(g)             // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)      // []byte → Graph
//
// # Selection Queries
//
// [Graph.Neighbors] walks the edge list to find the words connected to a
// selected star, and [Graph.LinkedEntries] resolves a topic's entry ids
// against the entry previews. Renderers and the terminal inspector both use
// these.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
