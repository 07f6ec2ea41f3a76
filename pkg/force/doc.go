// Package force computes constellation layouts with a small N-body
// simulation.
//
// Topics repel each other with an inverse-square force, co-occurrence edges
// pull their endpoints together like springs, and a weak gravity keeps the
// whole system near the canvas center. The simulation runs a fixed number of
// iterations, so cost is bounded and predictable:
//
//	positions := force.Layout(g.Topics, g.Edges, 800, 480)
//
// # Determinism
//
// Initial positions come from a [Seeder], never from a random source or the
// clock. The default [HashSeeder] hashes the word, so a given word always
// starts at the same point for a given canvas. Bodies are sorted by word
// before the pairwise loop, so shuffling the input does not change the output.
//
// # Tuning
//
// [Config] exposes every constant. [DefaultConfig] is the standard preset:
//
//	repulsion 1800, attraction 0.015, gravity 0.02, damping 0.88,
//	min distance 40, max weight 5, padding 56, 120 iterations
//
// # Stepping
//
// [New] returns a [Simulation] that can be advanced one [Simulation.Step] at
// a time, which is useful for animation or for watching energy decay through
// an [Observer]. [Layout] is New followed by Run.
//
// # Complexity
//
// Repulsion visits every pair of bodies, so each step is O(n²). This is fine
// for tens to low hundreds of topics.
package force
