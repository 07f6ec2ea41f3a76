package force

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/constellation/pkg/graph"
)

// Observer is called after every completed step with the 1-based iteration
// number and the total kinetic energy of the system.
type Observer func(iteration int, energy float64)

// Option configures a Simulation.
type Option func(*Simulation)

// WithConfig replaces the physics constants.
func WithConfig(cfg Config) Option {
	return func(s *Simulation) { s.cfg = cfg }
}

// WithSeeder replaces the initial placement strategy. A nil seeder keeps the
// default.
func WithSeeder(seeder Seeder) Option {
	return func(s *Simulation) {
		if seeder != nil {
			s.seeder = seeder
		}
	}
}

// WithObserver registers a per-step callback.
func WithObserver(fn Observer) Option {
	return func(s *Simulation) { s.observer = fn }
}

type body struct {
	word   string
	x, y   float64
	vx, vy float64
}

type spring struct {
	a, b   int
	weight float64
}

// Simulation is one run of the force-directed layout. It owns all of its
// state; nothing is shared between simulations.
type Simulation struct {
	cfg      Config
	seeder   Seeder
	observer Observer

	width, height float64
	bodies        []body
	springs       []spring
	iter          int
}

// New prepares a simulation for the given topics and edges on a width×height
// canvas. Duplicate words collapse into one body. Edges whose endpoints are
// not both present are dropped.
func New(topics []graph.Topic, edges []graph.Edge, width, height float64, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:    DefaultConfig(),
		seeder: HashSeeder{},
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(s)
	}

	words := make([]string, 0, len(topics))
	seen := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		if _, ok := seen[t.Word]; ok {
			continue
		}
		seen[t.Word] = struct{}{}
		words = append(words, t.Word)
	}
	slices.SortFunc(words, strings.Compare)

	index := make(map[string]int, len(words))
	s.bodies = make([]body, len(words))
	usableW := width - 2*s.cfg.Padding
	usableH := height - 2*s.cfg.Padding
	for i, w := range words {
		sx, sy := s.seeder.Seed(w)
		s.bodies[i] = body{
			word: w,
			x:    s.cfg.Padding + sx*usableW,
			y:    s.cfg.Padding + sy*usableH,
		}
		index[w] = i
	}

	for _, e := range edges {
		a, okA := index[e.Source]
		b, okB := index[e.Target]
		if !okA || !okB {
			continue
		}
		s.springs = append(s.springs, spring{a: a, b: b, weight: math.Min(e.Weight, s.cfg.MaxWeight)})
	}

	return s
}

// Len returns the number of bodies.
func (s *Simulation) Len() int { return len(s.bodies) }

// Iteration returns the number of completed steps.
func (s *Simulation) Iteration() int { return s.iter }

// Done reports whether the configured number of iterations has run.
func (s *Simulation) Done() bool { return s.iter >= s.cfg.Iterations }

// Step advances the simulation by one iteration: repulsion, attraction,
// gravity, then damped integration with boundary clamping.
func (s *Simulation) Step() {
	s.repel()
	s.attract()
	s.gravitate()
	s.integrate()
	s.iter++
	if s.observer != nil {
		s.observer(s.iter, s.KineticEnergy())
	}
}

// Run steps until Done. Calling Run on a finished simulation is a no-op.
func (s *Simulation) Run() {
	if len(s.bodies) == 0 {
		return
	}
	for !s.Done() {
		s.Step()
	}
}

// Positions returns the current position of every body.
func (s *Simulation) Positions() graph.PositionMap {
	out := make(graph.PositionMap, len(s.bodies))
	for _, b := range s.bodies {
		out[b.word] = graph.Point{X: b.x, Y: b.y}
	}
	return out
}

// KineticEnergy returns the sum of ½|v|² over all bodies.
func (s *Simulation) KineticEnergy() float64 {
	var e float64
	for _, b := range s.bodies {
		e += 0.5 * (b.vx*b.vx + b.vy*b.vy)
	}
	return e
}

func (s *Simulation) repel() {
	for i := range s.bodies {
		a := &s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b := &s.bodies[j]
			dx, dy := a.x-b.x, a.y-b.y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < 1 {
				dx, dy = 1, 1
				dist = math.Sqrt2
			}
			f := s.cfg.Repulsion / (dist * dist)
			fx, fy := dx/dist*f, dy/dist*f
			a.vx += fx
			a.vy += fy
			b.vx -= fx
			b.vy -= fy
		}
	}
}

func (s *Simulation) attract() {
	for _, sp := range s.springs {
		a, b := &s.bodies[sp.a], &s.bodies[sp.b]
		dx, dy := b.x-a.x, b.y-a.y
		dist := math.Sqrt(dx*dx + dy*dy)
		// Self-edges and coincident endpoints have no direction to pull in.
		if dist == 0 || dist < s.cfg.MinDistance {
			continue
		}
		f := (dist - s.cfg.MinDistance) * s.cfg.Attraction * sp.weight
		fx, fy := dx/dist*f, dy/dist*f
		a.vx += fx
		a.vy += fy
		b.vx -= fx
		b.vy -= fy
	}
}

func (s *Simulation) gravitate() {
	cx, cy := s.width/2, s.height/2
	for i := range s.bodies {
		b := &s.bodies[i]
		b.vx += (cx - b.x) * s.cfg.Gravity
		b.vy += (cy - b.y) * s.cfg.Gravity
	}
}

func (s *Simulation) integrate() {
	pad := s.cfg.Padding
	for i := range s.bodies {
		b := &s.bodies[i]
		b.vx *= s.cfg.Damping
		b.vy *= s.cfg.Damping
		b.x = clamp(b.x+b.vx, pad, s.width-pad)
		b.y = clamp(b.y+b.vy, pad, s.height-pad)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
