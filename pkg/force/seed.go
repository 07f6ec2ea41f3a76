package force

import (
	"hash/fnv"
	"unicode/utf16"

	"github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
)

// Seeder maps a word to a deterministic starting point in the unit square.
// Both returned values must lie in [0, 1).
type Seeder interface {
	Seed(word string) (sx, sy float64)
}

// HashSeeder is the default seeder. It hashes word+"_x" and word+"_y" with
// Hash01, so layouts match the ones the web front end computes.
type HashSeeder struct{}

// Seed implements Seeder.
func (HashSeeder) Seed(word string) (float64, float64) {
	return Hash01(word + "_x"), Hash01(word + "_y")
}

// SplitMixSeeder derives both coordinates from a splitmix64 stream keyed by
// the FNV-1a hash of the word. Salt selects an alternative, equally stable
// arrangement.
type SplitMixSeeder struct {
	Salt uint64
}

// Seed implements Seeder.
func (s SplitMixSeeder) Seed(word string) (float64, float64) {
	h := fnv.New64a()
	h.Write([]byte(word))
	state := h.Sum64() ^ s.Salt
	a := splitmix64(&state)
	b := splitmix64(&state)
	return unit53(a), unit53(b)
}

// Hash32 is the 32-bit rolling hash h = h*31 + c over the UTF-16 code units
// of s, wrapping on overflow.
func Hash32(s string) uint32 {
	var h uint32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(c)
	}
	return h
}

// Hash01 normalizes Hash32 to [0, 1).
func Hash01(s string) float64 {
	return float64(Hash32(s)) / (1 << 32)
}

// SeederByName resolves a seeder name as stored in config files and layouts.
// The empty string selects the default.
func SeederByName(name string) (Seeder, error) {
	switch name {
	case "", graph.SeederHash:
		return HashSeeder{}, nil
	case graph.SeederSplitMix:
		return SplitMixSeeder{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSeeder, "unknown seeder %q (want %s or %s)", name, graph.SeederHash, graph.SeederSplitMix)
	}
}

// SeederName returns the name SeederByName accepts for s, or "custom".
func SeederName(s Seeder) string {
	switch s.(type) {
	case nil, HashSeeder, *HashSeeder:
		return graph.SeederHash
	case SplitMixSeeder, *SplitMixSeeder:
		return graph.SeederSplitMix
	default:
		return "custom"
	}
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func unit53(v uint64) float64 {
	return float64(v>>11) / (1 << 53)
}
