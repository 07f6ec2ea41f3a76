package force

import (
	"testing"

	"github.com/matzehuels/constellation/pkg/errors"
)

func TestHash32(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"hello", 99162322},
		{"a_x", 96282},
		{"a_y", 96283},
		{"é", 233},
		{"😀", 0xD83D*31 + 0xDE00},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hash32(tt.in); got != tt.want {
				t.Errorf("Hash32(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestHash32Wraps(t *testing.T) {
	long := "the quick brown fox jumps over the lazy dog, again and again"
	var want uint64
	for _, c := range long {
		want = (want*31 + uint64(c)) % (1 << 32)
	}
	if got := Hash32(long); uint64(got) != want {
		t.Errorf("Hash32 = %d, want %d", got, want)
	}
}

func TestHash01Range(t *testing.T) {
	for _, s := range []string{"", "a", "ocean_x", "ocean_y", "zzzzzzzzzzzzzzzzzzzz", "￿￿￿"} {
		v := Hash01(s)
		if v < 0 || v >= 1 {
			t.Errorf("Hash01(%q) = %g, want [0, 1)", s, v)
		}
	}
}

func TestSeedersInUnitSquare(t *testing.T) {
	seeders := map[string]Seeder{
		"hash":     HashSeeder{},
		"splitmix": SplitMixSeeder{},
		"salted":   SplitMixSeeder{Salt: 42},
	}
	words := []string{"", "a", "ocean", "tide", "mémoire", "😀"}
	for name, s := range seeders {
		t.Run(name, func(t *testing.T) {
			for _, w := range words {
				x, y := s.Seed(w)
				if x < 0 || x >= 1 || y < 0 || y >= 1 {
					t.Errorf("Seed(%q) = (%g, %g), want [0, 1)", w, x, y)
				}
				x2, y2 := s.Seed(w)
				if x != x2 || y != y2 {
					t.Errorf("Seed(%q) not deterministic", w)
				}
			}
		})
	}
}

func TestSplitMixSalt(t *testing.T) {
	x1, y1 := SplitMixSeeder{}.Seed("ocean")
	x2, y2 := SplitMixSeeder{Salt: 7}.Seed("ocean")
	if x1 == x2 && y1 == y2 {
		t.Error("salt should change the seed")
	}
}

func TestHashSeederSuffixes(t *testing.T) {
	x, y := HashSeeder{}.Seed("ocean")
	if x != Hash01("ocean_x") || y != Hash01("ocean_y") {
		t.Errorf("Seed(ocean) = (%g, %g)", x, y)
	}
}

func TestSeederByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "hash", false},
		{"hash", "hash", false},
		{"splitmix", "splitmix", false},
		{"random", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SeederByName(tt.name)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidSeeder) {
					t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidSeeder)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := SeederName(s); got != tt.want {
				t.Errorf("SeederName() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fixedSeeder struct{}

func (fixedSeeder) Seed(string) (float64, float64) { return 0.5, 0.5 }

func TestSeederNameCustom(t *testing.T) {
	if got := SeederName(fixedSeeder{}); got != "custom" {
		t.Errorf("SeederName(custom) = %q", got)
	}
	if got := SeederName(nil); got != "hash" {
		t.Errorf("SeederName(nil) = %q", got)
	}
}
