package force_test

import (
	"fmt"

	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/graph"
)

func ExampleLayout() {
	topics := []graph.Topic{{Word: "ocean", Count: 3}}

	positions := force.Layout(topics, nil, 800, 480)

	p := positions["ocean"]
	fmt.Printf("ocean at (%.0f, %.0f)\n", p.X, p.Y)
	// Output:
	// ocean at (400, 240)
}

func ExampleNew() {
	topics := []graph.Topic{{Word: "ocean"}, {Word: "tide"}}
	edges := []graph.Edge{{Source: "ocean", Target: "tide", Weight: 2}}

	cfg := force.DefaultConfig()
	cfg.Iterations = 10

	sim := force.New(topics, edges, 800, 480, force.WithConfig(cfg))
	for !sim.Done() {
		sim.Step()
	}

	fmt.Println("steps:", sim.Iteration())
	fmt.Println("bodies:", sim.Len())
	// Output:
	// steps: 10
	// bodies: 2
}

func ExampleHash01() {
	fmt.Printf("%.6f\n", force.Hash01("a_x"))
	// Output:
	// 0.000022
}
