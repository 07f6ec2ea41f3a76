package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/constellation/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Topics: []graph.Topic{{Word: "ocean", Count: 2}},
		Edges:  []graph.Edge{},
	}

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(buf.String())
	// Output:
	// {
	//   "topics": [
	//     {
	//       "word": "ocean",
	//       "count": 2
	//     }
	//   ],
	//   "edges": []
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"topics": [
			{"word": "ocean", "count": 4, "entry_ids": ["e1"]},
			{"word": "tide", "count": 2}
		],
		"edges": [
			{"source": "ocean", "target": "tide", "weight": 3}
		],
		"entries": [
			{"id": "e1", "title": "Low water"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Stats:", g.Stats())
	fmt.Println("Linked to ocean:", g.LinkedEntries("ocean")[0].Title)
	// Output:
	// Stats: {2 1 1 3}
	// Linked to ocean: Low water
}

func ExampleGraph_Neighbors() {
	g := graph.Graph{
		Edges: []graph.Edge{
			{Source: "ocean", Target: "tide", Weight: 1},
			{Source: "moon", Target: "ocean", Weight: 1},
			{Source: "ink", Target: "paper", Weight: 1},
		},
	}

	connected := g.Neighbors("ocean")
	fmt.Println(connected["tide"], connected["moon"], connected["ink"])
	// Output:
	// true true false
}
