package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/kinview/pkg/graph"
)

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "ada", Label: "Ada Byron", Generation: 0},
		},
		Edges: []graph.Edge{
			{From: "ada", To: "kid", Type: graph.EdgeChild},
		},
	}

	// Write to a buffer (or any io.Writer)
	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "ada",
	//       "label": "Ada Byron",
	//       "generation": 0,
	//       "x": 0,
	//       "y": 0
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "ada",
	//       "to": "kid",
	//       "type": "child"
	//     }
	//   ]
	// }
}
