// Package graph provides the serialization boundary for rendered family
// trees.
//
// The core packages compute positions and generations as in-memory maps;
// this package flattens them into a node-link wire format used for JSON
// files, API responses, and cache/persistence payloads:
//
//   - [Graph]: nodes (position, generation, display label) plus edges
//   - [Node], [Edge]: shared structural types
//   - [Layout]: a computed graph together with the options that produced it
//
// [Build] is the single conversion point from core output to wire format.
// Nodes are sorted by ID and edges follow the sorted node order, so the
// same input always serializes to the same bytes. The two parent edges of a
// child whose parents are spouses are flagged [Edge.Mergeable], letting a
// renderer join them into one family connector.
//
// # Graph Serialization
//
//	{
//	  "nodes": [{"id": "ada", "label": "Ada Byron", "x": 0, "y": 0, "generation": 0}],
//	  "edges": [{"from": "ada", "to": "kid", "type": "child", "mergeable": true}]
//	}
//
// Common operations:
//
//	g := graph.Build(people, positions, generations)
//	graph.WriteGraphFile(g, "tree.json")
//	g2, _ := graph.ReadGraphFile("tree.json")
//	dot := graph.ToDOT(g2, graph.DOTOptions{})
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
