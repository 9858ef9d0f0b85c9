package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Edge types carried on the wire.
const (
	EdgeChild  = "child"  // from parent to child
	EdgeSpouse = "spouse" // undirected, serialized once per pair
)

// =============================================================================
// Graph - Family Tree Serialization
// =============================================================================

// Graph is the canonical serialization format for a laid-out family tree.
// Used for API responses, storage, caching, and file export.
//
// The format is human-readable and designed for round-trip fidelity:
// build → export → re-import produces identical results.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// =============================================================================
// Node - Positioned Person
// =============================================================================

// Node is one positioned person. X/Y are canvas coordinates from the layout
// engine; Generation comes from the generation assigner.
type Node struct {
	ID         string  `json:"id" bson:"id"`
	Label      string  `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Gender     string  `json:"gender,omitempty" bson:"gender,omitempty"`
	Birth      string  `json:"birth,omitempty" bson:"birth,omitempty"`
	Death      string  `json:"death,omitempty" bson:"death,omitempty"`
	Generation int     `json:"generation" bson:"generation"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Edge - Family Connection
// =============================================================================

// Edge is one family connection. Child edges point from parent to child;
// spouse edges are undirected and appear once with From < To. Mergeable
// marks a child edge whose counterpart from the other parent exists and the
// two parents are spouses, so a renderer can join the pair into a single
// family connector.
type Edge struct {
	From      string `json:"from" bson:"from"`
	To        string `json:"to" bson:"to"`
	Type      string `json:"type" bson:"type"`
	Mergeable bool   `json:"mergeable,omitempty" bson:"mergeable,omitempty"`
}

// Endpoints returns the edge's node IDs, satisfying the visibility filter.
func (e Edge) Endpoints() (string, string) { return e.From, e.To }

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("unmarshal graph: %w", err)
	}
	return g, nil
}
