package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/kinview/pkg/kin/layout"
)

// =============================================================================
// Layout - Computed Tree + Provenance
// =============================================================================

// Layout is a computed family tree together with the options that produced
// it. SnapshotHash identifies the people snapshot the positions were
// computed from, so a consumer can detect stale layouts.
type Layout struct {
	Strategy     string `json:"strategy" bson:"strategy"`
	Orientation  string `json:"orientation,omitempty" bson:"orientation,omitempty"`
	RootID       string `json:"root_id" bson:"root_id"`
	SnapshotHash string `json:"snapshot_hash,omitempty" bson:"snapshot_hash,omitempty"`
	Graph        Graph  `json:"graph" bson:"graph"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// An absent strategy defaults to hierarchical; an unknown one is an error.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Strategy == "" {
		l.Strategy = string(layout.StrategyHierarchical)
	}
	switch layout.Strategy(l.Strategy) {
	case layout.StrategyHierarchical, layout.StrategyGenealogical, layout.StrategyBeautify:
	default:
		return Layout{}, fmt.Errorf("layout strategy %q: %w", l.Strategy, layout.ErrUnknownStrategy)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
