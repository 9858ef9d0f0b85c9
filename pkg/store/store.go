// Package store persists family trees and the artifacts computed from them.
//
// A [Tree] is a named people snapshot. Alongside each tree the store keeps
// computed layouts (keyed by snapshot hash plus layout options, so stale
// layouts are never served) and the collapse state of the viewer. Callers
// treat writes as fire-and-forget: persistence errors are logged, never
// fatal to a computation that already succeeded.
//
// Implementations:
//   - [MemoryStore]: in-memory, for the CLI and tests
//   - [MongoStore]: MongoDB-backed, for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/visibility"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Tree is a stored family tree document.
type Tree struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	People    []kin.Person `json:"people" bson:"people"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for persistence backends.
type Store interface {
	// GetTree retrieves a tree by ID. Returns ErrNotFound if absent.
	GetTree(ctx context.Context, id string) (Tree, error)

	// PutTree stores or replaces a tree.
	PutTree(ctx context.Context, t Tree) error

	// DeleteTree removes a tree and its layouts and collapse state.
	// Deleting a missing tree is not an error.
	DeleteTree(ctx context.Context, id string) error

	// ListTrees returns all stored trees sorted by ID, without people
	// payloads.
	ListTrees(ctx context.Context) ([]Tree, error)

	// GetLayout retrieves a computed layout by tree and cache key.
	// Returns ErrNotFound if absent.
	GetLayout(ctx context.Context, treeID, key string) (graph.Layout, error)

	// PutLayout stores or replaces a computed layout.
	PutLayout(ctx context.Context, treeID, key string, l graph.Layout) error

	// GetCollapse retrieves the collapse state for a tree. A tree with no
	// saved state returns an empty state, not ErrNotFound.
	GetCollapse(ctx context.Context, treeID string) (visibility.State, error)

	// PutCollapse stores or replaces the collapse state for a tree.
	PutCollapse(ctx context.Context, treeID string, st visibility.State) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
