package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin/visibility"
)

// MemoryStore keeps everything in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	trees    map[string]Tree
	layouts  map[string]graph.Layout // treeID + "\x00" + key
	collapse map[string]visibility.State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trees:    make(map[string]Tree),
		layouts:  make(map[string]graph.Layout),
		collapse: make(map[string]visibility.State),
	}
}

// GetTree retrieves a tree by ID.
func (s *MemoryStore) GetTree(ctx context.Context, id string) (Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trees[id]
	if !ok {
		return Tree{}, ErrNotFound
	}
	return t, nil
}

// PutTree stores or replaces a tree.
func (s *MemoryStore) PutTree(ctx context.Context, t Tree) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[t.ID] = t
	return nil
}

// DeleteTree removes a tree and everything derived from it.
func (s *MemoryStore) DeleteTree(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trees, id)
	delete(s.collapse, id)
	prefix := id + "\x00"
	for k := range s.layouts {
		if strings.HasPrefix(k, prefix) {
			delete(s.layouts, k)
		}
	}
	return nil
}

// ListTrees returns all trees sorted by ID, without people payloads.
func (s *MemoryStore) ListTrees(ctx context.Context) ([]Tree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Tree, 0, len(s.trees))
	for _, t := range s.trees {
		t.People = nil
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetLayout retrieves a computed layout.
func (s *MemoryStore) GetLayout(ctx context.Context, treeID, key string) (graph.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[treeID+"\x00"+key]
	if !ok {
		return graph.Layout{}, ErrNotFound
	}
	return l, nil
}

// PutLayout stores or replaces a computed layout.
func (s *MemoryStore) PutLayout(ctx context.Context, treeID, key string, l graph.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[treeID+"\x00"+key] = l
	return nil
}

// GetCollapse retrieves the collapse state for a tree; empty if never saved.
func (s *MemoryStore) GetCollapse(ctx context.Context, treeID string) (visibility.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collapse[treeID], nil
}

// PutCollapse stores or replaces the collapse state for a tree.
func (s *MemoryStore) PutCollapse(ctx context.Context, treeID string, st visibility.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapse[treeID] = st
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
