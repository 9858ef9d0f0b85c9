package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/kinview/pkg/graph"
	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/visibility"
)

func TestMemoryStoreTrees(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.GetTree(ctx, "smith"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTree(missing) error = %v, want ErrNotFound", err)
	}

	tree := Tree{
		ID:        "smith",
		Name:      "Smith Family",
		People:    []kin.Person{{ID: "p1", FirstName: "Pat"}},
		UpdatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.PutTree(ctx, tree); err != nil {
		t.Fatalf("PutTree() error = %v", err)
	}

	got, err := s.GetTree(ctx, "smith")
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if !reflect.DeepEqual(got, tree) {
		t.Errorf("GetTree() = %+v, want %+v", got, tree)
	}

	// Replace is idempotent
	tree.Name = "Smith-Jones Family"
	if err := s.PutTree(ctx, tree); err != nil {
		t.Fatalf("PutTree(replace) error = %v", err)
	}
	got, _ = s.GetTree(ctx, "smith")
	if got.Name != "Smith-Jones Family" {
		t.Errorf("Name after replace = %q", got.Name)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.PutTree(ctx, Tree{ID: "b", People: []kin.Person{{ID: "x"}}})
	_ = s.PutTree(ctx, Tree{ID: "a"})

	got, err := s.ListTrees(ctx)
	if err != nil {
		t.Fatalf("ListTrees() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("ListTrees() = %+v, want sorted [a b]", got)
	}
	if got[1].People != nil {
		t.Error("ListTrees() must not include people payloads")
	}
}

func TestMemoryStoreLayouts(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.GetLayout(ctx, "smith", "k1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetLayout(missing) error = %v, want ErrNotFound", err)
	}

	l := graph.Layout{Strategy: "beautify", RootID: "p1", SnapshotHash: "h1"}
	if err := s.PutLayout(ctx, "smith", "k1", l); err != nil {
		t.Fatalf("PutLayout() error = %v", err)
	}
	got, err := s.GetLayout(ctx, "smith", "k1")
	if err != nil {
		t.Fatalf("GetLayout() error = %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("GetLayout() = %+v, want %+v", got, l)
	}

	// Layouts are scoped per tree
	if _, err := s.GetLayout(ctx, "jones", "k1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetLayout(other tree) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreCollapse(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	st, err := s.GetCollapse(ctx, "smith")
	if err != nil {
		t.Fatalf("GetCollapse() error = %v", err)
	}
	if len(st.Collapsed) != 0 {
		t.Errorf("GetCollapse(unsaved) = %+v, want empty", st)
	}

	want := visibility.State{Collapsed: []string{"p1"}, Hidden: []string{"p2", "p3"}}
	if err := s.PutCollapse(ctx, "smith", want); err != nil {
		t.Fatalf("PutCollapse() error = %v", err)
	}
	st, _ = s.GetCollapse(ctx, "smith")
	if !reflect.DeepEqual(st, want) {
		t.Errorf("GetCollapse() = %+v, want %+v", st, want)
	}
}

func TestMemoryStoreDeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.PutTree(ctx, Tree{ID: "smith"})
	_ = s.PutLayout(ctx, "smith", "k1", graph.Layout{Strategy: "hierarchical"})
	_ = s.PutCollapse(ctx, "smith", visibility.State{Collapsed: []string{"p1"}})

	if err := s.DeleteTree(ctx, "smith"); err != nil {
		t.Fatalf("DeleteTree() error = %v", err)
	}
	if _, err := s.GetTree(ctx, "smith"); !errors.Is(err, ErrNotFound) {
		t.Error("tree survived delete")
	}
	if _, err := s.GetLayout(ctx, "smith", "k1"); !errors.Is(err, ErrNotFound) {
		t.Error("layout survived delete")
	}
	if st, _ := s.GetCollapse(ctx, "smith"); len(st.Collapsed) != 0 {
		t.Error("collapse state survived delete")
	}

	// Deleting a missing tree is not an error
	if err := s.DeleteTree(ctx, "nobody"); err != nil {
		t.Errorf("DeleteTree(missing) error = %v", err)
	}
}
