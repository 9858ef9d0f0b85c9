package visibility

import (
	"sort"

	"github.com/matzehuels/kinview/pkg/kin"
)

// Edge is the minimal shape [VisibleEdges] filters on. An edge is hidden
// when either endpoint is hidden.
type Edge interface {
	Endpoints() (fromID, toID string)
}

// Tracker records which people are collapsed and which descendants that
// hides. It is not safe for concurrent use; callers own synchronization.
type Tracker struct {
	g      *kin.Graph
	hidden map[string]map[string]bool // collapsed person -> hidden descendants
	order  []string                   // collapse order, for stable snapshots
}

// NewTracker builds a tracker over a people snapshot with nothing collapsed.
func NewTracker(people []kin.Person) *Tracker {
	return &Tracker{
		g:      kin.NewGraph(people),
		hidden: make(map[string]map[string]bool),
	}
}

// Restore rebuilds a tracker from a persisted [State]. Hidden sets are
// recomputed from the snapshot, so people added since the state was saved
// are hidden or shown correctly. Collapsed IDs unknown to the snapshot are
// dropped.
func Restore(people []kin.Person, st State) *Tracker {
	t := NewTracker(people)
	for _, id := range st.Collapsed {
		if !t.IsCollapsed(id) {
			t.Toggle(id)
		}
	}
	return t
}

// Toggle flips the collapse state of personID and reports the new state.
// Collapsing computes and stores the person's full descendant set; expanding
// drops it. Unknown IDs are a no-op.
func (t *Tracker) Toggle(personID string) bool {
	if _, ok := t.hidden[personID]; ok {
		delete(t.hidden, personID)
		for i, id := range t.order {
			if id == personID {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
		return false
	}
	if !t.g.Contains(personID) {
		return false
	}
	t.hidden[personID] = t.descendants(personID)
	t.order = append(t.order, personID)
	return true
}

// CollapseAll collapses every person in the snapshot that is not collapsed
// yet.
func (t *Tracker) CollapseAll() {
	for _, id := range t.g.PersonIDs() {
		if !t.IsCollapsed(id) {
			t.Toggle(id)
		}
	}
}

// ExpandAll clears all collapse state.
func (t *Tracker) ExpandAll() {
	t.hidden = make(map[string]map[string]bool)
	t.order = nil
}

// IsCollapsed reports whether personID is itself collapsed. A collapsed
// person stays visible; only its descendants are hidden.
func (t *Tracker) IsCollapsed(personID string) bool {
	_, ok := t.hidden[personID]
	return ok
}

// IsHidden reports whether personID appears in the union of all stored
// hidden sets.
func (t *Tracker) IsHidden(personID string) bool {
	for _, set := range t.hidden {
		if set[personID] {
			return true
		}
	}
	return false
}

// VisibleNodes filters ids down to the visible ones, preserving order.
func (t *Tracker) VisibleNodes(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !t.IsHidden(id) {
			out = append(out, id)
		}
	}
	return out
}

// VisibleEdges filters edges down to those with both endpoints visible,
// preserving order.
func VisibleEdges[E Edge](t *Tracker, edges []E) []E {
	out := make([]E, 0, len(edges))
	for _, e := range edges {
		from, to := e.Endpoints()
		if !t.IsHidden(from) && !t.IsHidden(to) {
			out = append(out, e)
		}
	}
	return out
}

// Hidden returns the union of all hidden sets, sorted.
func (t *Tracker) Hidden() []string {
	seen := make(map[string]bool)
	for _, set := range t.hidden {
		for id := range set {
			seen[id] = true
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State is the persistable collapse state.
type State struct {
	Collapsed []string `json:"collapsed" bson:"collapsed"`
	Hidden    []string `json:"hidden" bson:"hidden"`
}

// State snapshots the tracker: collapsed IDs in collapse order plus the
// resulting hidden union. Only Collapsed is needed to [Restore]; Hidden is
// included for renderers that consume the state directly.
func (t *Tracker) State() State {
	collapsed := make([]string, len(t.order))
	copy(collapsed, t.order)
	return State{Collapsed: collapsed, Hidden: t.Hidden()}
}

// descendants walks child edges from id, cycle-safe, excluding id itself.
func (t *Tracker) descendants(id string) map[string]bool {
	visited := map[string]bool{id: true}
	out := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range t.g.NeighborsOfType(n, kin.RelationChild) {
			if visited[c] {
				continue
			}
			visited[c] = true
			out[c] = true
			stack = append(stack, c)
		}
	}
	return out
}
