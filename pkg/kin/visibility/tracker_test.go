package visibility

import (
	"reflect"
	"testing"

	"github.com/matzehuels/kinview/pkg/kin"
)

// lineage: grandpa -> dad, uncle; dad -> son, daughter.
func lineage() []kin.Person {
	r := func(t kin.RelationType, pid string) kin.Relation {
		return kin.Relation{ID: "r-" + pid, Type: t, PersonID: pid}
	}
	return []kin.Person{
		{ID: "grandpa", FirstName: "Grandpa"},
		{ID: "dad", FirstName: "Dad", Relations: []kin.Relation{r(kin.RelationParent, "grandpa")}},
		{ID: "uncle", FirstName: "Uncle", Relations: []kin.Relation{r(kin.RelationParent, "grandpa")}},
		{ID: "son", FirstName: "Son", Relations: []kin.Relation{r(kin.RelationParent, "dad")}},
		{ID: "daughter", FirstName: "Daughter", Relations: []kin.Relation{r(kin.RelationParent, "dad")}},
	}
}

func TestToggleHidesDescendantsOnly(t *testing.T) {
	tr := NewTracker(lineage())

	if !tr.Toggle("dad") {
		t.Fatal("Toggle(dad) = false, want true")
	}
	if tr.IsHidden("dad") {
		t.Error("collapsed person must stay visible")
	}
	for _, id := range []string{"son", "daughter"} {
		if !tr.IsHidden(id) {
			t.Errorf("IsHidden(%s) = false, want true", id)
		}
	}
	for _, id := range []string{"grandpa", "uncle"} {
		if tr.IsHidden(id) {
			t.Errorf("IsHidden(%s) = true, want false", id)
		}
	}

	if tr.Toggle("dad") {
		t.Fatal("second Toggle(dad) = true, want false")
	}
	if tr.IsHidden("son") {
		t.Error("IsHidden(son) = true after expand, want false")
	}
}

func TestToggleUnknownID(t *testing.T) {
	tr := NewTracker(lineage())
	if tr.Toggle("nobody") {
		t.Error("Toggle(nobody) = true, want false")
	}
	if len(tr.Hidden()) != 0 {
		t.Errorf("Hidden() = %v, want empty", tr.Hidden())
	}
}

func TestHiddenUnion(t *testing.T) {
	tr := NewTracker(lineage())
	tr.Toggle("grandpa")
	tr.Toggle("dad")

	// son is in both hidden sets; expanding grandpa must keep it hidden.
	tr.Toggle("grandpa")
	if !tr.IsHidden("son") {
		t.Error("IsHidden(son) = false, want true while dad is collapsed")
	}
	if tr.IsHidden("uncle") {
		t.Error("IsHidden(uncle) = true, want false after grandpa expanded")
	}
}

func TestVisibleNodes(t *testing.T) {
	tr := NewTracker(lineage())
	tr.Toggle("dad")

	got := tr.VisibleNodes([]string{"grandpa", "dad", "uncle", "son", "daughter"})
	want := []string{"grandpa", "dad", "uncle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleNodes() = %v, want %v", got, want)
	}
}

type edge struct{ from, to string }

func (e edge) Endpoints() (string, string) { return e.from, e.to }

func TestVisibleEdges(t *testing.T) {
	tr := NewTracker(lineage())
	tr.Toggle("dad")

	edges := []edge{
		{"grandpa", "dad"},
		{"grandpa", "uncle"},
		{"dad", "son"},
		{"dad", "daughter"},
	}
	got := VisibleEdges(tr, edges)
	want := []edge{{"grandpa", "dad"}, {"grandpa", "uncle"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisibleEdges() = %v, want %v", got, want)
	}
}

func TestCollapseAllExpandAll(t *testing.T) {
	tr := NewTracker(lineage())
	tr.CollapseAll()

	if tr.IsHidden("grandpa") {
		t.Error("IsHidden(grandpa) = true, want false (no ancestors)")
	}
	for _, id := range []string{"dad", "uncle", "son", "daughter"} {
		if !tr.IsHidden(id) {
			t.Errorf("IsHidden(%s) = false, want true after CollapseAll", id)
		}
	}

	tr.ExpandAll()
	if got := tr.Hidden(); len(got) != 0 {
		t.Errorf("Hidden() = %v, want empty after ExpandAll", got)
	}
}

func TestDescendantsCycleSafe(t *testing.T) {
	r := func(pid string) kin.Relation {
		return kin.Relation{ID: "r-" + pid, Type: kin.RelationChild, PersonID: pid}
	}
	people := []kin.Person{
		{ID: "a", Relations: []kin.Relation{r("b")}},
		{ID: "b", Relations: []kin.Relation{r("c")}},
		{ID: "c", Relations: []kin.Relation{r("a")}},
	}

	tr := NewTracker(people)
	tr.Toggle("a")

	want := []string{"b", "c"}
	if got := tr.Hidden(); !reflect.DeepEqual(got, want) {
		t.Errorf("Hidden() = %v, want %v", got, want)
	}
	if tr.IsHidden("a") {
		t.Error("IsHidden(a) = true, want false (cycle back to the collapsed node)")
	}
}

func TestStateRoundTrip(t *testing.T) {
	tr := NewTracker(lineage())
	tr.Toggle("dad")
	tr.Toggle("uncle")

	st := tr.State()
	if want := []string{"dad", "uncle"}; !reflect.DeepEqual(st.Collapsed, want) {
		t.Errorf("State().Collapsed = %v, want %v", st.Collapsed, want)
	}
	if want := []string{"daughter", "son"}; !reflect.DeepEqual(st.Hidden, want) {
		t.Errorf("State().Hidden = %v, want %v", st.Hidden, want)
	}

	st.Collapsed = append(st.Collapsed, "nobody") // stale id in persisted state
	restored := Restore(lineage(), st)
	if !restored.IsCollapsed("dad") || !restored.IsCollapsed("uncle") {
		t.Error("Restore() lost collapse state")
	}
	if restored.IsCollapsed("nobody") {
		t.Error("Restore() kept unknown id")
	}
	if !restored.IsHidden("son") {
		t.Error("Restore(): IsHidden(son) = false, want true")
	}
}
