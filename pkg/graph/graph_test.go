package graph

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/kinview/pkg/kin"
	"github.com/matzehuels/kinview/pkg/kin/layout"
)

func rel(t kin.RelationType, pid string) kin.Relation {
	return kin.Relation{ID: "r-" + pid, Type: t, PersonID: pid}
}

// couple: dad and mom married, two children, plus an unconnected stranger.
func couple() []kin.Person {
	return []kin.Person{
		{ID: "dad", FirstName: "Dan", LastName: "Doe", Gender: kin.GenderMale, BirthDate: "1960",
			Relations: []kin.Relation{rel(kin.RelationSpouse, "mom")}},
		{ID: "mom", FirstName: "May", LastName: "Doe", Gender: kin.GenderFemale, BirthDate: "1962"},
		{ID: "son", FirstName: "Sam", LastName: "Doe", Gender: kin.GenderMale,
			Relations: []kin.Relation{rel(kin.RelationParent, "dad"), rel(kin.RelationParent, "mom")}},
		{ID: "daughter", FirstName: "Dot", LastName: "Doe", Gender: kin.GenderFemale,
			Relations: []kin.Relation{rel(kin.RelationParent, "dad"), rel(kin.RelationParent, "mom")}},
		{ID: "stranger", FirstName: "Stan"},
	}
}

func couplePositions() map[string]layout.Position {
	return map[string]layout.Position{
		"dad":      {X: -80, Y: 0},
		"mom":      {X: 80, Y: 0},
		"son":      {X: -90, Y: 150},
		"daughter": {X: 90, Y: 150},
	}
}

func TestBuild(t *testing.T) {
	gens := map[string]int{"dad": 0, "mom": 0, "son": 1, "daughter": 1}
	g := Build(couple(), couplePositions(), gens)

	wantIDs := []string{"dad", "daughter", "mom", "son"}
	gotIDs := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		gotIDs[i] = n.ID
	}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Fatalf("node IDs = %v, want %v", gotIDs, wantIDs)
	}

	dad := g.Nodes[0]
	if dad.Label != "Dan Doe" || dad.X != -80 || dad.Y != 0 || dad.Generation != 0 {
		t.Errorf("dad node = %+v", dad)
	}

	wantEdges := []Edge{
		{From: "dad", To: "daughter", Type: EdgeChild, Mergeable: true},
		{From: "dad", To: "mom", Type: EdgeSpouse},
		{From: "dad", To: "son", Type: EdgeChild, Mergeable: true},
		{From: "mom", To: "daughter", Type: EdgeChild, Mergeable: true},
		{From: "mom", To: "son", Type: EdgeChild, Mergeable: true},
	}
	if !reflect.DeepEqual(g.Edges, wantEdges) {
		t.Errorf("edges = %v, want %v", g.Edges, wantEdges)
	}
}

func TestBuildMergeableRequiresSpousedParents(t *testing.T) {
	people := []kin.Person{
		{ID: "a", FirstName: "A"},
		{ID: "b", FirstName: "B"},
		{ID: "kid", FirstName: "Kid",
			Relations: []kin.Relation{rel(kin.RelationParent, "a"), rel(kin.RelationParent, "b")}},
		{ID: "solo-kid", FirstName: "Solo",
			Relations: []kin.Relation{rel(kin.RelationParent, "a")}},
	}
	pos := map[string]layout.Position{"a": {}, "b": {X: 200}, "kid": {Y: 150}, "solo-kid": {X: 200, Y: 150}}

	g := Build(people, pos, nil)
	for _, e := range g.Edges {
		if e.Mergeable {
			t.Errorf("edge %s->%s mergeable, want false (parents are not spouses)", e.From, e.To)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	gens := map[string]int{"dad": 0, "mom": 0, "son": 1, "daughter": 1}
	a := Build(couple(), couplePositions(), gens)
	b := Build(couple(), couplePositions(), gens)
	if !reflect.DeepEqual(a, b) {
		t.Error("Build not deterministic")
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := Build(couple(), couplePositions(), map[string]int{"son": 1, "daughter": 1})
	path := filepath.Join(t.TempDir(), "tree.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, g)
	}
}

func TestPeopleFileRoundTrip(t *testing.T) {
	people := couple()
	path := filepath.Join(t.TempDir(), "people.json")

	if err := WritePeopleFile(people, path); err != nil {
		t.Fatalf("WritePeopleFile() error = %v", err)
	}
	got, err := ReadPeopleFile(path)
	if err != nil {
		t.Fatalf("ReadPeopleFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, people) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, people)
	}
}

func TestUnmarshalLayoutDefaults(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"root_id":"dad","graph":{"nodes":[],"edges":[]}}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout() error = %v", err)
	}
	if l.Strategy != string(layout.StrategyHierarchical) {
		t.Errorf("Strategy = %q, want hierarchical default", l.Strategy)
	}
}

func TestUnmarshalLayoutUnknownStrategy(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"strategy":"circular"}`))
	if !errors.Is(err, layout.ErrUnknownStrategy) {
		t.Fatalf("UnmarshalLayout() error = %v, want ErrUnknownStrategy", err)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{
		Strategy:     string(layout.StrategyGenealogical),
		Orientation:  string(layout.BottomUp),
		RootID:       "dad",
		SnapshotHash: "abc123",
		Graph:        Build(couple(), couplePositions(), nil),
	}
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestToDOT(t *testing.T) {
	gens := map[string]int{"dad": 0, "mom": 0, "son": 1, "daughter": 1}
	dot := ToDOT(Build(couple(), couplePositions(), gens), DOTOptions{})

	for _, want := range []string{
		`"dad" [label="Dan Doe"];`,
		`"dad" -> "son";`,
		`"dad" -> "mom" [dir=none, style=dashed, constraint=false];`,
		`{ rank=same; "dad"; "mom"; }`,
		`{ rank=same; "daughter"; "son"; }`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	g := Graph{Nodes: []Node{{ID: "p", Label: "Pat", Generation: 2, Birth: "1900", Death: "1980"}}}
	dot := ToDOT(g, DOTOptions{Detailed: true})

	if !strings.Contains(dot, "gen: 2") || !strings.Contains(dot, "b. 1900") || !strings.Contains(dot, "d. 1980") {
		t.Errorf("detailed label missing fields:\n%s", dot)
	}
}
