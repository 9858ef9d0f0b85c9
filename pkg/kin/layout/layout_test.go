package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/kinview/pkg/kin"
)

// household builds a three-generation family: grandpa+grandma, their sons dad
// and uncle, dad's wife mom, and the children son and daughter.
func household() []kin.Person {
	p := func(id string, g kin.Gender, birth string, rels ...kin.Relation) kin.Person {
		return kin.Person{ID: id, FirstName: id, Gender: g, BirthDate: birth, Relations: rels}
	}
	r := func(t kin.RelationType, pid string) kin.Relation {
		return kin.Relation{ID: "r-" + pid, Type: t, PersonID: pid}
	}
	return []kin.Person{
		p("grandpa", kin.GenderMale, "1940", r(kin.RelationSpouse, "grandma")),
		p("grandma", kin.GenderFemale, "1942"),
		p("dad", kin.GenderMale, "1965",
			r(kin.RelationParent, "grandpa"), r(kin.RelationParent, "grandma"),
			r(kin.RelationSpouse, "mom"), r(kin.RelationSibling, "uncle")),
		p("mom", kin.GenderFemale, "1967"),
		p("uncle", kin.GenderMale, "1968",
			r(kin.RelationParent, "grandpa"), r(kin.RelationParent, "grandma")),
		p("son", kin.GenderMale, "1990",
			r(kin.RelationParent, "dad"), r(kin.RelationParent, "mom")),
		p("daughter", kin.GenderFemale, "1992",
			r(kin.RelationParent, "dad"), r(kin.RelationParent, "mom"),
			r(kin.RelationSibling, "son")),
	}
}

// rows groups positions by y coordinate.
func rows(pos map[string]Position) map[float64][]string {
	out := make(map[float64][]string)
	for id, p := range pos {
		out[p.Y] = append(out[p.Y], id)
	}
	return out
}

func checkMinSpacing(t *testing.T, pos map[string]Position, minDist float64) {
	t.Helper()
	for y, ids := range rows(pos) {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				d := math.Abs(pos[ids[i]].X - pos[ids[j]].X)
				if d < minDist-1e-9 {
					t.Errorf("row y=%v: |x(%s)-x(%s)| = %v, want >= %v", y, ids[i], ids[j], d, minDist)
				}
			}
		}
	}
}

func TestHierarchicalPlacesAllReachable(t *testing.T) {
	people := household()
	pos, err := Hierarchical(people, "dad", DefaultConfig())
	if err != nil {
		t.Fatalf("Hierarchical() error = %v", err)
	}
	if len(pos) != len(people) {
		t.Fatalf("len(pos) = %d, want %d", len(pos), len(people))
	}

	cfg := DefaultConfig()
	wantY := map[string]float64{
		"grandpa": 0, "grandma": 0,
		"dad": cfg.GenerationGap, "mom": cfg.GenerationGap, "uncle": cfg.GenerationGap,
		"son": 2 * cfg.GenerationGap, "daughter": 2 * cfg.GenerationGap,
	}
	for id, y := range wantY {
		if pos[id].Y != y {
			t.Errorf("pos[%s].Y = %v, want %v", id, pos[id].Y, y)
		}
	}
}

func TestHierarchicalSpousesCloserThanOthers(t *testing.T) {
	cfg := DefaultConfig()
	pos, err := Hierarchical(household(), "dad", cfg)
	if err != nil {
		t.Fatalf("Hierarchical() error = %v", err)
	}

	spouse := math.Abs(pos["dad"].X - pos["mom"].X)
	if want := cfg.NodeWidth + cfg.SpouseGap; spouse != want {
		t.Errorf("spouse distance = %v, want %v", spouse, want)
	}
	for _, other := range []string{"uncle"} {
		if d := math.Abs(pos["dad"].X - pos[other].X); d <= spouse {
			t.Errorf("|x(dad)-x(%s)| = %v, want > spouse distance %v", other, d, spouse)
		}
		if d := math.Abs(pos["mom"].X - pos[other].X); d <= spouse {
			t.Errorf("|x(mom)-x(%s)| = %v, want > spouse distance %v", other, d, spouse)
		}
	}
}

func TestHierarchicalRowsCentered(t *testing.T) {
	pos, err := Hierarchical(household(), "dad", DefaultConfig())
	if err != nil {
		t.Fatalf("Hierarchical() error = %v", err)
	}
	for y, ids := range rows(pos) {
		minX, maxX := pos[ids[0]].X, pos[ids[0]].X
		for _, id := range ids[1:] {
			minX = math.Min(minX, pos[id].X)
			maxX = math.Max(maxX, pos[id].X)
		}
		if mid := minX + maxX; math.Abs(mid) > 1e-9 {
			t.Errorf("row y=%v: span midpoint = %v, want 0", y, mid/2)
		}
	}
}

func TestHierarchicalMissingRoot(t *testing.T) {
	pos, err := Hierarchical(household(), "nobody", DefaultConfig())
	if err != nil {
		t.Fatalf("Hierarchical() error = %v", err)
	}
	if len(pos) != 0 {
		t.Errorf("len(pos) = %d, want 0", len(pos))
	}
}

func TestGenealogicalOrientation(t *testing.T) {
	cfg := DefaultConfig()
	people := household()

	down, err := Genealogical(people, "grandpa", cfg, TopDown)
	if err != nil {
		t.Fatalf("Genealogical(TopDown) error = %v", err)
	}
	if !(down["grandpa"].Y < down["dad"].Y && down["dad"].Y < down["son"].Y) {
		t.Errorf("TopDown y order: grandpa=%v dad=%v son=%v, want ascending",
			down["grandpa"].Y, down["dad"].Y, down["son"].Y)
	}

	up, err := Genealogical(people, "grandpa", cfg, BottomUp)
	if err != nil {
		t.Fatalf("Genealogical(BottomUp) error = %v", err)
	}
	if !(up["grandpa"].Y > up["dad"].Y && up["dad"].Y > up["son"].Y) {
		t.Errorf("BottomUp y order: grandpa=%v dad=%v son=%v, want descending",
			up["grandpa"].Y, up["dad"].Y, up["son"].Y)
	}
}

func TestGenealogicalChildrenUnderParents(t *testing.T) {
	cfg := DefaultConfig()
	pos, err := Genealogical(household(), "grandpa", cfg, TopDown)
	if err != nil {
		t.Fatalf("Genealogical() error = %v", err)
	}
	if len(pos) != 7 {
		t.Fatalf("len(pos) = %d, want 7", len(pos))
	}
	checkMinSpacing(t, pos, cfg.minSpacing())

	// Siblings on the same row, parents above.
	if pos["dad"].Y != pos["uncle"].Y {
		t.Errorf("dad and uncle rows differ: %v vs %v", pos["dad"].Y, pos["uncle"].Y)
	}
	if pos["grandpa"].Y >= pos["dad"].Y {
		t.Errorf("grandpa row %v not above dad row %v", pos["grandpa"].Y, pos["dad"].Y)
	}
}

func TestBeautifySpouseOnClusterEdge(t *testing.T) {
	cfg := DefaultConfig()
	pos, err := Beautify(household(), "grandpa", cfg)
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}

	// mom marries the first sibling of the dad/uncle cluster, so she sits on
	// its left edge instead of between the brothers.
	if !(pos["mom"].X < pos["dad"].X && pos["dad"].X < pos["uncle"].X) {
		t.Errorf("x order mom=%v dad=%v uncle=%v, want mom < dad < uncle",
			pos["mom"].X, pos["dad"].X, pos["uncle"].X)
	}
}

func TestBeautifyParentsCenteredOverChildren(t *testing.T) {
	pos, err := Beautify(household(), "grandpa", DefaultConfig())
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}

	parentMid := (pos["grandpa"].X + pos["grandma"].X) / 2
	childMid := (pos["dad"].X + pos["uncle"].X) / 2
	if math.Abs(parentMid-childMid) > 1e-9 {
		t.Errorf("parent cluster midpoint = %v, child midpoint = %v", parentMid, childMid)
	}
}

func TestBeautifyBoundingBoxCentered(t *testing.T) {
	cfg := DefaultConfig()
	pos, err := Beautify(household(), "grandpa", cfg)
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}
	checkMinSpacing(t, pos, cfg.minSpacing())

	first := true
	var minX, maxX float64
	for _, p := range pos {
		if first {
			minX, maxX = p.X, p.X
			first = false
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	if mid := minX + maxX; math.Abs(mid) > 1e-9 {
		t.Errorf("bounding box midpoint = %v, want 0", mid/2)
	}
}

func TestStrategiesDeterministic(t *testing.T) {
	people := household()
	for _, s := range []Strategy{StrategyHierarchical, StrategyGenealogical, StrategyBeautify} {
		a, err := Compute(people, "grandpa", DefaultConfig(), Options{Strategy: s})
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", s, err)
		}
		b, err := Compute(people, "grandpa", DefaultConfig(), Options{Strategy: s})
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", s, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Compute(%s) not deterministic:\n%v\n%v", s, a, b)
		}
	}
}

func TestStrategiesSinglePerson(t *testing.T) {
	people := []kin.Person{{ID: "solo", FirstName: "Solo", BirthDate: "1980"}}
	for _, s := range []Strategy{StrategyHierarchical, StrategyGenealogical, StrategyBeautify} {
		pos, err := Compute(people, "solo", DefaultConfig(), Options{Strategy: s})
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", s, err)
		}
		if got, want := pos["solo"], (Position{X: 0, Y: 0}); got != want {
			t.Errorf("Compute(%s)[solo] = %v, want %v", s, got, want)
		}
		if len(pos) != 1 {
			t.Errorf("Compute(%s) len = %d, want 1", s, len(pos))
		}
	}
}

func TestStrategiesIgnoreUnreachable(t *testing.T) {
	people := append(household(), kin.Person{ID: "stranger", FirstName: "Stranger"})
	for _, s := range []Strategy{StrategyGenealogical, StrategyBeautify} {
		pos, err := Compute(people, "grandpa", DefaultConfig(), Options{Strategy: s})
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", s, err)
		}
		if _, ok := pos["stranger"]; ok {
			t.Errorf("Compute(%s) placed unreachable person", s)
		}
		if len(pos) != 7 {
			t.Errorf("Compute(%s) len = %d, want 7", s, len(pos))
		}
	}
}
