package generation

import "github.com/matzehuels/kinview/pkg/kin"

// maxRelaxPasses bounds the fixed-point relaxation. Ten passes settle any
// realistic family depth; contradictory data simply stops improving.
const maxRelaxPasses = 10

// DefaultYearsPerGeneration is the bucket width used to seed generations
// from birth years when no explicit value is configured.
const DefaultYearsPerGeneration = 25

// Relax computes generations for the genealogy-style layouts.
//
// People with no traceable parent are roots. Roots with a known birth year
// are seeded into buckets of yearsPerGeneration years counted from the
// earliest birth year in the snapshot; roots without one start at 0. A
// bounded fixed-point relaxation then repeatedly raises each child to be
// strictly below its parents (generations only ever increase) and equalizes
// spouse pairs to the minimum of the pair.
//
// Unlike [Assign], Relax covers every person in the snapshot, so it tolerates
// disconnected components: separate family branches each settle relative to
// their own roots. The result is deterministic for identical input order.
func Relax(people []kin.Person, yearsPerGeneration int) map[string]int {
	if yearsPerGeneration <= 0 {
		yearsPerGeneration = DefaultYearsPerGeneration
	}

	g := kin.NewGraph(people)
	gens := make(map[string]int, g.Size())
	if g.Size() == 0 {
		return gens
	}

	earliest, haveYears := earliestBirthYear(people)
	byID := kin.PeopleByID(people)

	for _, id := range g.PersonIDs() {
		gens[id] = 0
		if len(g.NeighborsOfType(id, kin.RelationParent)) > 0 {
			continue // not a root
		}
		if !haveYears {
			continue
		}
		if y, ok := byID[id].BirthYear(); ok {
			gens[id] = (y - earliest) / yearsPerGeneration
		}
	}

	for pass := 0; pass < maxRelaxPasses; pass++ {
		changed := false
		for _, id := range g.PersonIDs() {
			for _, child := range g.NeighborsOfType(id, kin.RelationChild) {
				if gens[child] <= gens[id] {
					gens[child] = gens[id] + 1
					changed = true
				}
			}
			for _, sp := range g.NeighborsOfType(id, kin.RelationSpouse) {
				if gens[sp] != gens[id] {
					m := min(gens[sp], gens[id])
					gens[sp], gens[id] = m, m
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	return gens
}

func earliestBirthYear(people []kin.Person) (int, bool) {
	year, found := 0, false
	for _, p := range people {
		if y, ok := p.BirthYear(); ok && (!found || y < year) {
			year, found = y, true
		}
	}
	return year, found
}
