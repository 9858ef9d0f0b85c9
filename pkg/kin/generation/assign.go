package generation

import "github.com/matzehuels/kinview/pkg/kin"

// Conflict records a spouse or sibling edge whose endpoints settled on
// different generations. Contradictory input (for example a person recorded
// as both grandparent and sibling of another) has no single correct answer;
// the assigner keeps the first consistent assignment and reports the
// disagreement here so callers can log a data-quality warning.
type Conflict struct {
	PersonID string
	OtherID  string
	Type     kin.RelationType
	Got      int
	Want     int
}

// Result holds the generation assignment for everyone reachable from a root.
type Result struct {
	// Generations maps person ID to generation number (0 at the root,
	// negative toward ancestors, positive toward descendants).
	Generations map[string]int

	// Buckets groups person IDs by generation, in snapshot order.
	Buckets map[int][]string

	// Processed is the set of everyone reached from the root.
	Processed map[string]struct{}

	// Conflicts lists spouse/sibling edges that disagree with the settled
	// assignment. Empty for consistent input.
	Conflicts []Conflict

	// Dangling counts relations skipped for pointing at person IDs absent
	// from the snapshot, forwarded from graph construction.
	Dangling int
}

// Assign propagates generation numbers from rootID over the snapshot by
// depth-first traversal.
//
// For each visited person: parent edges propagate generation-1 to the target,
// recursing only when the target is unset or would strictly decrease, so the
// most extreme ancestor assignment wins. Child edges propagate generation+1
// symmetrically. Spouse and sibling edges propagate the same generation,
// recursing only when the target differs from the expected value.
//
// A person already expanded is never re-expanded, which guarantees
// termination over relation cycles. Conflicting claims therefore resolve by
// "first reached wins, except where parent/child edges force strictly further
// values"; disagreements on spouse/sibling edges are reported in
// [Result.Conflicts] without changing the settled assignment.
//
// An empty snapshot or a root absent from it yields an empty Result.
func Assign(people []kin.Person, rootID string) Result {
	res := Result{
		Generations: make(map[string]int),
		Buckets:     make(map[int][]string),
		Processed:   make(map[string]struct{}),
	}

	g := kin.NewGraph(people)
	res.Dangling = g.Dangling()
	if !g.Contains(rootID) {
		return res
	}

	res.Generations[rootID] = 0

	var visit func(id string)
	visit = func(id string) {
		if _, done := res.Processed[id]; done {
			return
		}
		res.Processed[id] = struct{}{}
		curr := res.Generations[id]

		for _, nb := range g.Neighbors(id) {
			t, _ := g.Relation(id, nb)
			switch t {
			case kin.RelationParent:
				want := curr - 1
				if old, ok := res.Generations[nb]; !ok || want < old {
					// Most extreme assignment wins; visit is a no-op for
					// already-expanded people, which bounds cyclic data.
					res.Generations[nb] = want
					visit(nb)
				}
			case kin.RelationChild:
				want := curr + 1
				if old, ok := res.Generations[nb]; !ok || want > old {
					res.Generations[nb] = want
					visit(nb)
				}
			default: // spouse, sibling: same generation
				old, ok := res.Generations[nb]
				if !ok {
					res.Generations[nb] = curr
					visit(nb)
					continue
				}
				if old != curr {
					if _, done := res.Processed[nb]; !done {
						res.Generations[nb] = curr
						visit(nb)
						continue
					}
					res.Conflicts = append(res.Conflicts, Conflict{
						PersonID: id, OtherID: nb, Type: t, Got: old, Want: curr,
					})
				}
			}
		}
	}

	visit(rootID)

	// Bucket in snapshot order for reproducible downstream layout.
	for _, id := range g.PersonIDs() {
		if gen, ok := res.Generations[id]; ok {
			res.Buckets[gen] = append(res.Buckets[gen], id)
		}
	}

	return res
}
